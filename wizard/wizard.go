package wizard

import (
	"context"
	"fmt"

	"hostelhub/models"
)

// Creator is anything that turns a draft into a stored booking.
type Creator interface {
	Create(ctx context.Context, d models.BookingDraft) (models.Booking, error)
}

// Wizard tracks the current step of one booking flow.
type Wizard struct {
	Step int
	Form Form
}

func New(hostelID string) *Wizard {
	return &Wizard{Step: StepStay, Form: Form{HostelID: hostelID}}
}

// Next validates the current step and advances on success. On the last step
// it only validates; use Confirm to finish.
func (w *Wizard) Next() Result {
	res := Validate(w.Form, w.Step)
	if res.OK && w.Step < StepConfirm {
		w.Step++
	}
	return res
}

// Back moves one step back. It reports true when the wizard is left from
// the first step.
func (w *Wizard) Back() bool {
	if w.Step <= StepStay {
		return true
	}
	w.Step--
	return false
}

// Confirm creates the booking. It is only valid on the last step.
func (w *Wizard) Confirm(ctx context.Context, c Creator, userID string) (models.Booking, error) {
	if w.Step != StepConfirm {
		return models.Booking{}, fmt.Errorf("%w: confirm on step %d", ErrInvalidStep, w.Step)
	}
	draft, err := w.Form.Draft(userID)
	if err != nil {
		return models.Booking{}, err
	}
	return c.Create(ctx, draft)
}
