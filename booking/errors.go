package booking

import (
	"errors"
	"fmt"
	"strings"

	"hostelhub/models"
)

var (
	ErrNotFound       = errors.New("booking not found")
	ErrNotCancellable = errors.New("booking cannot be cancelled")
	ErrInvalidStatus  = errors.New("invalid booking status")
	ErrInvalidDraft   = errors.New("invalid booking")
	ErrHostelNotFound = errors.New("hostel not found")
)

// ValidationError lists the draft fields rejected at the store boundary.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid booking: " + e.Reason
	}
	return fmt.Sprintf("invalid booking: %s (%s)", e.Reason, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidDraft }

// TransitionError is returned when a status change is not allowed from the
// booking's current status. No state is changed.
type TransitionError struct {
	ID   string
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking %s: cannot move from %s to %s", e.ID, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrNotCancellable && e.To == models.StatusCancelled
}
