// Package wizard validates the three-step booking form: stay dates and room,
// guest details, then review and confirm.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"hostelhub/models"

	"github.com/go-playground/validator/v10"
)

const (
	StepStay    = 1
	StepGuest   = 2
	StepConfirm = 3
)

var (
	ErrInvalidStep     = errors.New("invalid wizard step")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidRange    = errors.New("check-in must be before check-out")
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrIncomplete      = errors.New("missing required fields")
)

// IncompleteMessage is shown to the user when a step is missing fields.
const IncompleteMessage = "Please fill in all required fields"

var validate = validator.New()

// Form is the accumulated wizard state. Dates are the raw YYYY-MM-DD text
// the user typed.
type Form struct {
	HostelID string `json:"hostelId"`

	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
	RoomType string `json:"roomType" validate:"required"`

	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	StudentID  string `json:"studentId"`
	University string `json:"university"`

	SpecialRequests string `json:"specialRequests"`
}

var stepFields = map[int][]string{
	StepStay:    {"CheckIn", "CheckOut", "RoomType"},
	StepGuest:   {"FullName", "Email", "Phone"},
	StepConfirm: nil,
}

var jsonNames = map[string]string{
	"CheckIn":  "checkIn",
	"CheckOut": "checkOut",
	"RoomType": "roomType",
	"FullName": "fullName",
	"Email":    "email",
	"Phone":    "phone",
}

// Result is the outcome of validating one step.
type Result struct {
	OK      bool     `json:"ok"`
	Step    int      `json:"step"`
	Missing []string `json:"missing,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Validate checks that the fields required by step are non-empty. Fields of
// other steps are ignored. The form is not modified.
func Validate(f Form, step int) Result {
	fields, ok := stepFields[step]
	if !ok {
		return Result{Step: step, Message: fmt.Sprintf("%v: %d", ErrInvalidStep, step)}
	}
	if len(fields) == 0 {
		return Result{OK: true, Step: step}
	}

	err := validate.StructPartial(f.trimmed(), fields...)
	if err == nil {
		return Result{OK: true, Step: step}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Step: step, Message: err.Error()}
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, jsonNames[fe.StructField()])
	}
	return Result{
		Step:    step,
		Missing: missing,
		Message: IncompleteMessage + ": " + strings.Join(missing, ", "),
	}
}

// Draft parses the form into a booking draft. Both input steps must pass,
// dates must be real calendar days with checkIn strictly before checkOut,
// and the room type must be a known one.
func (f Form) Draft(userID string) (models.BookingDraft, error) {
	for _, step := range []int{StepStay, StepGuest} {
		if res := Validate(f, step); !res.OK {
			return models.BookingDraft{}, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(res.Missing, ", "))
		}
	}
	t := f.trimmed()

	checkIn, err := models.ParseDate(t.CheckIn)
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("%w: checkIn %q", ErrInvalidDate, t.CheckIn)
	}
	checkOut, err := models.ParseDate(t.CheckOut)
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("%w: checkOut %q", ErrInvalidDate, t.CheckOut)
	}
	if !checkIn.Before(checkOut) {
		return models.BookingDraft{}, fmt.Errorf("%w: %s >= %s", ErrInvalidRange, checkIn, checkOut)
	}
	roomType, err := models.ParseRoomType(t.RoomType)
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("%w: %q", ErrInvalidRoomType, t.RoomType)
	}

	return models.BookingDraft{
		UserID:   userID,
		HostelID: t.HostelID,
		RoomType: roomType,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Contact: models.ContactInfo{
			FullName:   t.FullName,
			Email:      t.Email,
			Phone:      t.Phone,
			StudentID:  t.StudentID,
			University: t.University,
		},
		SpecialRequests: t.SpecialRequests,
	}, nil
}

func (f Form) trimmed() Form {
	return Form{
		HostelID:        strings.TrimSpace(f.HostelID),
		CheckIn:         strings.TrimSpace(f.CheckIn),
		CheckOut:        strings.TrimSpace(f.CheckOut),
		RoomType:        strings.TrimSpace(f.RoomType),
		FullName:        strings.TrimSpace(f.FullName),
		Email:           strings.TrimSpace(f.Email),
		Phone:           strings.TrimSpace(f.Phone),
		StudentID:       strings.TrimSpace(f.StudentID),
		University:      strings.TrimSpace(f.University),
		SpecialRequests: strings.TrimSpace(f.SpecialRequests),
	}
}
