package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hostelhub/logging"
	"hostelhub/models"
	"hostelhub/mq"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer   = otel.Tracer("hostelhub/booking")
	validate = validator.New()
)

// Catalog resolves hostel ids for denormalization on create.
type Catalog interface {
	Get(id string) (models.Hostel, error)
}

// Store owns the bookings of the application. It is safe for concurrent use;
// all ordering and atomicity guarantees come from the Repository.
type Store struct {
	repo    Repository
	now     func() time.Time
	log     *logrus.Entry
	events  mq.Emitter
	catalog Catalog
}

type Option func(*Store)

// WithClock overrides the time source used for status derivation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) { s.log = logging.Component(logger, "booking") }
}

func WithEmitter(e mq.Emitter) Option {
	return func(s *Store) { s.events = e }
}

func WithCatalog(c Catalog) Option {
	return func(s *Store) { s.catalog = c }
}

func NewStore(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		now:  time.Now,
		log:  logging.Component(nil, "booking"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.events == nil {
		s.events = mq.NewLogEmitter(s.log.Logger)
	}
	return s
}

// DeriveStatus maps a stay to a status relative to today:
// active when today is in [checkIn, checkOut), upcoming when checkIn is
// still ahead, completed otherwise.
func DeriveStatus(checkIn, checkOut, today models.Date) models.BookingStatus {
	switch {
	case today.Within(checkIn, checkOut):
		return models.StatusActive
	case checkIn.After(today):
		return models.StatusUpcoming
	default:
		return models.StatusCompleted
	}
}

// Create validates the draft, assigns a fresh id and derived status, and
// stores the booking.
func (s *Store) Create(ctx context.Context, d models.BookingDraft) (models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Create")
	defer span.End()

	if err := validateDraft(d); err != nil {
		return models.Booking{}, fail(span, err)
	}

	now := s.now()
	today := models.DateOf(now)
	b := models.Booking{
		ID:              uuid.NewString(),
		UserID:          d.UserID,
		HostelID:        d.HostelID,
		RoomType:        d.RoomType,
		CheckIn:         d.CheckIn,
		CheckOut:        d.CheckOut,
		Status:          DeriveStatus(d.CheckIn, d.CheckOut, today),
		TotalAmount:     d.TotalAmount,
		PaymentStatus:   d.PaymentStatus,
		Contact:         d.Contact,
		SpecialRequests: strings.TrimSpace(d.SpecialRequests),
		BookingDate:     today,
		CreatedAt:       now.UnixNano(),
	}

	if d.HostelID != "" && s.catalog != nil {
		h, err := s.catalog.Get(d.HostelID)
		if err != nil {
			return models.Booking{}, fail(span, fmt.Errorf("%w: %s", ErrHostelNotFound, d.HostelID))
		}
		b.HostelName = h.Name
		b.Price = h.Price
		b.Amenities = append([]string(nil), h.Amenities...)
		b.Rules = append([]string(nil), h.Rules...)
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		return models.Booking{}, fail(span, err)
	}
	span.SetAttributes(attribute.String("booking.id", b.ID), attribute.String("booking.status", string(b.Status)))

	s.log.WithFields(logrus.Fields{"id": b.ID, "status": b.Status, "hostel": b.HostelID}).Info("booking created")
	s.events.Emit(ctx, "booking.created", models.Index{EntityType: "booking", Method: "create", EntityId: b.ID, ItemType: string(b.Status)})
	return b, nil
}

// ListByStatus returns every booking with the given status in insertion order.
func (s *Store) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.List(ctx, Filter{Status: status})
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.List")
	defer span.End()

	if f.Status != "" && !f.Status.Valid() {
		return nil, fail(span, fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status))
	}
	bookings, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, fail(span, err)
	}
	return bookings, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Booking, error) {
	return s.repo.Get(ctx, id)
}

// Cancel moves an active or upcoming booking to cancelled. Any other status,
// including an already cancelled booking, yields a *TransitionError.
func (s *Store) Cancel(ctx context.Context, id, reason string) (models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Cancel", trace.WithAttributes(attribute.String("booking.id", id)))
	defer span.End()

	b, err := s.repo.Transition(ctx, id,
		[]models.BookingStatus{models.StatusActive, models.StatusUpcoming},
		StatusUpdate{
			Status:             models.StatusCancelled,
			CancelledAt:        s.now().Unix(),
			CancellationReason: strings.TrimSpace(reason),
		})
	if err != nil {
		s.log.WithError(err).WithField("id", id).Warn("cancel rejected")
		return models.Booking{}, fail(span, err)
	}

	s.log.WithField("id", id).Info("booking cancelled")
	s.events.Emit(ctx, "booking.cancelled", models.Index{EntityType: "booking", Method: "cancel", EntityId: id, ItemType: string(b.Status)})
	return b, nil
}

// Refresh applies the date-driven transitions upcoming -> active -> completed
// and returns how many bookings changed.
func (s *Store) Refresh(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "booking.Refresh")
	defer span.End()

	all, err := s.repo.Find(ctx, Filter{})
	if err != nil {
		return 0, fail(span, err)
	}

	today := models.DateOf(s.now())
	changed := 0
	for _, b := range all {
		if b.Status.Terminal() {
			continue
		}
		target := DeriveStatus(b.CheckIn, b.CheckOut, today)
		moved, err := s.advance(ctx, b, target)
		if err != nil {
			return changed, fail(span, err)
		}
		if moved {
			changed++
		}
	}
	span.SetAttributes(attribute.Int("booking.changed", changed))
	return changed, nil
}

// RunRefresher calls Refresh every interval until ctx is done.
func (s *Store) RunRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Refresh(ctx)
			if err != nil {
				s.log.WithError(err).Error("status refresh failed")
				continue
			}
			if n > 0 {
				s.log.WithField("changed", n).Info("booking statuses refreshed")
			}
		}
	}
}

// advance walks b forward one status at a time until it reaches target, so
// a stay that started and ended between two refreshes still passes through
// active. It reports whether any step was applied.
func (s *Store) advance(ctx context.Context, b models.Booking, target models.BookingStatus) (bool, error) {
	moved := false
	for cur := b.Status; rank(cur) < rank(target); {
		next := successor(cur)
		_, err := s.repo.Transition(ctx, b.ID, []models.BookingStatus{cur}, StatusUpdate{Status: next})
		var terr *TransitionError
		if errors.As(err, &terr) {
			// Changed underneath us, most likely cancelled.
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved = true
		s.events.Emit(ctx, "booking.status", models.Index{EntityType: "booking", Method: "refresh", EntityId: b.ID, ItemType: string(next)})
		cur = next
	}
	return moved, nil
}

func successor(s models.BookingStatus) models.BookingStatus {
	if s == models.StatusUpcoming {
		return models.StatusActive
	}
	return models.StatusCompleted
}

func rank(s models.BookingStatus) int {
	switch s {
	case models.StatusUpcoming:
		return 0
	case models.StatusActive:
		return 1
	case models.StatusCompleted:
		return 2
	}
	return -1
}

func validateDraft(d models.BookingDraft) error {
	var missing []string
	if strings.TrimSpace(d.Contact.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(d.Contact.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(d.Contact.Phone) == "" {
		missing = append(missing, "phone")
	}
	if d.CheckIn.IsZero() {
		missing = append(missing, "checkIn")
	}
	if d.CheckOut.IsZero() {
		missing = append(missing, "checkOut")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Reason: "missing required fields"}
	}
	if !d.RoomType.Valid() {
		return &ValidationError{Fields: []string{"roomType"}, Reason: fmt.Sprintf("unknown room type %q", d.RoomType)}
	}
	if !d.CheckIn.Before(d.CheckOut) {
		return &ValidationError{Fields: []string{"checkIn", "checkOut"}, Reason: "check-in must be before check-out"}
	}
	if err := validate.Var(d.Contact.Email, "email"); err != nil {
		return &ValidationError{Fields: []string{"email"}, Reason: "malformed email"}
	}
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
