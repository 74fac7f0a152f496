package booking

import (
	"context"
	"slices"
	"sync"

	"hostelhub/models"
)

// Filter narrows a listing. Zero fields match everything.
type Filter struct {
	UserID string
	Status models.BookingStatus
}

func (f Filter) match(b models.Booking) bool {
	if f.UserID != "" && b.UserID != f.UserID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}

// StatusUpdate is applied by Repository.Transition.
type StatusUpdate struct {
	Status             models.BookingStatus
	CancelledAt        int64
	CancellationReason string
}

// Repository persists bookings. Find returns bookings in insertion order.
// Transition applies update only if the current status is one of from, and
// returns *TransitionError otherwise.
type Repository interface {
	Insert(ctx context.Context, b models.Booking) error
	Find(ctx context.Context, f Filter) ([]models.Booking, error)
	Get(ctx context.Context, id string) (models.Booking, error)
	Transition(ctx context.Context, id string, from []models.BookingStatus, update StatusUpdate) (models.Booking, error)
}

type memoryRepository struct {
	mu       sync.RWMutex
	bookings []models.Booking
	index    map[string]int
}

// NewMemoryRepository keeps bookings in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{index: make(map[string]int)}
}

func (m *memoryRepository) Insert(_ context.Context, b models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.index[b.ID]; exists {
		return &ValidationError{Fields: []string{"id"}, Reason: "duplicate id"}
	}
	m.index[b.ID] = len(m.bookings)
	m.bookings = append(m.bookings, clone(b))
	return nil
}

func (m *memoryRepository) Find(_ context.Context, f Filter) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if f.match(b) {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (m *memoryRepository) Get(_ context.Context, id string) (models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	return clone(m.bookings[i]), nil
}

func (m *memoryRepository) Transition(_ context.Context, id string, from []models.BookingStatus, update StatusUpdate) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	b := &m.bookings[i]
	if !slices.Contains(from, b.Status) {
		return models.Booking{}, &TransitionError{ID: id, From: b.Status, To: update.Status}
	}
	b.Status = update.Status
	if update.CancelledAt != 0 {
		b.CancelledAt = update.CancelledAt
		b.CancellationReason = update.CancellationReason
	}
	return clone(*b), nil
}

func clone(b models.Booking) models.Booking {
	b.Amenities = slices.Clone(b.Amenities)
	b.Rules = slices.Clone(b.Rules)
	return b
}
