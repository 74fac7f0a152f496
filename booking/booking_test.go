package booking

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hostelhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Set(day string) {
	c.mu.Lock()
	c.t = models.MustDate(day).Time().Add(10 * time.Hour)
	c.mu.Unlock()
}

type recordingEmitter struct {
	mu       sync.Mutex
	events   []string
	statuses []string
}

func (r *recordingEmitter) Emit(_ context.Context, name string, content models.Index) {
	r.mu.Lock()
	r.events = append(r.events, name)
	r.statuses = append(r.statuses, content.ItemType)
	r.mu.Unlock()
}

type stubCatalog map[string]models.Hostel

func (c stubCatalog) Get(id string) (models.Hostel, error) {
	h, ok := c[id]
	if !ok {
		return models.Hostel{}, errors.New("no such hostel")
	}
	return h, nil
}

func newTestStore(t *testing.T, today string) (*Store, *fixedClock, *recordingEmitter) {
	t.Helper()
	clock := &fixedClock{}
	clock.Set(today)
	events := &recordingEmitter{}
	s := NewStore(NewMemoryRepository(),
		WithClock(clock.Now),
		WithEmitter(events),
		WithCatalog(stubCatalog{"1": {ID: "1", Name: "Hostel Alpha", Price: "$25/night", Amenities: []string{"Free WiFi"}}}),
	)
	return s, clock, events
}

func draft(checkIn, checkOut string) models.BookingDraft {
	return models.BookingDraft{
		RoomType: models.RoomPrivate,
		CheckIn:  models.MustDate(checkIn),
		CheckOut: models.MustDate(checkOut),
		Contact:  models.ContactInfo{FullName: "A B", Email: "a@b.com", Phone: "123"},
	}
}

func TestDeriveStatus(t *testing.T) {
	in, out := models.MustDate("2024-03-01"), models.MustDate("2024-06-30")
	cases := []struct {
		today string
		want  models.BookingStatus
	}{
		{"2024-02-29", models.StatusUpcoming},
		{"2024-03-01", models.StatusActive},
		{"2024-06-29", models.StatusActive},
		{"2024-06-30", models.StatusCompleted},
		{"2025-01-01", models.StatusCompleted},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveStatus(in, out, models.MustDate(tc.today)), tc.today)
	}
}

func TestCreateEndToEnd(t *testing.T) {
	s, _, events := newTestStore(t, "2024-03-15")
	ctx := context.Background()

	b, err := s.Create(ctx, draft("2024-03-01", "2024-06-30"))
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Contains(t, []models.BookingStatus{models.StatusActive, models.StatusUpcoming}, b.Status)
	assert.Equal(t, models.StatusActive, b.Status)
	assert.Equal(t, "2024-03-15", b.BookingDate.String())

	listed, err := s.ListByStatus(ctx, b.Status)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, b.ID, listed[0].ID)
	assert.Equal(t, []string{"booking.created"}, events.events)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s, _, _ := newTestStore(t, "2024-01-01")
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		b, err := s.Create(context.Background(), draft("2024-02-01", "2024-02-10"))
		require.NoError(t, err)
		require.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestCreateDenormalizesHostel(t *testing.T) {
	s, _, _ := newTestStore(t, "2024-01-01")
	d := draft("2024-02-01", "2024-02-10")
	d.HostelID = "1"

	b, err := s.Create(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "Hostel Alpha", b.HostelName)
	assert.Equal(t, "$25/night", b.Price)
	assert.Equal(t, []string{"Free WiFi"}, b.Amenities)

	d.HostelID = "99"
	_, err = s.Create(context.Background(), d)
	assert.ErrorIs(t, err, ErrHostelNotFound)
}

func TestCreateRejectsInvalidDrafts(t *testing.T) {
	s, _, _ := newTestStore(t, "2024-01-01")
	cases := map[string]func(*models.BookingDraft){
		"unknown room type": func(d *models.BookingDraft) { d.RoomType = "Penthouse" },
		"inverted range":    func(d *models.BookingDraft) { d.CheckIn, d.CheckOut = d.CheckOut, d.CheckIn },
		"empty range":       func(d *models.BookingDraft) { d.CheckOut = d.CheckIn },
		"missing check-in":  func(d *models.BookingDraft) { d.CheckIn = models.Date{} },
		"missing name":      func(d *models.BookingDraft) { d.Contact.FullName = " " },
		"malformed email":   func(d *models.BookingDraft) { d.Contact.Email = "nope" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := draft("2024-02-01", "2024-02-10")
			mutate(&d)
			_, err := s.Create(context.Background(), d)
			require.ErrorIs(t, err, ErrInvalidDraft)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.NotEmpty(t, verr.Fields)
		})
	}
	all, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func seed(t *testing.T, s *Store, clock *fixedClock) []models.Booking {
	t.Helper()
	ctx := context.Background()
	var out []models.Booking
	// today is 2024-03-15
	for _, r := range [][2]string{
		{"2024-03-01", "2024-06-30"}, // active
		{"2024-05-01", "2024-05-31"}, // upcoming
		{"2023-09-01", "2023-12-31"}, // completed
		{"2024-03-10", "2024-03-20"}, // active
		{"2024-04-01", "2024-04-05"}, // upcoming
	} {
		b, err := s.Create(ctx, draft(r[0], r[1]))
		require.NoError(t, err)
		out = append(out, b)
	}
	_, err := s.Cancel(ctx, out[4].ID, "changed plans")
	require.NoError(t, err)
	return out
}

func TestListByStatusPartitionsInInsertionOrder(t *testing.T) {
	s, clock, _ := newTestStore(t, "2024-03-15")
	created := seed(t, s, clock)
	ctx := context.Background()

	want := map[models.BookingStatus][]string{
		models.StatusActive:    {created[0].ID, created[3].ID},
		models.StatusUpcoming:  {created[1].ID},
		models.StatusCompleted: {created[2].ID},
		models.StatusCancelled: {created[4].ID},
	}

	total := 0
	seen := map[string]models.BookingStatus{}
	for _, status := range models.Statuses {
		got, err := s.ListByStatus(ctx, status)
		require.NoError(t, err)
		ids := make([]string, 0, len(got))
		for _, b := range got {
			assert.Equal(t, status, b.Status)
			prev, dup := seen[b.ID]
			assert.False(t, dup, "booking %s listed under %s and %s", b.ID, prev, status)
			seen[b.ID] = status
			ids = append(ids, b.ID)
		}
		assert.Equal(t, want[status], ids, "status %s", status)
		total += len(got)
	}
	assert.Equal(t, len(created), total)
}

func TestListByStatusRejectsUnknown(t *testing.T) {
	s, _, _ := newTestStore(t, "2024-03-15")
	_, err := s.ListByStatus(context.Background(), "pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel(t *testing.T) {
	s, clock, events := newTestStore(t, "2024-03-15")
	created := seed(t, s, clock)
	ctx := context.Background()

	t.Run("active booking is cancelled", func(t *testing.T) {
		b, err := s.Cancel(ctx, created[0].ID, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, b.Status)
		assert.NotZero(t, b.CancelledAt)
	})

	t.Run("upcoming booking is cancelled", func(t *testing.T) {
		b, err := s.Cancel(ctx, created[1].ID, "found another place")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, b.Status)
		assert.Equal(t, "found another place", b.CancellationReason)
	})

	t.Run("completed booking is rejected without change", func(t *testing.T) {
		_, err := s.Cancel(ctx, created[2].ID, "")
		require.ErrorIs(t, err, ErrNotCancellable)
		var terr *TransitionError
		require.True(t, errors.As(err, &terr))
		assert.Equal(t, models.StatusCompleted, terr.From)

		b, err := s.Get(ctx, created[2].ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, b.Status)
		assert.Zero(t, b.CancelledAt)
	})

	t.Run("second cancel is rejected", func(t *testing.T) {
		_, err := s.Cancel(ctx, created[0].ID, "")
		assert.ErrorIs(t, err, ErrNotCancellable)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Cancel(ctx, "missing", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	cancelled := 0
	for _, e := range events.events {
		if e == "booking.cancelled" {
			cancelled++
		}
	}
	assert.Equal(t, 3, cancelled)
}

func TestConcurrentCancelSucceedsOnce(t *testing.T) {
	s, _, _ := newTestStore(t, "2024-03-15")
	b, err := s.Create(context.Background(), draft("2024-05-01", "2024-05-31"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Cancel(context.Background(), b.ID, ""); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestRefreshAdvancesStatuses(t *testing.T) {
	s, clock, _ := newTestStore(t, "2024-03-15")
	created := seed(t, s, clock)
	ctx := context.Background()

	clock.Set("2024-05-10")
	n, err := s.Refresh(ctx)
	require.NoError(t, err)
	// created[0] stays active, created[1] becomes active, created[3] completes.
	assert.Equal(t, 2, n)

	get := func(i int) models.BookingStatus {
		b, err := s.Get(ctx, created[i].ID)
		require.NoError(t, err)
		return b.Status
	}
	assert.Equal(t, models.StatusActive, get(0))
	assert.Equal(t, models.StatusActive, get(1))
	assert.Equal(t, models.StatusCompleted, get(2))
	assert.Equal(t, models.StatusCompleted, get(3))
	assert.Equal(t, models.StatusCancelled, get(4))

	n, err = s.Refresh(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRefreshPassesThroughActive(t *testing.T) {
	s, clock, events := newTestStore(t, "2024-03-15")
	ctx := context.Background()

	b, err := s.Create(ctx, draft("2024-04-01", "2024-04-05"))
	require.NoError(t, err)
	require.Equal(t, models.StatusUpcoming, b.Status)

	// The whole stay elapses between two refreshes.
	clock.Set("2024-05-01")
	n, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, []string{"booking.created", "booking.status", "booking.status"}, events.events)
	assert.Equal(t, []string{"upcoming", "active", "completed"}, events.statuses)
}

func TestRunRefresherStopsWithContext(t *testing.T) {
	s, _, _ := newTestStore(t, "2024-03-15")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunRefresher(ctx, 10*time.Millisecond)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("refresher did not stop")
	}
}

func TestWriteReceipt(t *testing.T) {
	s, _, _ := newTestStore(t, "2024-03-15")
	d := draft("2024-03-01", "2024-06-30")
	d.HostelID = "1"
	d.SpecialRequests = "Near window"
	b, err := s.Create(context.Background(), d)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReceipt(&buf, b))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
