package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hostelhub/kv"
	"hostelhub/logging"
	"hostelhub/models"

	"github.com/sirupsen/logrus"
)

var ErrUnknownSetting = errors.New("unknown setting")

// Defaults applies when a user has no saved preferences.
func Defaults() models.NotificationSettings {
	return models.NotificationSettings{
		BookingUpdates:    true,
		PaymentReminders:  true,
		PromotionalOffers: false,
		SecurityAlerts:    true,
		NewMessages:       true,
		SystemUpdates:     true,
	}
}

type item struct {
	Section     string `json:"section,omitempty"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Value       bool   `json:"value"`
}

var descriptions = []struct{ key, title, desc string }{
	{"bookingUpdates", "Booking Updates", "Get notified about booking confirmations and changes"},
	{"paymentReminders", "Payment Reminders", "Receive reminders for upcoming payments"},
	{"newMessages", "New Messages", "Get notified when you receive new messages"},
	{"promotionalOffers", "Promotional Offers", "Receive special offers and discounts"},
	{"securityAlerts", "Security Alerts", "Important security notifications"},
	{"systemUpdates", "System Updates", "Updates about app features and maintenance"},
}

func flag(s *models.NotificationSettings, key string) (*bool, error) {
	switch key {
	case "bookingUpdates":
		return &s.BookingUpdates, nil
	case "paymentReminders":
		return &s.PaymentReminders, nil
	case "promotionalOffers":
		return &s.PromotionalOffers, nil
	case "securityAlerts":
		return &s.SecurityAlerts, nil
	case "newMessages":
		return &s.NewMessages, nil
	case "systemUpdates":
		return &s.SystemUpdates, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
}

// Store keeps notification preferences as one JSON blob per user.
type Store struct {
	kv  kv.Store
	log *logrus.Entry
}

func NewStore(store kv.Store, logger logrus.FieldLogger) *Store {
	return &Store{kv: store, log: logging.Component(logger, "settings")}
}

func key(userID string) string {
	return "settings:" + userID
}

// Get returns the saved preferences, or the defaults when none are stored
// or the blob cannot be read.
func (s *Store) Get(ctx context.Context, userID string) models.NotificationSettings {
	return load(ctx, s, key(userID), userID, Defaults())
}

// load decodes the blob at k into a copy of def. Missing and unreadable
// blobs yield def.
func load[T any](ctx context.Context, s *Store, k, userID string, def T) T {
	raw, err := s.kv.Get(ctx, k)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.WithError(err).WithField("userid", userID).Warn("settings read failed, using defaults")
		}
		return def
	}
	v := def
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.WithError(err).WithField("userid", userID).Warn("corrupt settings blob, using defaults")
		return def
	}
	return v
}

// Toggle flips one flag and persists the result.
func (s *Store) Toggle(ctx context.Context, userID, name string) (models.NotificationSettings, error) {
	ns := s.Get(ctx, userID)
	f, err := flag(&ns, name)
	if err != nil {
		return ns, err
	}
	*f = !*f
	return ns, s.save(ctx, key(userID), ns)
}

// Set writes an explicit value for one flag.
func (s *Store) Set(ctx context.Context, userID, name string, value bool) (models.NotificationSettings, error) {
	ns := s.Get(ctx, userID)
	f, err := flag(&ns, name)
	if err != nil {
		return ns, err
	}
	*f = value
	return ns, s.save(ctx, key(userID), ns)
}

func (s *Store) save(ctx context.Context, k string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, k, string(raw)); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// Items renders the preferences in display order.
func Items(ns models.NotificationSettings) []item {
	out := make([]item, 0, len(descriptions))
	for _, d := range descriptions {
		f, _ := flag(&ns, d.key)
		out = append(out, item{Type: d.key, Title: d.title, Description: d.desc, Value: *f})
	}
	return out
}
