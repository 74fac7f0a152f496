package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"hostelhub/kv"
	"hostelhub/logging"
	"hostelhub/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// DefaultKey is the storage key of the single-user profile blob.
const DefaultKey = "user"

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Store holds one profile in memory and mirrors it to a kv.Store as a
// single JSON blob. Writes are last-write-wins.
type Store struct {
	kv  kv.Store
	key string
	log *logrus.Entry

	mu      sync.RWMutex
	current models.UserProfile
}

func NewStore(store kv.Store, key string, logger logrus.FieldLogger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		kv:  store,
		key: key,
		log: logging.Component(logger, "profile").WithField("key", key),
	}
}

// Load reads the persisted blob. A missing, unreadable or corrupt blob
// yields the empty default; read failures are logged, never returned.
func (s *Store) Load(ctx context.Context) models.UserProfile {
	p := s.read(ctx)

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return clone(p)
}

func (s *Store) read(ctx context.Context) models.UserProfile {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return models.UserProfile{}
	}
	if err != nil {
		s.log.WithError(err).Warn("profile read failed, using default")
		return models.UserProfile{}
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.WithError(err).Warn("corrupt profile blob, using default")
		return models.UserProfile{}
	}
	return p
}

// Current returns the in-memory record without touching storage.
func (s *Store) Current() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

// Update shallow-merges u into the current record and persists the result.
// The in-memory record only changes once the write succeeded.
func (s *Store) Update(ctx context.Context, u models.ProfileUpdate) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Merge(s.current, u)
	raw, err := json.Marshal(next)
	if err != nil {
		return clone(s.current), fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		s.log.WithError(err).Error("profile write failed")
		return clone(s.current), fmt.Errorf("persist profile: %w", err)
	}

	s.current = next
	return clone(next), nil
}

// Clear removes the blob and then resets the record to the default. A
// failed remove leaves the record untouched.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, s.key); err != nil {
		s.log.WithError(err).Error("profile remove failed")
		return fmt.Errorf("remove profile: %w", err)
	}
	s.current = models.UserProfile{}
	return nil
}

// Merge applies the non-nil fields of u on top of p. PersonalInfo is
// replaced as a whole.
func Merge(p models.UserProfile, u models.ProfileUpdate) models.UserProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.ProfileImage != nil {
		p.ProfileImage = *u.ProfileImage
	}
	if u.PersonalInfo != nil {
		info := *u.PersonalInfo
		p.PersonalInfo = &info
	}
	return p
}

// ValidatePersonalInfo checks the required personal fields and the email format.
func ValidatePersonalInfo(info models.PersonalInfo) error {
	return validate.Struct(info)
}

func clone(p models.UserProfile) models.UserProfile {
	if p.PersonalInfo != nil {
		info := *p.PersonalInfo
		p.PersonalInfo = &info
	}
	return p
}

// Directory hands out one Store per user, keyed "user:<id>".
type Directory struct {
	kv     kv.Store
	logger logrus.FieldLogger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewDirectory(store kv.Store, logger logrus.FieldLogger) *Directory {
	return &Directory{kv: store, logger: logger, stores: make(map[string]*Store)}
}

// For returns the store of userID, loading it from storage on first use.
func (d *Directory) For(ctx context.Context, userID string) *Store {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.stores[userID]; ok {
		return s
	}
	s := NewStore(d.kv, Key(userID), d.logger)
	s.Load(ctx)
	d.stores[userID] = s
	return s
}

func Key(userID string) string {
	return "user:" + userID
}
