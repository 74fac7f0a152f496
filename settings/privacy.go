package settings

import (
	"context"
	"fmt"

	"hostelhub/models"
)

// PrivacyDefaults applies when a user has never changed a privacy toggle.
func PrivacyDefaults() models.PrivacySettings {
	return models.PrivacySettings{
		BiometricAuth:      false,
		LocationServices:   true,
		DataCollection:     true,
		TwoFactorAuth:      false,
		EmailNotifications: true,
	}
}

var privacyDescriptions = []struct{ section, key, title, desc string }{
	{"Security", "biometricAuth", "Biometric Authentication", "Use fingerprint or face ID to log in"},
	{"Security", "twoFactorAuth", "Two-Factor Authentication", "Add an extra layer of security"},
	{"Privacy", "locationServices", "Location Services", "Allow app to access your location"},
	{"Privacy", "dataCollection", "Data Collection", "Allow app to collect usage data"},
	{"Privacy", "emailNotifications", "Email Notifications", "Receive updates via email"},
}

func privacyFlag(p *models.PrivacySettings, key string) (*bool, error) {
	switch key {
	case "biometricAuth":
		return &p.BiometricAuth, nil
	case "locationServices":
		return &p.LocationServices, nil
	case "dataCollection":
		return &p.DataCollection, nil
	case "twoFactorAuth":
		return &p.TwoFactorAuth, nil
	case "emailNotifications":
		return &p.EmailNotifications, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
}

func privacyKey(userID string) string {
	return "settings:privacy:" + userID
}

// GetPrivacy returns the saved privacy toggles or PrivacyDefaults.
func (s *Store) GetPrivacy(ctx context.Context, userID string) models.PrivacySettings {
	return load(ctx, s, privacyKey(userID), userID, PrivacyDefaults())
}

func (s *Store) TogglePrivacy(ctx context.Context, userID, name string) (models.PrivacySettings, error) {
	p := s.GetPrivacy(ctx, userID)
	f, err := privacyFlag(&p, name)
	if err != nil {
		return p, err
	}
	*f = !*f
	return p, s.save(ctx, privacyKey(userID), p)
}

func (s *Store) SetPrivacy(ctx context.Context, userID, name string, value bool) (models.PrivacySettings, error) {
	p := s.GetPrivacy(ctx, userID)
	f, err := privacyFlag(&p, name)
	if err != nil {
		return p, err
	}
	*f = value
	return p, s.save(ctx, privacyKey(userID), p)
}

// PrivacyItems renders the toggles grouped as Security then Privacy.
func PrivacyItems(p models.PrivacySettings) []item {
	out := make([]item, 0, len(privacyDescriptions))
	for _, d := range privacyDescriptions {
		f, _ := privacyFlag(&p, d.key)
		out = append(out, item{Section: d.section, Type: d.key, Title: d.title, Description: d.desc, Value: *f})
	}
	return out
}
