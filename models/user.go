package models

import "time"

// PersonalInfo is the structured section of a user profile.
type PersonalInfo struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	DateOfBirth string `json:"dateOfBirth"`
}

// UserProfile is persisted as a single JSON blob.
type UserProfile struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	ProfileImage string        `json:"profileImage"`
	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty"`
}

// ProfileUpdate is a partial profile. Nil fields are left untouched on merge.
type ProfileUpdate struct {
	Name         *string       `json:"name,omitempty"`
	Email        *string       `json:"email,omitempty"`
	ProfileImage *string       `json:"profileImage,omitempty"`
	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty"`
}

// User is an account known to the auth provider.
type User struct {
	UserID       string    `json:"userid" bson:"userid"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	LastLogin    time.Time `json:"last_login" bson:"last_login"`
}

// NotificationSettings are per-user notification toggles.
type NotificationSettings struct {
	BookingUpdates    bool `json:"bookingUpdates"`
	PaymentReminders  bool `json:"paymentReminders"`
	PromotionalOffers bool `json:"promotionalOffers"`
	SecurityAlerts    bool `json:"securityAlerts"`
	NewMessages       bool `json:"newMessages"`
	SystemUpdates     bool `json:"systemUpdates"`
}

// PrivacySettings are per-user security and privacy toggles.
type PrivacySettings struct {
	BiometricAuth      bool `json:"biometricAuth"`
	LocationServices   bool `json:"locationServices"`
	DataCollection     bool `json:"dataCollection"`
	TwoFactorAuth      bool `json:"twoFactorAuth"`
	EmailNotifications bool `json:"emailNotifications"`
}
