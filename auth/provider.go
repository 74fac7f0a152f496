package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hostelhub/middleware"
	"hostelhub/models"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

var validate = validator.New()

// AuthError carries the message shown to the user.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func authErr(format string, args ...any) error {
	return &AuthError{Message: fmt.Sprintf(format, args...)}
}

// Session is the result of a successful sign-in or sign-up.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Provider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password string) (Session, error)
}

// LocalProvider authenticates against a UserRepository and issues HS256 tokens.
type LocalProvider struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewLocalProvider(users UserRepository, secret []byte, ttl time.Duration) *LocalProvider {
	return &LocalProvider{users: users, secret: secret, ttl: ttl, now: time.Now}
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, authErr("Email and password are required")
	}

	u, err := p.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return Session{}, authErr("Invalid email or password")
	}
	if err != nil {
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, authErr("Invalid email or password")
	}

	if err := p.users.TouchLogin(ctx, u.UserID, p.now()); err != nil {
		return Session{}, err
	}
	return p.issue(u)
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return Session{}, authErr("The email address is badly formatted")
	}
	if len(password) < minPasswordLen {
		return Session{}, authErr("Password should be at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("could not process password: %w", err)
	}

	now := p.now()
	u := models.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLogin:    now,
	}
	if err := p.users.Insert(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Session{}, authErr("The email address is already in use by another account")
		}
		return Session{}, err
	}
	return p.issue(u)
}

func (p *LocalProvider) issue(u models.User) (Session, error) {
	exp := p.now().Add(p.ttl)
	claims := &middleware.Claims{
		UserID: u.UserID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID,
			IssuedAt:  jwt.NewNumericDate(p.now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return Session{Token: token, UserID: u.UserID, Email: u.Email, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
