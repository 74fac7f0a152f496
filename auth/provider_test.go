package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hostelhub/globals"
	"hostelhub/kv"
	"hostelhub/middleware"
	"hostelhub/profile"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func newProvider() *LocalProvider {
	return NewLocalProvider(NewMemoryUsers(), secret, 12*time.Hour)
}

func TestSignUpThenSignIn(t *testing.T) {
	ctx := context.Background()
	p := newProvider()

	up, err := p.SignUp(ctx, " A@B.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", up.Email)
	assert.NotEmpty(t, up.UserID)

	in, err := p.SignIn(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, up.UserID, in.UserID)

	claims, err := middleware.NewAuth(secret).ValidateJWT("Bearer " + in.Token)
	require.NoError(t, err)
	assert.Equal(t, up.UserID, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestProviderErrors(t *testing.T) {
	ctx := context.Background()
	p := newProvider()
	_, err := p.SignUp(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	cases := []struct {
		name string
		call func() error
	}{
		{"short password", func() error { _, err := p.SignUp(ctx, "c@d.com", "12345"); return err }},
		{"malformed email", func() error { _, err := p.SignUp(ctx, "not-an-email", "secret1"); return err }},
		{"duplicate email", func() error { _, err := p.SignUp(ctx, "A@b.com", "secret1"); return err }},
		{"wrong password", func() error { _, err := p.SignIn(ctx, "a@b.com", "nope123"); return err }},
		{"unknown user", func() error { _, err := p.SignIn(ctx, "x@y.com", "secret1"); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var aerr *AuthError
			require.True(t, errors.As(err, &aerr), "got %v", err)
			assert.NotEmpty(t, aerr.Message)
		})
	}
}

func TestLoginSyncsProfileAndLogoutClears(t *testing.T) {
	ctx := context.Background()
	profiles := profile.NewDirectory(kv.NewMemory(), nil)
	h := NewHandler(newProvider(), profiles, nil)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ada","email":"ada@uni.edu","password":"secret1"}`)), httprouter.Params{})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ada@uni.edu","password":"wrong12"}`)), httprouter.Params{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ada@uni.edu","password":"secret1"}`)), httprouter.Params{})
	require.Equal(t, http.StatusOK, rec.Code)

	sess, err := h.provider.SignIn(ctx, "ada@uni.edu", "secret1")
	require.NoError(t, err)
	p := profiles.For(ctx, sess.UserID).Current()
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "ada@uni.edu", p.Email)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req = req.WithContext(context.WithValue(req.Context(), globals.UserIDKey, sess.UserID))
	rec = httptest.NewRecorder()
	h.Logout(rec, req, httprouter.Params{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, profiles.For(ctx, sess.UserID).Current().Email)
}
