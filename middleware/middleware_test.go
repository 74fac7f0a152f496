package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostelhub/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret []byte, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           "u1",
		Email:            "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}).SignedString(secret)
	require.NoError(t, err)
	return tok
}

func TestAuthenticate(t *testing.T) {
	secret := []byte("s3cret")
	a := NewAuth(secret)

	var gotUser string
	h := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
	})

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"no bearer prefix", sign(t, secret, time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"wrong secret", "Bearer " + sign(t, []byte("other"), time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, secret, time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"valid", "Bearer " + sign(t, secret, time.Now().Add(time.Hour)), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotUser = ""
			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req, nil)
			assert.Equal(t, tc.code, rec.Code)
			if tc.code == http.StatusOK {
				assert.Equal(t, "u1", gotUser)
			}
		})
	}
}

func TestOptionalAuthPassesThrough(t *testing.T) {
	called := false
	h := NewAuth([]byte("x")).OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		assert.Nil(t, r.Context().Value(globals.UserIDKey))
	})
	req := httptest.NewRequest(http.MethodGet, "/api/chat/1/messages", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h(httptest.NewRecorder(), req, nil)
	assert.True(t, called)
}
