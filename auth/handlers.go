package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"hostelhub/logging"
	"hostelhub/models"
	"hostelhub/profile"
	"hostelhub/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	provider Provider
	profiles *profile.Directory
	log      *logrus.Entry
}

func NewHandler(provider Provider, profiles *profile.Directory, logger logrus.FieldLogger) *Handler {
	return &Handler{provider: provider, profiles: profiles, log: logging.Component(logger, "auth")}
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, err := h.provider.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, err)
		return
	}

	p, err := h.profiles.For(ctx, sess.UserID).Update(ctx, models.ProfileUpdate{Email: &sess.Email})
	if err != nil {
		h.log.WithError(err).WithField("userid", sess.UserID).Warn("profile sync after login failed")
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"session": sess, "profile": p, "message": "Login successful"})
}

// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please fill in all fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, err := h.provider.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.profiles.For(ctx, sess.UserID).Update(ctx, models.ProfileUpdate{Name: &in.Name, Email: &sess.Email})
	if err != nil {
		h.log.WithError(err).WithField("userid", sess.UserID).Warn("profile init after signup failed")
	}
	h.log.WithField("userid", sess.UserID).Info("user registered")
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"session": sess, "profile": p, "message": "Account created successfully"})
}

// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.profiles.For(ctx, utils.GetUserIDFromRequest(r)).Clear(ctx); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out"})
}

// respondError sends provider messages with status; anything else is a 502.
func (h *Handler) respondError(w http.ResponseWriter, status int, err error) {
	var aerr *AuthError
	if errors.As(err, &aerr) {
		utils.RespondWithError(w, status, aerr.Message)
		return
	}
	h.log.WithError(err).Error("auth provider failed")
	utils.RespondWithError(w, http.StatusBadGateway, "Authentication service unavailable")
}
