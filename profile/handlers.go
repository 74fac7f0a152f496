package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hostelhub/logging"
	"hostelhub/models"
	"hostelhub/utils"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	dir       *Directory
	avatarDir string
	log       *logrus.Entry
}

// NewHandler serves the profiles of dir; avatars are written to avatarDir.
func NewHandler(dir *Directory, avatarDir string, logger logrus.FieldLogger) *Handler {
	return &Handler{dir: dir, avatarDir: avatarDir, log: logging.Component(logger, "profile-http")}
}

// GET /api/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	store := h.dir.For(ctx, utils.GetUserIDFromRequest(r))
	utils.RespondWithJSON(w, http.StatusOK, store.Current())
}

// PATCH /api/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var u models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if u.PersonalInfo != nil {
		if err := ValidatePersonalInfo(*u.PersonalInfo); err != nil {
			respondInvalid(w, err)
			return
		}
	}
	h.apply(w, r, u)
}

// PUT /api/profile/personal-info
func (h *Handler) UpdatePersonalInfo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var info models.PersonalInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := ValidatePersonalInfo(info); err != nil {
		respondInvalid(w, err)
		return
	}
	h.apply(w, r, models.ProfileUpdate{PersonalInfo: &info})
}

// POST /api/profile/avatar
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	path, err := SaveAvatar(h.avatarDir, file)
	if err != nil {
		h.log.WithError(err).Warn("avatar upload rejected")
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to process image")
		return
	}
	h.apply(w, r, models.ProfileUpdate{ProfileImage: &path})
}

// DELETE /api/profile
func (h *Handler) ClearProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.dir.For(ctx, utils.GetUserIDFromRequest(r)).Clear(ctx); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, u models.ProfileUpdate) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.dir.For(ctx, utils.GetUserIDFromRequest(r)).Update(ctx, u)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

func respondInvalid(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var missing, malformed []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			malformed = append(malformed, fe.Field())
		}
	}
	msg := "Please fill in all required fields"
	if len(missing) == 0 {
		msg = "Please enter a valid email address"
	}
	utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"error": msg, "missing": missing, "invalid": malformed})
}
