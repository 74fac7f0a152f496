package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hostelhub/models"
	"hostelhub/utils"

	"github.com/julienschmidt/httprouter"
)

// GET /api/settings/notifications
func (s *Store) GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	utils.RespondWithJSON(w, http.StatusOK, Items(s.Get(ctx, utils.GetUserIDFromRequest(r))))
}

// PUT /api/settings/notifications/:key
// An empty body toggles the flag; {"value": bool} sets it.
func (s *Store) UpdateNotification(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	value, ok := decodeValue(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	var (
		ns  models.NotificationSettings
		err error
	)
	if value != nil {
		ns, err = s.Set(ctx, userID, ps.ByName("key"), *value)
	} else {
		ns, err = s.Toggle(ctx, userID, ps.ByName("key"))
	}
	s.respond(w, err, Items(ns))
}

// GET /api/settings/privacy
func (s *Store) GetPrivacySettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	utils.RespondWithJSON(w, http.StatusOK, PrivacyItems(s.GetPrivacy(ctx, utils.GetUserIDFromRequest(r))))
}

// PUT /api/settings/privacy/:key
func (s *Store) UpdatePrivacySetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	value, ok := decodeValue(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	var (
		p   models.PrivacySettings
		err error
	)
	if value != nil {
		p, err = s.SetPrivacy(ctx, userID, ps.ByName("key"), *value)
	} else {
		p, err = s.TogglePrivacy(ctx, userID, ps.ByName("key"))
	}
	s.respond(w, err, PrivacyItems(p))
}

// decodeValue reads an optional {"value": bool} body. It writes the 400
// itself and reports false when the body is malformed.
func decodeValue(w http.ResponseWriter, r *http.Request) (*bool, bool) {
	var body struct {
		Value *bool `json:"value"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return nil, false
		}
	}
	return body.Value, true
}

func (s *Store) respond(w http.ResponseWriter, err error, items any) {
	switch {
	case errors.Is(err, ErrUnknownSetting):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.log.WithError(err).Error("settings update failed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update setting")
	default:
		utils.RespondWithJSON(w, http.StatusOK, items)
	}
}
