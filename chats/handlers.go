package chats

import (
	"encoding/json"
	"errors"
	"net/http"

	"hostelhub/utils"

	"github.com/julienschmidt/httprouter"
)

// GET /api/chat/:room/messages
func (s *Store) GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	msgs, err := s.Messages(ps.ByName("room"))
	if errors.Is(err, ErrUnknownRoom) {
		utils.RespondWithError(w, http.StatusNotFound, "Hostel not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"messages": msgs})
}

// POST /api/chat/:room/messages
func (s *Store) SendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	msg, err := s.Send(ps.ByName("room"), body.Text)
	switch {
	case errors.Is(err, ErrUnknownRoom):
		utils.RespondWithError(w, http.StatusNotFound, "Hostel not found")
		return
	case errors.Is(err, ErrEmptyMessage):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, msg)
}
