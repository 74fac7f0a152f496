package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"hostelhub/logging"
	"hostelhub/models"
	"hostelhub/utils"
	"hostelhub/wizard"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// Handler exposes the store over HTTP.
type Handler struct {
	store *Store
	log   *logrus.Entry
}

func NewHandler(store *Store, logger logrus.FieldLogger) *Handler {
	return &Handler{store: store, log: logging.Component(logger, "booking-http")}
}

// POST /api/wizard/validate/:step
func (h *Handler) ValidateStep(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	step, err := strconv.Atoi(ps.ByName("step"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid step")
		return
	}
	var form wizard.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	res := wizard.Validate(form, step)
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadRequest
	}
	utils.RespondWithJSON(w, status, res)
}

// POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var form wizard.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	for _, step := range []int{wizard.StepStay, wizard.StepGuest} {
		if res := wizard.Validate(form, step); !res.OK {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"error": res.Message, "missing": res.Missing, "step": step})
			return
		}
	}

	draft, err := form.Draft(utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.store.Create(ctx, draft)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "booking": b, "message": "Booking Confirmed"})
}

// GET /api/bookings?status=active
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f := Filter{UserID: utils.GetUserIDFromRequest(r)}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseBookingStatus(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		f.Status = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.store.List(ctx, f)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

// GET /api/bookings/:id
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, ok := h.owned(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": b})
}

// POST /api/bookings/:id/cancel
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, ok := h.owned(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.store.Cancel(ctx, b.ID, body.Reason)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":      true,
		"booking": updated,
		"message": "Booking cancelled successfully",
	})
}

// GET /api/bookings/:id/receipt
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, ok := h.owned(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := WriteReceipt(&buf, b); err != nil {
		h.log.WithError(err).WithField("id", b.ID).Error("receipt rendering failed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+b.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// owned loads a booking and hides bookings of other users behind a 404.
func (h *Handler) owned(w http.ResponseWriter, r *http.Request, id string) (models.Booking, bool) {
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return models.Booking{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.store.Get(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return models.Booking{}, false
	}
	if userID := utils.GetUserIDFromRequest(r); b.UserID != "" && b.UserID != userID {
		h.respondError(w, ErrNotFound)
		return models.Booking{}, false
	}
	return b, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrHostelNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotCancellable):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidStatus):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.WithError(err).Error("booking request failed")
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error")
	}
}
