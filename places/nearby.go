package places

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"hostelhub/logging"
	"hostelhub/models"
	"hostelhub/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

const (
	defaultRadius   = 5000
	defaultCategory = "lodging"
)

// Coordinates is a point the caller actually supplied; (0, 0) is a valid one.
type Coordinates struct {
	Lat, Lng float64
}

type Result struct {
	Places   []models.Place `json:"places"`
	Fallback bool           `json:"fallback"`
}

// Nearby wraps a Searcher and degrades to the static list on any failure.
type Nearby struct {
	searcher Searcher
	log      *logrus.Entry
}

func NewNearby(s Searcher, logger logrus.FieldLogger) *Nearby {
	return &Nearby{searcher: s, log: logging.Component(logger, "places")}
}

// Find searches around at. A nil at means the caller has no location.
func (n *Nearby) Find(ctx context.Context, at *Coordinates, radius int, category string) Result {
	if at == nil {
		n.log.Debug("no coordinates, serving fallback list")
		return Result{Places: Fallback(), Fallback: true}
	}
	if n.searcher == nil {
		return Result{Places: Fallback(), Fallback: true}
	}

	places, err := n.searcher.Search(ctx, at.Lat, at.Lng, radius, category)
	if err != nil {
		n.log.WithError(err).Warn("nearby search failed, serving fallback list")
		return Result{Places: Fallback(), Fallback: true}
	}
	return Result{Places: places}
}

// GET /api/places/nearby?lat=&lng=&radius=&type=
func (n *Nearby) GetNearby(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	at := parseCoordinates(q.Get("lat"), q.Get("lng"))

	radius, err := strconv.Atoi(q.Get("radius"))
	if err != nil || radius <= 0 {
		radius = defaultRadius
	}
	category := q.Get("type")
	if category == "" {
		category = defaultCategory
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	utils.RespondWithJSON(w, http.StatusOK, n.Find(ctx, at, radius, category))
}

// parseCoordinates returns nil unless both values parse and lie in range.
func parseCoordinates(latRaw, lngRaw string) *Coordinates {
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil
	}
	return &Coordinates{Lat: lat, Lng: lng}
}
