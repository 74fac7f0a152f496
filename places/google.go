package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hostelhub/logging"
	"hostelhub/models"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var ErrNoAPIKey = errors.New("places: no API key configured")

// Searcher looks up places around a coordinate.
type Searcher interface {
	Search(ctx context.Context, lat, lng float64, radius int, category string) ([]models.Place, error)
}

// GoogleClient queries a nearby-search endpoint through a circuit breaker.
type GoogleClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

func NewGoogleClient(apiKey, baseURL string, hc *http.Client, logger logrus.FieldLogger) *GoogleClient {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	log := logging.Component(logger, "places")
	return &GoogleClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    hc,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "places-nearby",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
			},
		}),
	}
}

type nearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleClient) Search(ctx context.Context, lat, lng float64, radius int, category string) ([]models.Place, error) {
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	out, err := g.cb.Execute(func() (any, error) {
		return g.fetch(ctx, lat, lng, radius, category)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.Place), nil
}

func (g *GoogleClient) fetch(ctx context.Context, lat, lng float64, radius int, category string) ([]models.Place, error) {
	q := url.Values{}
	q.Set("location", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radius))
	if category != "" {
		q.Set("type", category)
	}
	q.Set("keyword", "hostel")
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nearby search: unexpected status %d", resp.StatusCode)
	}

	var body nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("nearby search: decode: %w", err)
	}
	if body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search: %s %s", body.Status, body.ErrorMessage)
	}

	places := make([]models.Place, 0, len(body.Results))
	for _, r := range body.Results {
		places = append(places, models.Place{
			Name:     r.Name,
			Vicinity: r.Vicinity,
			Lat:      r.Geometry.Location.Lat,
			Lng:      r.Geometry.Location.Lng,
		})
	}
	return places, nil
}
