// Package hostels is the read-only hostel catalog.
package hostels

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hostelhub/models"
)

var ErrNotFound = errors.New("hostel not found")

// PriceRange is one of the filter buckets offered by the search screen.
type PriceRange struct {
	Label    string  `json:"label"`
	Min, Max float64 `json:"-"`
}

var PriceRanges = []PriceRange{
	{Label: "Under $50", Min: 0, Max: 50},
	{Label: "$50 - $100", Min: 50, Max: 100},
	{Label: "$100 - $150", Min: 100, Max: 150},
	{Label: "Over $150", Min: 150, Max: -1},
}

func (p PriceRange) Contains(price float64) bool {
	return price >= p.Min && (p.Max < 0 || price < p.Max)
}

func ParsePriceRange(label string) (PriceRange, error) {
	for _, p := range PriceRanges {
		if strings.EqualFold(strings.TrimSpace(label), p.Label) {
			return p, nil
		}
	}
	return PriceRange{}, fmt.Errorf("unknown price range %q", label)
}

type Criteria struct {
	PriceRange string
	RoomType   string
	Location   string
}

type Catalog struct {
	hostels []models.Hostel
	byID    map[string]int
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return newCatalog(seed)
}

func newCatalog(hostels []models.Hostel) *Catalog {
	c := &Catalog{hostels: hostels, byID: make(map[string]int, len(hostels))}
	for i, h := range hostels {
		c.byID[h.ID] = i
	}
	return c
}

func (c *Catalog) List() []models.Hostel {
	out := make([]models.Hostel, len(c.hostels))
	copy(out, c.hostels)
	return out
}

func (c *Catalog) Get(id string) (models.Hostel, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Hostel{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.hostels[i], nil
}

// Filter keeps catalog order. Empty criteria fields match everything.
func (c *Catalog) Filter(cr Criteria) ([]models.Hostel, error) {
	var pr *PriceRange
	if cr.PriceRange != "" {
		p, err := ParsePriceRange(cr.PriceRange)
		if err != nil {
			return nil, err
		}
		pr = &p
	}

	out := []models.Hostel{}
	for _, h := range c.hostels {
		if pr != nil {
			price, err := NightlyPrice(h.Price)
			if err != nil || !pr.Contains(price) {
				continue
			}
		}
		if cr.RoomType != "" && !offersRoom(h, cr.RoomType) {
			continue
		}
		if cr.Location != "" && !containsFold(h.Location, cr.Location) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

var priceRe = regexp.MustCompile(`\d+(\.\d+)?`)

// NightlyPrice extracts the amount from strings like "$25/night".
func NightlyPrice(price string) (float64, error) {
	m := priceRe.FindString(price)
	if m == "" {
		return 0, fmt.Errorf("no amount in price %q", price)
	}
	return strconv.ParseFloat(m, 64)
}

func offersRoom(h models.Hostel, roomType string) bool {
	for _, rt := range h.RoomTypes {
		if containsFold(rt, roomType) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
