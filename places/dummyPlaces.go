package places

import "hostelhub/models"

// fallbackPlaces is served whenever the live lookup is unavailable.
var fallbackPlaces = []models.Place{
	{Name: "Hostel Alpha", Vicinity: "Downtown Core"},
	{Name: "Beachside Backpackers", Vicinity: "Coastal Area"},
	{Name: "City Central Hub", Vicinity: "City Center"},
	{Name: "Urban Retreat Hostel", Vicinity: "Downtown Core"},
	{Name: "Sunset Point Hostel", Vicinity: "Coastal Area"},
	{Name: "Historic District Stay", Vicinity: "Old Town"},
	{Name: "Mountain View Hostel", Vicinity: "Hillside"},
}

// Fallback returns a copy of the static list.
func Fallback() []models.Place {
	return append([]models.Place(nil), fallbackPlaces...)
}
