package models

// Hostel is an entry of the read-only catalog.
type Hostel struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Location           string   `json:"location"`
	Price              string   `json:"price"`
	Rating             float64  `json:"rating"`
	ImageURL           string   `json:"imageUrl"`
	Description        string   `json:"description"`
	Amenities          []string `json:"amenities"`
	RoomTypes          []string `json:"roomTypes"`
	Rules              []string `json:"rules"`
	NearbyUniversities []string `json:"nearbyUniversities"`
}

// Place is a nearby-search result.
type Place struct {
	Name     string  `json:"name"`
	Vicinity string  `json:"vicinity"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

// Index is the payload published on the event channel.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}
