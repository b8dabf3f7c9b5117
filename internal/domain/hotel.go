package domain

import "encoding/json"

// Canonical destinations recognized by the catalog.
const (
	Amman   = "Amman"
	Aqaba   = "Aqaba"
	WadiRum = "Wadi Rum"
	Petra   = "Petra"
	DeadSea = "Dead Sea"
	Jerash  = "Jerash"
	Madaba  = "Madaba"
	Irbid   = "Irbid"
	Ajloun  = "Ajloun"
	Karak   = "Karak"
	Jordan  = "Jordan" // fallback for listings with no place at all
)

var Destinations = []string{Amman, Aqaba, WadiRum, Petra, DeadSea, Jerash, Madaba, Irbid, Ajloun, Karak, Jordan}

// Hotel is the catalog record shape served to the frontend.
// JSON names are the ones the site already reads.
type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	NameAr      string   `json:"nameAr"`
	Location    string   `json:"location"`
	Destination string   `json:"destination"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Amenities   []string `json:"amenities"`
	Rooms       int      `json:"rooms"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	BedTypes    []string `json:"bedTypes"`
	CreatedAt   string   `json:"createdAt,omitempty"`

	// provider metadata, kept for traceability
	Source              string            `json:"source,omitempty"`
	TripadvisorURL      string            `json:"tripadvisorUrl,omitempty"`
	AccommodationType   string            `json:"accommodationType"`
	Mentions            []json.RawMessage `json:"mentions"`
	MerchandisingLabels []json.RawMessage `json:"merchandisingLabels"`
	Geo                 json.RawMessage   `json:"geo"`
	PriceRanges         json.RawMessage   `json:"priceRanges"`
}
