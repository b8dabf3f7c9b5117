package app

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"

	"visitjo/internal/domain"
)

const (
	source          = "xotelo"
	currency        = "JOD" // not converted from the provider's currency
	defaultName     = "Jordan stay"
	defaultCheckIn  = "15:00"
	defaultCheckOut = "11:00"

	// ISO-8601 with milliseconds, always UTC
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// MapListing converts one provider listing into a catalog record. It never fails:
// missing values fall back to zero values and fixed defaults.
func MapListing(l domain.Listing, generatedAt time.Time) domain.Hotel {
	name := l.Name.Trimmed()
	if name == "" {
		name = defaultName
	}
	key := l.Key.Trimmed()
	listingURL := l.URL.Trimmed()

	destination := ClassifyDestination(ParsePlace(listingURL))
	image := strings.TrimSpace(string(l.Image))
	images := []string{}
	if image != "" {
		images = []string{image}
	}

	h := domain.Hotel{
		ID:          hotelID(key, name),
		Name:        name,
		Location:    destination,
		Destination: destination,
		Price:       float64(l.PriceRanges.Minimum),
		Currency:    currency,
		Rating:      float64(l.ReviewSummary.Rating),
		Reviews:     reviewCount(float64(l.ReviewSummary.Count)),
		Image:       image,
		Images:      images,
		Amenities:   []string{"WiFi"},
		CheckIn:     defaultCheckIn,
		CheckOut:    defaultCheckOut,
		BedTypes:    []string{"Standard"},
		CreatedAt:   generatedAt.UTC().Format(isoMillis),

		Source:              source,
		TripadvisorURL:      listingURL,
		AccommodationType:   string(l.AccommodationType),
		Mentions:            rawList(l.Mentions),
		MerchandisingLabels: rawList(l.MerchandisingLabels),
		Geo:                 json.RawMessage(l.Geo),
		PriceRanges:         l.PriceRanges.Raw,
	}
	return h
}

// MapListings maps every listing with the same generation timestamp.
func MapListings(in []domain.Listing, generatedAt time.Time) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(in))
	for _, l := range in {
		out = append(out, MapListing(l, generatedAt))
	}
	return out
}

// hotelID is the provider key, or a name slug when the listing has none.
func hotelID(key, name string) string {
	if key != "" {
		return key
	}
	return "xotelo-" + Slug(name)
}

// Slug lower-cases s and collapses every run of non [a-z0-9] characters into one '-'.
func Slug(s string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(s), "-")
}

func rawList(l domain.List) []json.RawMessage {
	if len(l) == 0 {
		return []json.RawMessage{}
	}
	return []json.RawMessage(l)
}

// reviewCount truncates toward zero and saturates at the int range.
func reviewCount(c float64) int {
	c = math.Trunc(c)
	switch {
	case c >= math.MaxInt:
		return math.MaxInt
	case c <= math.MinInt:
		return math.MinInt
	}
	return int(c)
}
