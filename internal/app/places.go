package app

import (
	"strings"

	"visitjo/internal/domain"
)

// administrative suffixes dropped from the place segment, applied in this order
var placeSuffixes = []string{"_governorate", "_region", "_district", "_province"}

// ParsePlace extracts the place name from a listing URL: the segment after the last '-',
// cut at ".html", without administrative suffixes, underscores turned into spaces.
// Anything unparseable yields "".
func ParsePlace(listingURL string) string {
	i := strings.LastIndex(listingURL, "-")
	if i < 0 {
		return ""
	}
	tail := listingURL[i+1:]
	if j := strings.Index(tail, ".html"); j > 0 {
		tail = tail[:j]
	}
	for _, suf := range placeSuffixes {
		if len(tail) >= len(suf) && strings.EqualFold(tail[len(tail)-len(suf):], suf) {
			tail = tail[:len(tail)-len(suf)]
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(tail, "_", " "))
}

type destinationRule struct {
	keywords    []string
	destination string
}

// first match wins
var destinationRules = []destinationRule{
	{[]string{"amman"}, domain.Amman},
	{[]string{"aqaba", "al aqabah"}, domain.Aqaba},
	{[]string{"wadi rum"}, domain.WadiRum},
	{[]string{"petra", "wadi musa"}, domain.Petra},
	{[]string{"dead sea", "sweimah", "swemeh", "swaimeh"}, domain.DeadSea},
	{[]string{"jerash"}, domain.Jerash},
	{[]string{"madaba"}, domain.Madaba},
	{[]string{"irbid"}, domain.Irbid},
	{[]string{"ajloun", "ajlun"}, domain.Ajloun},
	{[]string{"karak", "kerak"}, domain.Karak},
}

// ClassifyDestination maps a free-text place to a canonical destination.
// Empty input gives "Jordan"; a place no rule recognizes is returned unchanged.
func ClassifyDestination(place string) string {
	p := strings.ToLower(place)
	if p == "" {
		return domain.Jordan
	}
	for _, r := range destinationRules {
		for _, kw := range r.keywords {
			if strings.Contains(p, kw) {
				return r.destination
			}
		}
	}
	return place
}
