package app

import (
	"encoding/json"
	"regexp"
	"strings"

	"visitjo/internal/domain"
)

// Whitespace includes \v, NBSP and the other Unicode space separators
// that turn up in provider names.
var (
	spaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	nonWord  = regexp.MustCompile(`[^\w\s\v\p{Z}\x{FEFF}]`)
)

// DedupeListings keeps the first listing for each provider key, in input order.
// Listings without a key are dropped.
func DedupeListings(in []domain.Listing) []domain.Listing {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Listing, 0, len(in))
	for _, l := range in {
		key := l.Key.Trimmed()
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}

// NormalizeName is the comparison form of a display name: trimmed, lower-cased,
// whitespace collapsed, punctuation removed.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = spaceRun.ReplaceAllString(n, " ")
	return nonWord.ReplaceAllString(n, "")
}

// DedupeByName keeps the first item for each normalized name, in input order.
func DedupeByName[T any](in []T, name func(T) string) []T {
	seen := make(map[string]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, it := range in {
		n := NormalizeName(name(it))
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, it)
	}
	return out
}

func DedupeHotelsByName(in []domain.Hotel) []domain.Hotel {
	return DedupeByName(in, func(h domain.Hotel) string { return h.Name })
}

// DedupeRecords works on catalog records of unknown shape, keeping each one verbatim.
// A record without a string "name" compares as "".
func DedupeRecords(in []json.RawMessage) []json.RawMessage {
	return DedupeByName(in, recordName)
}

func recordName(raw json.RawMessage) string {
	var r struct {
		Name any `json:"name"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return ""
	}
	s, _ := r.Name.(string)
	return s
}
