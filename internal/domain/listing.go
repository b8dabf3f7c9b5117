package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Listing is one entry of the provider's list endpoint.
// Every field decodes leniently: a missing or wrong-typed value leaves the zero value
// and never fails the page.
type Listing struct {
	Name                Text          `json:"name"`
	Key                 Text          `json:"key"`
	URL                 Text          `json:"url"`
	ReviewSummary       ReviewSummary `json:"review_summary"`
	PriceRanges         PriceRanges   `json:"price_ranges"`
	Image               JSONString    `json:"image"`
	Address             Text          `json:"address"`
	Latitude            Number        `json:"latitude"`
	Longitude           Number        `json:"longitude"`
	AccommodationType   Text          `json:"accommodation_type"`
	Mentions            List          `json:"mentions"`
	MerchandisingLabels List          `json:"merchandising_labels"`
	Geo                 Object        `json:"geo"`
}

func (l *Listing) UnmarshalJSON(b []byte) error {
	type plain Listing
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		*l = Listing{}
		return nil
	}
	*l = Listing(v)
	return nil
}

// GeoPoint reports the listing's geo.latitude/geo.longitude when both are present.
func (l Listing) GeoPoint() (lat, lon float64, ok bool) {
	if len(l.Geo) == 0 {
		return 0, 0, false
	}
	var g struct {
		Latitude  *Number `json:"latitude"`
		Longitude *Number `json:"longitude"`
	}
	if err := json.Unmarshal(l.Geo, &g); err != nil || g.Latitude == nil || g.Longitude == nil {
		return 0, 0, false
	}
	return float64(*g.Latitude), float64(*g.Longitude), true
}

type ReviewSummary struct {
	Rating Number `json:"rating"`
	Count  Number `json:"count"`
}

func (r *ReviewSummary) UnmarshalJSON(b []byte) error {
	type plain ReviewSummary
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		*r = ReviewSummary{}
		return nil
	}
	*r = ReviewSummary(v)
	return nil
}

// PriceRanges keeps the provider object verbatim next to the one field we read from it.
type PriceRanges struct {
	Minimum Number
	Raw     json.RawMessage // nil when absent or falsy
}

func (p *PriceRanges) UnmarshalJSON(b []byte) error {
	*p = PriceRanges{}
	if Truthy(b) {
		p.Raw = append(json.RawMessage(nil), b...)
	}
	var v struct {
		Minimum Number `json:"minimum"`
	}
	if err := json.Unmarshal(b, &v); err == nil {
		p.Minimum = v.Minimum
	}
	return nil
}

// Number decodes any JSON value to a finite float: numbers as-is, numeric strings parsed,
// true as 1, everything else (including NaN/Inf) as 0.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	var f float64
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = v
	case 't':
		f = 1
	case 'f', 'n', '[', '{':
		return nil
	default:
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return nil
		}
		f = v
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = Number(f)
	return nil
}

// Text decodes strings as-is, non-zero numbers and true to their text form,
// and every other value to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*t = Text(s)
		}
	case 't':
		*t = "true"
	case 'f', 'n', '[', '{':
	default:
		if f, err := strconv.ParseFloat(string(b), 64); err == nil && f != 0 {
			*t = Text(strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	return nil
}

func (t Text) Trimmed() string { return strings.TrimSpace(string(t)) }

// JSONString accepts only JSON strings; any other value decodes to "".
type JSONString string

func (s *JSONString) UnmarshalJSON(b []byte) error {
	*s = ""
	var v string
	if err := json.Unmarshal(b, &v); err == nil {
		*s = JSONString(v)
	}
	return nil
}

// List keeps the elements of a JSON array; non-arrays decode to an empty list.
type List []json.RawMessage

func (l *List) UnmarshalJSON(b []byte) error {
	*l = List{}
	var v []json.RawMessage
	if err := json.Unmarshal(b, &v); err == nil && v != nil {
		*l = v
	}
	return nil
}

// Object keeps a JSON object verbatim; anything else decodes to nil.
type Object json.RawMessage

func (o *Object) UnmarshalJSON(b []byte) error {
	*o = nil
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		*o = append(Object(nil), b...)
	}
	return nil
}

// Truthy reports whether a raw JSON value is set to something other than null, false, 0 or "".
func Truthy(b []byte) bool {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return false
	}
	switch string(b) {
	case "null", "false", `""`:
		return false
	}
	if c := b[0]; c == '-' || (c >= '0' && c <= '9') {
		f, err := strconv.ParseFloat(string(b), 64)
		return err == nil && f != 0
	}
	return true
}
