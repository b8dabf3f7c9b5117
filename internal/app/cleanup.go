package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"visitjo/internal/artifact"
)

type DocumentKind string

const (
	KindArtifact DocumentKind = "artifact"
	KindArray    DocumentKind = "json-array"
	KindObject   DocumentKind = "json-object"
)

var ErrNoHotels = errors.New(`document has no "hotels" array`)

type DedupeResult struct {
	Kind   DocumentKind
	Before int
	After  int
	Data   []byte
}

// DedupeDocument removes same-name records from a catalog file and returns the rewritten file.
// Three shapes are accepted: a generated data module (re-rendered with now as its timestamp),
// a JSON array, or a JSON object with a "hotels" array. Records are kept byte for byte.
func DedupeDocument(data []byte, now time.Time) (DedupeResult, error) {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return DedupeResult{}, fmt.Errorf("decode array: %w", err)
		}
		out := DedupeRecords(records)
		b, err := encodeJSON(out)
		if err != nil {
			return DedupeResult{}, err
		}
		return DedupeResult{Kind: KindArray, Before: len(records), After: len(out), Data: b}, nil

	case bytes.HasPrefix(trimmed, []byte("{")):
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return DedupeResult{}, fmt.Errorf("decode object: %w", err)
		}
		var records []json.RawMessage
		if raw, ok := doc["hotels"]; !ok || json.Unmarshal(raw, &records) != nil || records == nil {
			return DedupeResult{}, ErrNoHotels
		}
		out := DedupeRecords(records)
		hotels, err := json.Marshal(out)
		if err != nil {
			return DedupeResult{}, err
		}
		doc["hotels"] = hotels
		b, err := encodeJSON(doc)
		if err != nil {
			return DedupeResult{}, err
		}
		return DedupeResult{Kind: KindObject, Before: len(records), After: len(out), Data: b}, nil
	}

	m, records, err := artifact.Parse(data)
	if err != nil {
		return DedupeResult{}, err
	}
	out := DedupeRecords(records)
	m.GeneratedAt = now
	b, err := artifact.Render(m, out)
	if err != nil {
		return DedupeResult{}, err
	}
	return DedupeResult{Kind: KindArtifact, Before: len(records), After: len(out), Data: b}, nil
}

func encodeJSON(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
