package domain

import (
	"encoding/base64"
	"encoding/json"
)

// EncodeCursor turns the last key returned by a scan into an opaque page token.
func EncodeCursor(lastID string) string {
	if lastID == "" {
		return ""
	}
	b, err := json.Marshal(map[string]string{"id": lastID})
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeCursor returns the id a scan resumes after. A malformed token restarts the scan.
func DecodeCursor(cursor string) string {
	if cursor == "" {
		return ""
	}
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return ""
	}
	var key map[string]string
	if err := json.Unmarshal(b, &key); err != nil {
		return ""
	}
	return key["id"]
}
