// Package artifact renders and reads back the generated JavaScript data module the site imports.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	TimeFormat = "2006-01-02T15:04:05.000Z07:00"

	sourcePrefix    = "// Source: "
	generatedPrefix = "// Generated at: "
)

var (
	ErrNotArtifact = errors.New("artifact: no exported array found")
	identRe        = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Module describes the banner and export name of a generated file.
type Module struct {
	Name        string
	SourceURL   string
	GeneratedAt time.Time
}

// Render writes the banner followed by a named and a default export of records.
// records is any JSON-encodable value, normally a slice.
func Render(m Module, records any) ([]byte, error) {
	if !identRe.MatchString(m.Name) {
		return nil, fmt.Errorf("artifact: invalid export name %q", m.Name)
	}
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("artifact: encode records: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("/* eslint-disable */\n")
	b.WriteString("// GENERATED FILE — do not edit by hand\n")
	b.WriteString(sourcePrefix + m.SourceURL + "\n")
	b.WriteString(generatedPrefix + m.GeneratedAt.UTC().Format(TimeFormat) + "\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "export const %s = %s;\n", m.Name, bytes.TrimRight(body.Bytes(), "\n"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "export default %s;\n", m.Name)
	return b.Bytes(), nil
}

// Parse reads a generated file back: the banner fields, when present, and the
// exported array as raw records.
func Parse(src []byte) (Module, []json.RawMessage, error) {
	var m Module
	s := string(src)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, sourcePrefix):
			m.SourceURL = strings.TrimPrefix(line, sourcePrefix)
		case strings.HasPrefix(line, generatedPrefix):
			if t, err := time.Parse(TimeFormat, strings.TrimPrefix(line, generatedPrefix)); err == nil {
				m.GeneratedAt = t
			}
		}
	}

	const decl = "export const "
	i := strings.Index(s, decl)
	if i < 0 {
		return m, nil, ErrNotArtifact
	}
	rest := s[i+len(decl):]
	eq := strings.Index(rest, " = ")
	if eq < 0 {
		return m, nil, ErrNotArtifact
	}
	m.Name = strings.TrimSpace(rest[:eq])
	arr := rest[eq+len(" = "):]
	end := strings.LastIndex(arr, "];")
	if end < 0 {
		return m, nil, ErrNotArtifact
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(arr[:end+1]), &records); err != nil {
		return m, nil, fmt.Errorf("artifact: decode %s: %w", m.Name, err)
	}
	return m, records, nil
}

// WriteFile renders to path, creating parent directories.
func WriteFile(path string, m Module, records any) error {
	out, err := Render(m, records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, out, 0o644)
}
