package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotFound     = errors.New("catalog: not found")
	ErrInvalidTable = errors.New("catalog: invalid table name")
)

// CatalogStore is the key-value document store behind the site.
// Writes are upserts keyed by Hotel.ID; reads are point lookups or bounded scans.
type CatalogStore interface {
	PutHotel(ctx context.Context, table string, h Hotel) error
	GetHotel(ctx context.Context, table, id string) (Hotel, error)
	ScanHotels(ctx context.Context, table string, limit int, cursor string) (HotelsPage, error)
}

// ListingSource is the provider's paged list endpoint.
type ListingSource interface {
	ListPage(ctx context.Context, q ListQuery) (ListPage, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type ListQuery struct {
	LocationKey string
	Limit       int
	Offset      int
	Sort        string
}

type ListPage struct {
	Listings   []Listing
	TotalCount int
}

type HotelsPage struct {
	Items      []Hotel `json:"hotels"`
	NextCursor *string `json:"nextCursor"`
}

var tableRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,255}$`)

// ValidateTable rejects identifiers that no backend accepts as a table name.
func ValidateTable(name string) error {
	if !tableRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return nil
}
