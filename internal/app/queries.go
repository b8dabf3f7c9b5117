package app

import (
	"context"
	"time"

	"visitjo/internal/domain"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 200
)

type QueryService struct {
	store    domain.CatalogStore
	table    string
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(s domain.CatalogStore, table string, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: s, table: table, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := HotelCacheKey(s.table, id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.store.GetHotel(ctx, s.table, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

// ListHotels scans one page of the catalog. Pages are not cached.
func (s *QueryService) ListHotels(ctx context.Context, limit int, cursor string) (domain.HotelsPage, error) {
	return s.store.ScanHotels(ctx, s.table, ClampLimit(limit), cursor)
}

// ClampLimit maps a requested page size into 1..MaxListLimit.
func ClampLimit(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxListLimit:
		return MaxListLimit
	}
	return n
}
