package app

import (
	"context"

	"github.com/rs/zerolog"

	"visitjo/internal/adapters/observability"
	"visitjo/internal/domain"
)

type WriteSummary struct {
	Attempted int `json:"attempted"`
	Written   int `json:"written"`
	Failed    int `json:"failed"`
}

// CatalogWriter upserts records one at a time. A failed write is logged and skipped;
// nothing is retried or rolled back.
type CatalogWriter struct {
	store domain.CatalogStore
	table string
	cache domain.Cache // optional, evicted after each successful write
	log   zerolog.Logger
}

type WriterOption func(*CatalogWriter)

func WithCacheEviction(c domain.Cache) WriterOption {
	return func(w *CatalogWriter) { w.cache = c }
}

func NewCatalogWriter(store domain.CatalogStore, table string, logger zerolog.Logger, opts ...WriterOption) *CatalogWriter {
	w := &CatalogWriter{store: store, table: table, log: logger}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *CatalogWriter) Write(ctx context.Context, hotels []domain.Hotel) WriteSummary {
	var sum WriteSummary
	for _, h := range hotels {
		sum.Attempted++
		err := w.store.PutHotel(ctx, w.table, h)
		observability.ObserveCatalogWrite(w.table, err)
		if err != nil {
			sum.Failed++
			w.log.Error().
				Err(err).
				Str("kind", observability.LabelErr(err)).
				Str("table", w.table).
				Str("name", h.Name).
				Msg("catalog write failed")
			continue
		}
		sum.Written++
		w.log.Info().Str("table", w.table).Str("id", h.ID).Msg("catalog write")
		if w.cache != nil {
			if err := w.cache.Del(ctx, HotelCacheKey(w.table, h.ID)); err != nil {
				w.log.Warn().Err(err).Str("table", w.table).Str("id", h.ID).Msg("cache eviction failed")
			}
		}
	}
	w.log.Info().
		Str("table", w.table).
		Int("attempted", sum.Attempted).
		Int("written", sum.Written).
		Int("failed", sum.Failed).
		Msg("catalog write complete")
	return sum
}

func HotelCacheKey(table, id string) string {
	return "hotel:" + table + ":" + id
}
