package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"visitjo/internal/domain"
)

type IngestReport struct {
	Fetched int          `json:"fetched"`
	Unique  int          `json:"unique"`
	Write   WriteSummary `json:"write"`
}

// IngestionService runs fetch, dedupe, map and write as one sequential pipeline.
type IngestionService struct {
	fetcher *Fetcher
	writer  *CatalogWriter
	max     int
	now     func() time.Time
}

func NewIngestionService(f *Fetcher, w *CatalogWriter, maxListings int) *IngestionService {
	return &IngestionService{fetcher: f, writer: w, max: maxListings, now: time.Now}
}

// Collect fetches every page and returns the unique, mapped records, all stamped with one
// generation time. Fetch errors are returned as-is.
func (s *IngestionService) Collect(ctx context.Context) ([]domain.Hotel, IngestReport, error) {
	var rep IngestReport
	listings, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, rep, err
	}
	rep.Fetched = len(listings)

	unique := DedupeListings(listings)
	if s.max > 0 && len(unique) > s.max {
		unique = unique[:s.max]
	}
	rep.Unique = len(unique)
	log.Info().Int("fetched", rep.Fetched).Int("unique", rep.Unique).Msg("deduplicated listings")

	return MapListings(unique, s.now()), rep, nil
}

// Ingest collects and writes. Per-record write failures are counted in the report, not returned.
func (s *IngestionService) Ingest(ctx context.Context) (IngestReport, error) {
	hotels, rep, err := s.Collect(ctx)
	if err != nil {
		return rep, err
	}
	rep.Write = s.writer.Write(ctx, hotels)
	return rep, nil
}
