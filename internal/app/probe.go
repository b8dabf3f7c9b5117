package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"visitjo/internal/domain"
)

// Jordan's bounding box
const (
	minLat, maxLat = 29.0, 34.5
	minLon, maxLon = 34.0, 40.0
)

func InJordan(lat, lon float64) bool {
	return lat >= minLat && lat <= maxLat && lon >= minLon && lon <= maxLon
}

type ProbeHit struct {
	LocationKey string  `json:"location_key"`
	TotalCount  int     `json:"total_count"`
	ExampleName string  `json:"example_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	ExampleURL  string  `json:"example_url"`
}

// Prober looks for provider location keys whose listings sit inside Jordan.
type Prober struct {
	src     domain.ListingSource
	limiter *rate.Limiter
}

// NewProber paces requests at one per delay; zero delay means unpaced.
func NewProber(src domain.ListingSource, delay time.Duration) *Prober {
	lim := rate.NewLimiter(rate.Inf, 1)
	if delay > 0 {
		lim = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Prober{src: src, limiter: lim}
}

// Probe scans g<start>..g<end> inclusive, one listing per key. Keys that fail
// or have no listing are skipped.
func (p *Prober) Probe(ctx context.Context, start, end int) ([]ProbeHit, error) {
	hits := []ProbeHit{}
	for id := start; id <= end; id++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return hits, err
		}
		key := fmt.Sprintf("g%d", id)
		page, err := p.src.ListPage(ctx, domain.ListQuery{LocationKey: key, Limit: 1, Offset: 0, Sort: "best_value"})
		if err != nil || len(page.Listings) == 0 {
			continue
		}
		first := page.Listings[0]
		lat, lon, ok := first.GeoPoint()
		if !ok || !InJordan(lat, lon) {
			continue
		}
		hit := ProbeHit{
			LocationKey: key,
			TotalCount:  page.TotalCount,
			ExampleName: string(first.Name),
			Lat:         lat,
			Lon:         lon,
			ExampleURL:  string(first.URL),
		}
		log.Info().Str("location", key).Int("total", hit.TotalCount).Str("example", hit.ExampleName).
			Float64("lat", lat).Float64("lon", lon).Msg("probe hit")
		hits = append(hits, hit)
	}
	log.Info().Int("hits", len(hits)).Msg("probe done")
	return hits, nil
}
