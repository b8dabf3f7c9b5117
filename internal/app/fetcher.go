package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"visitjo/internal/adapters/observability"
	"visitjo/internal/domain"
)

const (
	DefaultPageLimit = 100
	DefaultPageDelay = 180 * time.Millisecond
)

type FetchConfig struct {
	LocationKey string
	Limit       int
	Sort        string
	Delay       time.Duration // pause between pages
	MaxListings int           // 0 means no cap
}

// Fetcher walks the provider's list endpoint page by page.
type Fetcher struct {
	src   domain.ListingSource
	cfg   FetchConfig
	sleep func(context.Context, time.Duration) error
}

type FetcherOption func(*Fetcher)

// WithSleep replaces the pause between pages, mostly for tests.
func WithSleep(fn func(context.Context, time.Duration) error) FetcherOption {
	return func(f *Fetcher) {
		if fn != nil {
			f.sleep = fn
		}
	}
}

func NewFetcher(src domain.ListingSource, cfg FetchConfig, opts ...FetcherOption) *Fetcher {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultPageLimit
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	f := &Fetcher{src: src, cfg: cfg, sleep: sleepCtx}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll requests pages sequentially until the offset reaches the provider's total.
// Any page error aborts the run and no partial list is returned.
func (f *Fetcher) FetchAll(ctx context.Context) ([]domain.Listing, error) {
	var all []domain.Listing
	offset, total := 0, 0
	for {
		page, err := f.src.ListPage(ctx, domain.ListQuery{
			LocationKey: f.cfg.LocationKey,
			Limit:       f.cfg.Limit,
			Offset:      offset,
			Sort:        f.cfg.Sort,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch %s offset=%d: %w", f.cfg.LocationKey, offset, err)
		}
		all = append(all, page.Listings...)
		total = page.TotalCount
		log.Info().
			Str("location", f.cfg.LocationKey).
			Int("offset", offset).
			Int("count", len(page.Listings)).
			Int("total", total).
			Msg("fetched page")

		offset += f.cfg.Limit
		if f.cfg.MaxListings > 0 && len(all) >= f.cfg.MaxListings {
			break
		}
		if offset >= total {
			break
		}
		if err := f.sleep(ctx, f.cfg.Delay); err != nil {
			return nil, err
		}
	}
	observability.ObserveListings(f.cfg.LocationKey, len(all))
	return all, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
