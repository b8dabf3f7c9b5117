package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"visitjo/internal/adapters/observability"
	"visitjo/internal/adapters/xotelo"
	"visitjo/internal/app"
	"visitjo/internal/artifact"
	"visitjo/internal/shared"
)

// export writes the catalog as a generated data module instead of a store.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	client := xotelo.New(cfg.XoteloBase)
	fetcher := app.NewFetcher(client, app.FetchConfig{
		LocationKey: cfg.LocationKey,
		Limit:       cfg.Limit,
		Sort:        cfg.Sort,
		Delay:       cfg.Sleep,
		MaxListings: cfg.MaxHotels,
	})
	// Collect never writes, so no store is needed
	ing := app.NewIngestionService(fetcher, nil, cfg.MaxHotels)

	hotels, rep, err := ing.Collect(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch failed")
	}

	mod := artifact.Module{
		Name:        cfg.ExportName,
		SourceURL:   client.SourceURL(cfg.LocationKey),
		GeneratedAt: time.Now(),
	}
	if err := artifact.WriteFile(cfg.OutputFile, mod, hotels); err != nil {
		log.Fatal().Err(err).Str("file", cfg.OutputFile).Msg("write artifact failed")
	}
	log.Info().
		Int("fetched", rep.Fetched).
		Int("hotels", len(hotels)).
		Str("file", cfg.OutputFile).
		Msg("export completed")
}
