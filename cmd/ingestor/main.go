package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"

	"visitjo/internal/adapters/observability"
	redisad "visitjo/internal/adapters/redis"
	"visitjo/internal/adapters/xotelo"
	"visitjo/internal/app"
	"visitjo/internal/runlog"
	"visitjo/internal/shared"
	"visitjo/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	log.Info().
		Str("location", cfg.LocationKey).
		Int("limit", cfg.Limit).
		Str("sort", cfg.Sort).
		Dur("sleep", cfg.Sleep).
		Int("max", cfg.MaxHotels).
		Str("backend", cfg.Backend).
		Str("table", cfg.HotelsTable).
		Msg("ingestor starting")

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog store init failed")
	}
	defer closeStore()

	var opts []app.WriterOption
	if cfg.RedisAddr != "" {
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cache.Close()
		opts = append(opts, app.WithCacheEviction(cache))
	}

	client := xotelo.New(cfg.XoteloBase)
	fetcher := app.NewFetcher(client, app.FetchConfig{
		LocationKey: cfg.LocationKey,
		Limit:       cfg.Limit,
		Sort:        cfg.Sort,
		Delay:       cfg.Sleep,
		MaxListings: cfg.MaxHotels,
	})
	writer := app.NewCatalogWriter(store, cfg.HotelsTable, log.Logger, opts...)
	ing := app.NewIngestionService(fetcher, writer, cfg.MaxHotels)

	var rec *runlog.RunRecord
	recorder := runlog.NewRecorder(cfg.RunlogDir)
	if cfg.RunlogDir != "" {
		rec, err = recorder.Start("ingestor", map[string]string{
			"location": cfg.LocationKey,
			"table":    cfg.HotelsTable,
			"max":      strconv.Itoa(cfg.MaxHotels),
		})
		if err != nil {
			log.Warn().Err(err).Msg("run record not started")
		}
	}

	rep, err := ing.Ingest(ctx)
	if rec != nil {
		counters := map[string]int{
			"fetched": rep.Fetched,
			"unique":  rep.Unique,
			"written": rep.Write.Written,
			"failed":  rep.Write.Failed,
		}
		if ferr := recorder.Finish(rec, counters, err); ferr != nil {
			log.Warn().Err(ferr).Msg("run record not written")
		}
	}
	if err != nil {
		closeStore()
		log.Fatal().Err(err).Msg("ingestion failed")
	}

	log.Info().
		Int("fetched", rep.Fetched).
		Int("unique", rep.Unique).
		Int("written", rep.Write.Written).
		Int("failed", rep.Write.Failed).
		Msg("ingestion completed")
}
