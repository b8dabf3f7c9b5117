package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"visitjo/internal/adapters/observability"
	redisad "visitjo/internal/adapters/redis"
	"visitjo/internal/app"
	"visitjo/internal/domain"
	"visitjo/internal/shared"
	"visitjo/internal/storage"
)

// import loads an already normalized hotel file into the catalog.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	data, err := os.ReadFile(cfg.ImportFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.ImportFile).Msg("read failed")
	}
	var hotels []domain.Hotel
	if err := json.Unmarshal(data, &hotels); err != nil {
		log.Fatal().Err(err).Str("file", cfg.ImportFile).Msg("decode failed")
	}

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

	log.Info().Int("hotels", len(hotels)).Str("table", cfg.HotelsTable).Msg("importing")
	app.NewCatalogWriter(store, cfg.HotelsTable, log.Logger, opts...).Write(ctx, hotels)
}
