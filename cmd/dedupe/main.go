package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"visitjo/internal/adapters/observability"
	"visitjo/internal/app"
	"visitjo/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	data, err := os.ReadFile(cfg.DedupeFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.DedupeFile).Msg("read failed")
	}
	res, err := app.DedupeDocument(data, time.Now())
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.DedupeFile).Msg("dedupe failed")
	}
	if err := os.WriteFile(cfg.DedupeFile, res.Data, 0o644); err != nil {
		log.Fatal().Err(err).Str("file", cfg.DedupeFile).Msg("write failed")
	}
	log.Info().
		Str("file", cfg.DedupeFile).
		Str("kind", string(res.Kind)).
		Int("original", res.Before).
		Int("unique", res.After).
		Msg("deduplicated hotels")
}
