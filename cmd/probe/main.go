package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"visitjo/internal/adapters/observability"
	"visitjo/internal/adapters/xotelo"
	"visitjo/internal/app"
	"visitjo/internal/shared"
)

// probe scans a range of provider location keys for ones located in Jordan
// and prints the hits as JSON on stdout.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv, cfg.LogLevel)

	log.Info().Int("start", cfg.ProbeStart).Int("end", cfg.ProbeEnd).Dur("delay", cfg.ProbeDelay).Msg("probe starting")

	p := app.NewProber(xotelo.New(cfg.XoteloBase), cfg.ProbeDelay)
	hits, err := p.Probe(ctx, cfg.ProbeStart, cfg.ProbeEnd)
	if err != nil {
		log.Warn().Err(err).Int("hits", len(hits)).Msg("probe interrupted")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(hits); err != nil {
		log.Fatal().Err(err).Msg("write hits failed")
	}
}
