// Package storage selects the catalog backend named in the configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"visitjo/internal/domain"
	"visitjo/internal/shared"
	"visitjo/internal/storage/dynamo"
	"visitjo/internal/storage/memory"
	mysqlrepo "visitjo/internal/storage/mysql"
	pebblestore "visitjo/internal/storage/pebble"
)

// Open returns the configured store and a function releasing its resources.
func Open(ctx context.Context, cfg shared.Config) (domain.CatalogStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case shared.BackendDynamo:
		s, err := dynamo.NewFromConfig(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", cfg.Backend).Str("region", cfg.AWSRegion).Msg("catalog store ready")
		return s, noop, nil

	case shared.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("mysql open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("mysql ping: %w", err)
		}
		log.Info().Str("backend", cfg.Backend).Msg("catalog store ready")
		return mysqlrepo.New(db), db.Close, nil

	case shared.BackendPebble:
		s, err := pebblestore.Open(cfg.PebbleDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", cfg.Backend).Str("dir", cfg.PebbleDir).Msg("catalog store ready")
		return s, s.Close, nil

	case shared.BackendMemory:
		log.Warn().Str("table", cfg.HotelsTable).Msg("in-memory catalog with stub hotels; nothing is persisted")
		return memory.NewWithStubs(cfg.HotelsTable), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog backend %q", cfg.Backend)
}
