package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adhaka3/whatsapp-llm-agent/internal/config"
	storepkg "github.com/adhaka3/whatsapp-llm-agent/internal/store"
	storepg "github.com/adhaka3/whatsapp-llm-agent/internal/store/postgres"
	storesqlite "github.com/adhaka3/whatsapp-llm-agent/internal/store/sqlite"
)

// NewStore returns a store.Store for the configured DB_DRIVER.
// SQLite opens and migrates synchronously; it is a local file and costs
// nothing. Postgres opens synchronously so health checks have a connection,
// and runs its schema bootstrap in the background.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := storesqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := storesqlite.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		return storesqlite.NewWithDB(db), nil

	case "postgres":
		dsn := cfg.PostgresDSN
		if dsn == "" {
			return nil, fmt.Errorf("MEALTRACK_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(dsn)
		if err != nil {
			return nil, err
		}

		// Async bootstrap check with configurable timeout; don't block startup
		go func() {
			bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
			bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
			defer cancel()

			if err := storepg.Bootstrap(bootstrapCtx, dsn); err != nil {
				log.Warn().Err(err).Str("driver", cfg.DBDriver).Msg("store bootstrap check failed")
			} else {
				log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap check completed")
			}
		}()

		return storepg.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
