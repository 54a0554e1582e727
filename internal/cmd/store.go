package cmd

import (
	"context"
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"

	"github.com/renolab/renolab/internal/config"
	"github.com/renolab/renolab/internal/store"
)

// openStore opens the configured store and applies migrations.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg == nil {
		var err error
		cfg, err = loadConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, withExitCode(foundry.ExitExternalServiceUnavailable, err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, withExitCode(foundry.ExitExternalServiceUnavailable, err)
	}

	return db, nil
}
