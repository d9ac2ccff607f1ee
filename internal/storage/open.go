package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/langcards/internal/config"
	"github.com/at-ishikawa/langcards/internal/database"
)

// Open creates the key-value store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (KeyValue, error) {
	slog.Default().Debug("opening storage", "driver", cfg.Driver)

	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFileStore(cfg.Directory)
	case database.DriverSQLite, database.DriverMySQL, database.DriverPostgres:
		db, err := database.Open(cfg.Driver, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.EnsureSchema() > %w", err)
		}
		return NewSQLStore(db), nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}
