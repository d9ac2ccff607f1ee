package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// KeyValueTable stores one serialized collection per row.
const KeyValueTable = "kv_entries"

var keyValueSchemas = map[string]string{
	DriverSQLite: `CREATE TABLE IF NOT EXISTS kv_entries (
		entry_key TEXT PRIMARY KEY,
		entry_value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	DriverMySQL: `CREATE TABLE IF NOT EXISTS kv_entries (
		entry_key VARCHAR(255) NOT NULL PRIMARY KEY,
		entry_value LONGTEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	DriverPostgres: `CREATE TABLE IF NOT EXISTS kv_entries (
		entry_key VARCHAR(255) PRIMARY KEY,
		entry_value TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
}

// EnsureSchema creates the key-value table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	ddl, ok := keyValueSchemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for database driver %q", db.DriverName())
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s table: %w", KeyValueTable, err)
	}
	return nil
}
