// Package database provides SQL connection management for the storage drivers.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/at-ishikawa/langcards/internal/config"
)

const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DataSourceName builds the DSN for the given driver.
func DataSourceName(driver string, cfg config.DatabaseConfig) (string, error) {
	switch driver {
	case DriverSQLite:
		if cfg.Path == "" {
			return "", fmt.Errorf("sqlite3 requires a database path")
		}
		return "file:" + cfg.Path + "?_foreign_keys=on&_busy_timeout=5000", nil
	case DriverMySQL:
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = cfg.Username
		mysqlCfg.Passwd = cfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mysqlCfg.DBName = cfg.Database
		mysqlCfg.ParseTime = true
		if cfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		if len(cfg.Params) > 0 {
			mysqlCfg.Params = cfg.Params
		}
		return mysqlCfg.FormatDSN(), nil
	case DriverPostgres:
		query := url.Values{}
		for key, value := range cfg.Params {
			query.Set(key, value)
		}
		if cfg.TLS {
			query.Set("sslmode", "require")
		} else if query.Get("sslmode") == "" {
			query.Set("sslmode", "disable")
		}
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.Username, cfg.Password),
			Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
			Path:     "/" + cfg.Database,
			RawQuery: query.Encode(),
		}
		return dsn.String(), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// Open opens a connection for driver using the provided config.
func Open(driver string, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := DataSourceName(driver, cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(%s) > %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

// RunInTx runs fn inside a transaction on db. The transaction is committed when
// fn succeeds and rolled back when it returns an error.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			slog.Default().Error("failed to roll back", "error", rollbackErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}
