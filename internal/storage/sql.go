package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/langcards/internal/database"
)

// SQLStore keeps values in the kv_entries table of a SQL database.
type SQLStore struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
	now     func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if db.DriverName() == database.DriverPostgres {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &SQLStore{
		db:      db,
		builder: builder,
		now:     time.Now,
	}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	query, args, err := s.builder.
		Select("entry_value").
		From(database.KeyValueTable).
		Where(sq.Eq{"entry_key": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build select query: %w", err)
	}

	var value string
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.upsertQuery(key, value)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetBatch writes every entry in a single transaction.
func (s *SQLStore) SetBatch(ctx context.Context, entries []Entry) error {
	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, entry := range entries {
			query, args, err := s.upsertQuery(entry.Key, entry.Value)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("save %s: %w", entry.Key, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) upsertQuery(key string, value []byte) (string, []any, error) {
	if err := validateKey(key); err != nil {
		return "", nil, err
	}
	query, args, err := s.builder.
		Insert(database.KeyValueTable).
		Columns("entry_key", "entry_value", "updated_at").
		Values(key, string(value), s.now().UnixMilli()).
		Suffix(s.upsertSuffix()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert query: %w", err)
	}
	return query, args, nil
}

func (s *SQLStore) upsertSuffix() string {
	if s.db.DriverName() == database.DriverMySQL {
		return "ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = VALUES(updated_at)"
	}
	return "ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at"
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
