package limits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Register sqlite driver
)

const createRecordsTableSQLite = `
CREATE TABLE IF NOT EXISTS storefront_records (
	name       TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const upsertRecordSQLite = `
INSERT INTO storefront_records (name, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (name) DO UPDATE
SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

// SQLiteStore keeps the counter record in a local SQLite file, the
// closest equivalent of browser local storage for a single device.
type SQLiteStore struct {
	db     *sql.DB
	record string
	logger *zap.Logger
}

// OpenSQLite opens (or creates) the database at path and prepares the schema.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer keeps SQLite from reporting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s, err := NewSQLiteStore(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLiteStore(ctx context.Context, db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, createRecordsTableSQLite); err != nil {
		return nil, fmt.Errorf("create storefront_records: %w", err)
	}
	o := newOptions(opts)
	return &SQLiteStore{db: db, record: o.record, logger: o.logger}, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (Counts, error) {
	raw, err := s.read(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return decodeOrEmpty(raw, s.logger, s.record), nil
}

func (s *SQLiteStore) Increment(ctx context.Context, productID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	raw, err := s.read(ctx, tx)
	if err != nil {
		return err
	}
	counts := decodeOrEmpty(raw, s.logger, s.record)
	counts[productID]++

	if err = s.write(ctx, tx, counts); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	return s.write(ctx, s.db, Counts{})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type sqlQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) read(ctx context.Context, q sqlQueryer) ([]byte, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM storefront_records WHERE name = ?`, s.record).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select record: %w", err)
	}
	return []byte(value), nil
}

func (s *SQLiteStore) write(ctx context.Context, q sqlQueryer, counts Counts) error {
	body, err := Encode(counts)
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, upsertRecordSQLite, s.record, string(body)); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}
