package limits

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

const upsertRecordPostgres = `
INSERT INTO storefront_records (name, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

// PostgresStore keeps the counter record in the storefront_records table
// created by the db migrations.
type PostgresStore struct {
	pool   DBPool
	record string
	logger *zap.Logger
}

func NewPostgresStore(pool DBPool, opts ...Option) *PostgresStore {
	o := newOptions(opts)
	return &PostgresStore{pool: pool, record: o.record, logger: o.logger}
}

func (s *PostgresStore) Get(ctx context.Context) (Counts, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM storefront_records WHERE name=$1`, s.record).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Counts{}, nil
		}
		return nil, fmt.Errorf("select record: %w", err)
	}
	return decodeOrEmpty([]byte(value), s.logger, s.record), nil
}

func (s *PostgresStore) Increment(ctx context.Context, productID string) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var value string
	err = tx.QueryRow(ctx, `
		SELECT value
		FROM storefront_records
		WHERE name=$1
		FOR UPDATE
	`, s.record).Scan(&value)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lock record: %w", err)
	}

	counts := decodeOrEmpty([]byte(value), s.logger, s.record)
	counts[productID]++

	body, err := Encode(counts)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, upsertRecordPostgres, s.record, string(body)); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, upsertRecordPostgres, s.record, "{}"); err != nil {
		return fmt.Errorf("reset record: %w", err)
	}
	return nil
}
