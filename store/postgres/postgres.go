// Package postgres implements store.Store on PostgreSQL through pgx/v5.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// querier is the subset shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store talks to PostgreSQL. Inside WithinTx every call goes through the open pgx.Tx.
type Store struct {
	pool *pgxpool.Pool
	q    querier
	tx   pgx.Tx
}

var _ store.Store = (*Store)(nil)

// New wraps an open pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

// WithinTx runs fn in a READ COMMITTED transaction. Rows written inside fn are
// additionally guarded by their version column.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(&Store{pool: s.pool, q: tx, tx: tx})
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool. It is a no-op on a transactional view.
func (s *Store) Close() {
	if s.tx == nil {
		s.pool.Close()
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid numeric value %q: %w", raw, err)
	}
	return d, nil
}

func dateParam(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func fromPgDate(d pgtype.Date) *models.Date {
	if !d.Valid {
		return nil
	}
	date := models.DateOf(d.Time)
	return &date
}

func countRows(ctx context.Context, q querier, sql string, args ...any) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func isPgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
