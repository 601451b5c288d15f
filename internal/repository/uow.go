package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/nugraharzk/room-booking-solution/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type txKey struct{}

func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// TxManager implements ports.UnitOfWork. Repositories called with the
// ctx passed to fn join the transaction, so a check-and-write sequence
// commits or rolls back as one unit.
type TxManager struct {
	db *dbpg.DB
}

func NewTxManager(db *dbpg.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return mapPgError(err)
	}

	if err = tx.Commit(); err != nil {
		return mapPgError(fmt.Errorf("commit tx: %w", err))
	}

	return nil
}

// mapPgError translates storage-level conflicts into domain errors. The
// exclusion constraint on bookings is the backstop that rejects a raced
// double-insert even when the in-tx overlap check passed.
func mapPgError(err error) error {
	var pgErr *pq.Error
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23P01": // exclusion_violation
		return domain.ErrBookingConflict
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return domain.ErrConcurrencyConflict
	default:
		return err
	}
}

// queryRow routes a single-row read through the ambient transaction if
// one is active, otherwise through the retrying pool read.
func queryRow(ctx context.Context, db *dbpg.DB, strategy retry.Strategy, query string, args ...any) (*sql.Row, error) {
	if tx, ok := txFromContext(ctx); ok {
		return tx.QueryRowContext(ctx, query, args...), nil
	}
	return db.QueryRowWithRetry(ctx, strategy, query, args...)
}

func queryRows(ctx context.Context, db *dbpg.DB, strategy retry.Strategy, query string, args ...any) (*sql.Rows, error) {
	if tx, ok := txFromContext(ctx); ok {
		return tx.QueryContext(ctx, query, args...)
	}
	return db.QueryWithRetry(ctx, strategy, query, args...)
}

func execQuery(ctx context.Context, db *dbpg.DB, strategy retry.Strategy, query string, args ...any) (sql.Result, error) {
	if tx, ok := txFromContext(ctx); ok {
		return tx.ExecContext(ctx, query, args...)
	}
	return db.ExecWithRetry(ctx, strategy, query, args...)
}
