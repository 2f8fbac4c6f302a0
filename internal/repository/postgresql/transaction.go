package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/database"
)

// txKey carries the active transaction in a context.
type txKey struct{}

// WithReadOnlySnapshot executes fn inside a read-only REPEATABLE READ
// transaction. Repositories called with the ctx handed to fn run on that
// transaction and therefore all read the same snapshot.
func WithReadOnlySnapshot(ctx context.Context, h *database.Handle, fn func(ctx context.Context) error) error {
	db, err := h.Get(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginReadOnly(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				slog.Error("rollback error during panic recovery", "error", rbErr)
			}
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns either the transaction carried by ctx or the pool.
// The pool is opened on first use.
func GetQuerier(ctx context.Context, h *database.Handle) (database.Querier, error) {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx, nil
	}
	db, err := h.Get(ctx)
	if err != nil {
		return nil, err
	}
	return db.Pool, nil
}
