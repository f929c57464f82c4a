package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations DDL de draft_snapshots, en orden. Cada sentencia es idempotente.
var migrations = []struct {
	name string
	sql  string
}{
	{"draft_snapshots", `
		CREATE TABLE IF NOT EXISTS draft_snapshots (
			key        TEXT PRIMARY KEY,
			payload    JSONB       NOT NULL,
			subtotal   NUMERIC,
			total      NUMERIC,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{"draft_snapshots_updated_at_idx", `
		CREATE INDEX IF NOT EXISTS draft_snapshots_updated_at_idx
		ON draft_snapshots (updated_at DESC)`},
}

// TxRunner ejecuta trabajo de esquema dentro de una transacción del pool.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre una transacción, pasa la tx a fn como Querier y confirma si fn no falla.
func (r *TxRunner) Run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// EnsureSchema aplica las migraciones de draft_snapshots en una sola transacción.
func EnsureSchema(ctx context.Context, tx *TxRunner) error {
	return tx.Run(ctx, func(q Querier) error {
		return applyMigrations(ctx, q)
	})
}

func applyMigrations(ctx context.Context, q Querier) error {
	for _, m := range migrations {
		if _, err := q.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migración %s: %w", m.name, err)
		}
	}
	return nil
}
