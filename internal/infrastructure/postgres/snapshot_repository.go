package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-draft/internal/domain"
	domaindraft "github.com/jhoicas/invoice-draft/internal/domain/draft"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
	"github.com/jhoicas/invoice-draft/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de SnapshotRepository sobre la tabla draft_snapshots.
// subtotal y total son copias desnormalizadas para consultas de reporte; la fuente
// de verdad es payload.
type SnapshotRepo struct {
	q   Querier
	now func() time.Time
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q, now: time.Now}
}

// Get devuelve el payload guardado bajo key.
func (r *SnapshotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.q.QueryRow(ctx, `SELECT payload FROM draft_snapshots WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("get snapshot: tabla draft_snapshots inexistente: %w", err)
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return payload, nil
}

// Set hace upsert del payload y recalcula las columnas de totales.
// jsonb no acepta texto que no sea JSON; en ese caso la escritura falla.
func (r *SnapshotRepo) Set(ctx context.Context, key string, data []byte) error {
	subtotal, total := totalsOf(data)
	query := `
		INSERT INTO draft_snapshots (key, payload, subtotal, total, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE
		SET payload    = EXCLUDED.payload,
		    subtotal   = EXCLUDED.subtotal,
		    total      = EXCLUDED.total,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, key, string(data), subtotal, total, r.now())
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Remove borra key; no es error si no existe.
func (r *SnapshotRepo) Remove(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM draft_snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// totalsOf calcula subtotal y total del payload; nil si no es un borrador decodificable.
func totalsOf(data []byte) (subtotal, total *decimal.Decimal) {
	var d entity.InvoiceDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, nil
	}
	t := domaindraft.Compute(d)
	sub, tot := t.Subtotal.Round(4), t.Total.Round(4)
	return &sub, &tot
}
