package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/devis-api/internal/domain/repository"
)

var _ repository.ReferenceCounter = (*ReferenceCounterRepo)(nil)

// ReferenceCounterRepo consecutivo de referencias por (empresa, año).
type ReferenceCounterRepo struct {
	q Querier
}

// NewReferenceCounter construye el contador. Dentro de TxRunner el incremento
// se revierte junto con el devis si la transacción falla.
func NewReferenceCounter(q Querier) *ReferenceCounterRepo {
	return &ReferenceCounterRepo{q: q}
}

// Next incrementa y devuelve el consecutivo; el upsert bloquea la fila hasta el commit.
func (r *ReferenceCounterRepo) Next(ctx context.Context, companyID string, year int) (int64, error) {
	query := `
		INSERT INTO reference_counters (company_id, year, value) VALUES ($1, $2, 1)
		ON CONFLICT (company_id, year) DO UPDATE SET value = reference_counters.value + 1
		RETURNING value`
	var n int64
	if err := r.q.QueryRow(ctx, query, companyID, year).Scan(&n); err != nil {
		return 0, fmt.Errorf("next reference: %w", err)
	}
	return n, nil
}
