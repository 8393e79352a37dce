package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/devis-api/internal/domain"
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación de QuoteRepository: cabecera, líneas y ayudas.
// ReplaceItems/ReplaceAides deben ir dentro de TxRunner para ser atómicos.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// ── Cabecera ──────────────────────────────────────────────────────────────────

// Create persiste la cabecera del devis/factura.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	query := `
		INSERT INTO quotes (id, company_id, client_id, quote_ref, document_type, status, sent_at,
			total_ht, total_tva, total_ttc, down_payment_text, iban, installer_ref,
			capacity_attestation_no, civil_liability_insurance, footer_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.CompanyID, q.ClientID, q.Reference, q.DocumentType, q.Status, q.SentAt,
		q.TotalHT, q.TotalTVA, q.TotalTTC, q.DownPaymentText, q.IBAN, q.InstallerRef,
		q.CapacityAttestationNo, q.CivilLiabilityInsurance, q.FooterNotes, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// Update actualiza cabecera y totales. quote_ref no se toca.
func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	query := `
		UPDATE quotes SET client_id = $3, document_type = $4, total_ht = $5, total_tva = $6,
			total_ttc = $7, down_payment_text = $8, iban = $9, installer_ref = $10,
			capacity_attestation_no = $11, civil_liability_insurance = $12, footer_notes = $13,
			updated_at = $14
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		q.CompanyID, q.ID, q.ClientID, q.DocumentType, q.TotalHT, q.TotalTVA, q.TotalTTC,
		q.DownPaymentText, q.IBAN, q.InstallerRef, q.CapacityAttestationNo,
		q.CivilLiabilityInsurance, q.FooterNotes, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera. Retorna (nil, nil) si no existe en la empresa.
func (r *QuoteRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Quote, error) {
	query := `
		SELECT id, company_id, client_id, quote_ref, document_type, status, sent_at,
			total_ht, total_tva, total_ttc, COALESCE(down_payment_text, ''), COALESCE(iban, ''),
			COALESCE(installer_ref, ''), COALESCE(capacity_attestation_no, ''),
			COALESCE(civil_liability_insurance, ''), COALESCE(footer_notes, ''), created_at, updated_at
		FROM quotes WHERE company_id = $1 AND id = $2`
	var q entity.Quote
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&q.ID, &q.CompanyID, &q.ClientID, &q.Reference, &q.DocumentType, &q.Status, &q.SentAt,
		&q.TotalHT, &q.TotalTVA, &q.TotalTTC, &q.DownPaymentText, &q.IBAN, &q.InstallerRef,
		&q.CapacityAttestationNo, &q.CivilLiabilityInsurance, &q.FooterNotes, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}

const summarySelect = `
	SELECT q.id, q.quote_ref, q.document_type, q.status, q.client_id, c.name,
		COALESCE(c.email, ''), q.total_ttc, q.created_at
	FROM quotes q JOIN clients c ON c.id = q.client_id`

func (r *QuoteRepo) listSummaries(ctx context.Context, query string, args ...any) ([]*entity.QuoteSummary, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.QuoteSummary, 0)
	for rows.Next() {
		var s entity.QuoteSummary
		if err := rows.Scan(&s.ID, &s.Reference, &s.DocumentType, &s.Status, &s.ClientID,
			&s.ClientName, &s.ClientEmail, &s.TotalTTC, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByCompany lista los documentos de la empresa, más recientes primero.
func (r *QuoteRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.QuoteSummary, error) {
	return r.listSummaries(ctx, summarySelect+` WHERE q.company_id = $1 ORDER BY q.created_at DESC, q.id`, companyID)
}

// ListByClient lista los documentos de un cliente, en orden cronológico.
func (r *QuoteRepo) ListByClient(ctx context.Context, companyID, clientID string) ([]*entity.QuoteSummary, error) {
	return r.listSummaries(ctx,
		summarySelect+` WHERE q.company_id = $1 AND q.client_id = $2 ORDER BY q.created_at, q.id`,
		companyID, clientID)
}

// Delete elimina el documento; líneas y ayudas caen por ON DELETE CASCADE.
func (r *QuoteRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkSent pasa el documento a "sent" con la fecha de envío.
func (r *QuoteRepo) MarkSent(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE quotes SET status = $3, sent_at = now(), updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, entity.QuoteStatusSent)
	if err != nil {
		return fmt.Errorf("mark quote sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Líneas ────────────────────────────────────────────────────────────────────

// ReplaceItems borra las líneas actuales e inserta las nuevas con su posición.
func (r *QuoteRepo) ReplaceItems(ctx context.Context, quoteID string, items []entity.LineItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, quoteID); err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	query := `
		INSERT INTO quote_items (id, quote_id, position, description, quantity, unit_price, tva_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.QuoteID = quoteID
		it.Position = i
		if _, err := r.q.Exec(ctx, query, it.ID, quoteID, i, it.Description, it.Quantity, it.UnitPrice, it.TaxRate); err != nil {
			return fmt.Errorf("insert quote item %d: %w", i, err)
		}
	}
	return nil
}

// GetItems devuelve las líneas en orden de posición.
func (r *QuoteRepo) GetItems(ctx context.Context, quoteID string) ([]entity.LineItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, quote_id, position, description, quantity, unit_price, tva_rate
		FROM quote_items WHERE quote_id = $1 ORDER BY position, id`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.LineItem, 0)
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.Position, &it.Description, &it.Quantity, &it.UnitPrice, &it.TaxRate); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ── Ayudas ────────────────────────────────────────────────────────────────────

// ReplaceAides borra las ayudas actuales e inserta las nuevas con su posición.
func (r *QuoteRepo) ReplaceAides(ctx context.Context, quoteID string, aides []entity.Aide) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM aides WHERE quote_id = $1`, quoteID); err != nil {
		return fmt.Errorf("delete aides: %w", err)
	}
	query := `
		INSERT INTO aides (id, quote_id, position, name, description, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range aides {
		a := &aides[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		a.QuoteID = quoteID
		a.Position = i
		if _, err := r.q.Exec(ctx, query, a.ID, quoteID, i, a.Name, a.Description, a.Amount); err != nil {
			return fmt.Errorf("insert aide %d: %w", i, err)
		}
	}
	return nil
}

// GetAides devuelve las ayudas en orden de posición.
func (r *QuoteRepo) GetAides(ctx context.Context, quoteID string) ([]entity.Aide, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, quote_id, position, name, COALESCE(description, ''), amount
		FROM aides WHERE quote_id = $1 ORDER BY position, id`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list aides: %w", err)
	}
	defer rows.Close()
	aides := make([]entity.Aide, 0)
	for rows.Next() {
		var a entity.Aide
		if err := rows.Scan(&a.ID, &a.QuoteID, &a.Position, &a.Name, &a.Description, &a.Amount); err != nil {
			return nil, fmt.Errorf("scan aide: %w", err)
		}
		aides = append(aides, a)
	}
	return aides, rows.Err()
}
