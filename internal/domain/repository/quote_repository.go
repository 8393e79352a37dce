package repository

import (
	"context"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

// QuoteRepository define el puerto de persistencia para devis/facturas, sus líneas y ayudas.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	// Update actualiza cabecera y totales; la referencia nunca cambia.
	Update(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Quote, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.QuoteSummary, error)
	ListByClient(ctx context.Context, companyID, clientID string) ([]*entity.QuoteSummary, error)
	Delete(ctx context.Context, companyID, id string) error
	MarkSent(ctx context.Context, companyID, id string) error

	// ReplaceItems borra las líneas actuales e inserta las nuevas en orden.
	ReplaceItems(ctx context.Context, quoteID string, items []entity.LineItem) error
	GetItems(ctx context.Context, quoteID string) ([]entity.LineItem, error)
	// ReplaceAides borra las ayudas actuales e inserta las nuevas en orden.
	ReplaceAides(ctx context.Context, quoteID string, aides []entity.Aide) error
	GetAides(ctx context.Context, quoteID string) ([]entity.Aide, error)
}

// ReferenceCounter entrega el siguiente consecutivo de referencia para (empresa, año).
// La implementación debe ser atómica (incremento transaccional).
type ReferenceCounter interface {
	Next(ctx context.Context, companyID string, year int) (int64, error)
}
