package repository

import (
	"context"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// Todas las operaciones están acotadas a la empresa (multi-tenant).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Client, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete retorna domain.ErrNotFound si el cliente no existe en la empresa.
	Delete(ctx context.Context, companyID, id string) error
}
