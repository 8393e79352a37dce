package repository

import (
	"context"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia de la empresa emisora.
// La subida de logos vive fuera de este servicio; aquí solo se guarda la ruta.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	// Update retorna domain.ErrNotFound si la empresa no existe.
	Update(ctx context.Context, company *entity.Company) error
}
