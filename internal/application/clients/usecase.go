// Package clients gestiona los clientes de una empresa y su relevé de compte.
package clients

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/devis-api/internal/application/dto"
	"github.com/jhoicas/devis-api/internal/domain"
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/repository"
	"github.com/jhoicas/devis-api/internal/infrastructure/pdf"
)

// StatementGenerator genera el PDF con el historial de documentos del cliente.
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, in pdf.StatementInput) ([]byte, error)
}

// UseCase casos de uso de clientes.
type UseCase struct {
	clientRepo  repository.ClientRepository
	quoteRepo   repository.QuoteRepository
	companyRepo repository.CompanyRepository
	statements  StatementGenerator
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	clientRepo repository.ClientRepository,
	quoteRepo repository.QuoteRepository,
	companyRepo repository.CompanyRepository,
	statements StatementGenerator,
) *UseCase {
	return &UseCase{
		clientRepo:  clientRepo,
		quoteRepo:   quoteRepo,
		companyRepo: companyRepo,
		statements:  statements,
		now:         time.Now,
	}
}

// Create registra un cliente de la empresa.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(c, in)
	if err := uc.clientRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("cliente: crear: %w", err)
	}
	return toResponse(c), nil
}

// Get obtiene un cliente de la empresa.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.ClientResponse, error) {
	c, err := uc.clientRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("cliente: obtener: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(c), nil
}

// List clientes de la empresa ordenados por nombre.
func (uc *UseCase) List(ctx context.Context, companyID string) ([]dto.ClientResponse, error) {
	list, err := uc.clientRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("cliente: listar: %w", err)
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *UseCase) Update(ctx context.Context, companyID, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	c, err := uc.clientRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("cliente: obtener: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	apply(c, in)
	c.UpdatedAt = uc.now()
	if err := uc.clientRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("cliente: actualizar: %w", err)
	}
	return toResponse(c), nil
}

// Delete elimina el cliente. Con documentos asociados el repo devuelve ErrConflict.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.clientRepo.Delete(ctx, companyID, id); err != nil {
		return fmt.Errorf("cliente: eliminar: %w", err)
	}
	return nil
}

// Statement genera el relevé de compte del cliente y el nombre de archivo.
func (uc *UseCase) Statement(ctx context.Context, companyID, id string) ([]byte, string, error) {
	c, err := uc.clientRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, "", fmt.Errorf("cliente: obtener: %w", err)
	}
	if c == nil {
		return nil, "", domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("cliente: obtener empresa: %w", err)
	}
	summaries, err := uc.quoteRepo.ListByClient(ctx, companyID, id)
	if err != nil {
		return nil, "", fmt.Errorf("cliente: documentos: %w", err)
	}
	quotes := make([]entity.QuoteSummary, 0, len(summaries))
	for _, s := range summaries {
		quotes = append(quotes, *s)
	}

	issued := uc.now()
	out, err := uc.statements.GenerateStatement(ctx, pdf.StatementInput{
		Company:  company,
		Client:   c,
		Quotes:   quotes,
		IssuedAt: issued,
	})
	if err != nil {
		return nil, "", fmt.Errorf("cliente: relevé: %w", err)
	}
	return out, "releve_" + issued.Format("20060102") + ".pdf", nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func normalize(in dto.ClientRequest) (dto.ClientRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Title = strings.TrimSpace(in.Title)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return in, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.Email != "" {
		addr, err := mail.ParseAddress(in.Email)
		if err != nil || addr.Address != in.Email {
			return in, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
	}
	return in, nil
}

func apply(c *entity.Client, in dto.ClientRequest) {
	c.Name = in.Name
	c.Title = in.Title
	c.Address = in.Address
	c.Phone = in.Phone
	c.Email = in.Email
}

func toResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Title:     c.Title,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
