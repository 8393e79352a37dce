// Package companies administra las empresas emisoras: datos de contacto,
// logo y colores de marca que usa el PDF.
package companies

import (
	"context"
	"fmt"
	"net/mail"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/devis-api/internal/application/dto"
	"github.com/jhoicas/devis-api/internal/domain"
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/repository"
)

// Colores guardados cuando la petición no trae tema.
const (
	DefaultPrimaryColor   = "#2563eb"
	DefaultSecondaryColor = "#64748b"
	DefaultAccentColor    = "#059669"
	DefaultTextColor      = "#1f2937"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// UseCase casos de uso de empresas (solo super-admin).
type UseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso con el puerto de persistencia.
func NewUseCase(repo repository.CompanyRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Create registra una empresa.
func (uc *UseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Company{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	apply(c, in)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("empresa: crear: %w", err)
	}
	return toResponse(c), nil
}

// Get obtiene una empresa por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("empresa: obtener: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(c), nil
}

// List todas las empresas por nombre.
func (uc *UseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("empresa: listar: %w", err)
	}
	out := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos de la empresa. Sin logo_path se conserva el actual.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("empresa: obtener: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.LogoPath == "" {
		in.LogoPath = c.LogoPath
	}
	apply(c, in)
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("empresa: actualizar: %w", err)
	}
	return toResponse(c), nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

func normalize(in dto.CompanyRequest) (dto.CompanyRequest, error) {
	for _, f := range []*string{
		&in.Name, &in.Phone, &in.Email, &in.Website, &in.Address, &in.Siret, &in.LogoPath,
		&in.ThemePrimaryColor, &in.ThemeSecondaryColor, &in.ThemeAccentColor, &in.ThemeTextColor,
	} {
		*f = strings.TrimSpace(*f)
	}
	if in.Name == "" || in.Phone == "" || in.Email == "" || in.Website == "" || in.Address == "" {
		return in, invalid("name, phone, email, website y address son obligatorios")
	}
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return in, invalid("email inválido")
	}
	if in.LogoPath != "" {
		if strings.Contains(in.LogoPath, "..") {
			return in, invalid("logo_path inválido")
		}
		switch strings.ToLower(path.Ext(in.LogoPath)) {
		case ".png", ".jpg", ".jpeg", ".gif":
		default:
			return in, invalid("logo_path debe ser png, jpg o gif")
		}
	}
	colors := []struct {
		field string
		value *string
		def   string
	}{
		{"theme_primary_color", &in.ThemePrimaryColor, DefaultPrimaryColor},
		{"theme_secondary_color", &in.ThemeSecondaryColor, DefaultSecondaryColor},
		{"theme_accent_color", &in.ThemeAccentColor, DefaultAccentColor},
		{"theme_text_color", &in.ThemeTextColor, DefaultTextColor},
	}
	for _, c := range colors {
		if *c.value == "" {
			*c.value = c.def
			continue
		}
		if !hexColor.MatchString(*c.value) {
			return in, invalid("%s debe tener formato #RRGGBB", c.field)
		}
	}
	return in, nil
}

func apply(c *entity.Company, in dto.CompanyRequest) {
	c.Name = in.Name
	c.Phone = in.Phone
	c.Email = in.Email
	c.Website = in.Website
	c.Address = in.Address
	c.Siret = in.Siret
	c.LogoPath = in.LogoPath
	c.Theme = entity.Theme{
		Primary:   in.ThemePrimaryColor,
		Secondary: in.ThemeSecondaryColor,
		Accent:    in.ThemeAccentColor,
		Text:      in.ThemeTextColor,
	}
}

func toResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Phone:               c.Phone,
		Email:               c.Email,
		Website:             c.Website,
		Address:             c.Address,
		Siret:               c.Siret,
		LogoPath:            c.LogoPath,
		ThemePrimaryColor:   c.Theme.Primary,
		ThemeSecondaryColor: c.Theme.Secondary,
		ThemeAccentColor:    c.Theme.Accent,
		ThemeTextColor:      c.Theme.Text,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
