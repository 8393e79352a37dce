package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devis-api/internal/application/dto"
)

// QuoteService CRUD de devis/facturas (implementado por quote.UseCase).
type QuoteService interface {
	Create(ctx context.Context, companyID string, in dto.QuoteRequest) (*dto.QuoteResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.QuoteRequest) (*dto.QuoteResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.QuoteResponse, error)
	List(ctx context.Context, companyID string) ([]dto.QuoteSummaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Items(ctx context.Context, companyID, id string) ([]dto.QuoteItemResponse, error)
	Aides(ctx context.Context, companyID, id string) ([]dto.AideResponse, error)
}

// DocumentService PDF del devis (implementado por quote.DocumentUseCase).
type DocumentService interface {
	Download(ctx context.Context, companyID, id string) ([]byte, string, error)
	Preview(ctx context.Context, companyID, id string) (*dto.PreviewResponse, error)
	Send(ctx context.Context, companyID, id string, in dto.SendQuoteRequest) (*dto.SendQuoteResponse, error)
}

// QuoteHandler maneja las peticiones HTTP de devis y facturas (protegido).
type QuoteHandler struct {
	quotes    QuoteService
	documents DocumentService
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(quotes QuoteService, documents DocumentService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, documents: documents}
}

// List GET /api/quotes
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	list, err := h.quotes.List(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	q, err := h.quotes.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

// GetByID GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	q, err := h.quotes.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(q)
}

// Update PUT /api/quotes/:id
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	q, err := h.quotes.Update(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(q)
}

// Delete DELETE /api/quotes/:id
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.quotes.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "document supprimé"})
}

// Items GET /api/quotes/:id/items
func (h *QuoteHandler) Items(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	items, err := h.quotes.Items(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Aides GET /api/quotes/:id/aides
func (h *QuoteHandler) Aides(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	aides, err := h.quotes.Aides(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(aides)
}

// Download GET /api/quotes/:id/download
// Devuelve el PDF como adjunto (Content-Disposition: attachment).
func (h *QuoteHandler) Download(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	data, filename, err := h.documents.Download(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Preview GET /api/quotes/:id/preview
func (h *QuoteHandler) Preview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	resp, err := h.documents.Preview(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Send POST /api/quotes/:id/send
// Cuerpo opcional: {"custom_message": "..."}.
func (h *QuoteHandler) Send(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.SendQuoteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return invalidBody(c)
		}
	}
	resp, err := h.documents.Send(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
