package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devis-api/internal/application/dto"
	"github.com/jhoicas/devis-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	QuoteUC    QuoteService
	DocumentUC DocumentService
	ClientUC   ClientService
	CompanyUC  CompanyService
	JWTSecret  string
	JWTIssuer  string
	AppName    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", App: deps.AppName})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	canDelete := RequireRole(jwt.RoleSuperAdmin, jwt.RoleAdmin, jwt.RoleUser)

	// Companies (solo super-admin)
	companies := protected.Group("/companies", RequireRole(jwt.RoleSuperAdmin))
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", canDelete, clientHandler.Delete)
	clients.Get("/:id/statement", clientHandler.Statement)

	// Quotes (devis y facturas)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.DocumentUC)
	quotes.Get("/", quoteHandler.List)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Delete("/:id", canDelete, quoteHandler.Delete)
	quotes.Get("/:id/items", quoteHandler.Items)
	quotes.Get("/:id/aides", quoteHandler.Aides)
	quotes.Get("/:id/download", quoteHandler.Download)
	quotes.Get("/:id/preview", quoteHandler.Preview)
	quotes.Post("/:id/send", quoteHandler.Send)
}
