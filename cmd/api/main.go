package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	"github.com/jhoicas/devis-api/internal/application/clients"
	"github.com/jhoicas/devis-api/internal/application/companies"
	"github.com/jhoicas/devis-api/internal/application/quote"
	inframail "github.com/jhoicas/devis-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/devis-api/internal/infrastructure/pdf"
	"github.com/jhoicas/devis-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/devis-api/internal/interfaces/http"
	"github.com/jhoicas/devis-api/pkg/config"
	"github.com/jhoicas/devis-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.IsDevelopment(), log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// PDF: logos y fuentes se leen solo bajo el directorio público
	assets := afero.NewBasePathFs(afero.NewOsFs(), cfg.PDF.PublicDir)
	renderer := infrapdf.NewRenderer(infrapdf.Options{
		Assets:   assets,
		FontsDir: cfg.PDF.FontsDir,
		Currency: cfg.PDF.Currency,
		Creator:  cfg.App.Name,
		Logger:   log.Component("pdf"),
	})
	statements := infrapdf.NewStatementGenerator(cfg.PDF.Currency)

	// Correo: sin SMTP_HOST el envío responde 503
	tempFs := afero.NewOsFs()
	var mailer quote.Mailer
	if cfg.SMTP.Enabled() {
		mailer = inframail.NewSMTPMailer(cfg.SMTP, tempFs, log.Component("mail"))
	} else {
		log.Warn().Msg("SMTP no configurado: envío de documentos deshabilitado")
	}

	quoteUC := quote.NewUseCase(txRunner, quoteRepo, clientRepo, log.Component("quote"))
	documentUC := quote.NewDocumentUseCase(quote.DocumentDeps{
		QuoteRepo:   quoteRepo,
		ClientRepo:  clientRepo,
		CompanyRepo: companyRepo,
		Renderer:    renderer,
		Mailer:      mailer,
		TempFs:      tempFs,
		TempDir:     cfg.PDF.TmpDir,
		Logger:      log.Component("document"),
	})
	clientUC := clients.NewUseCase(clientRepo, quoteRepo, companyRepo, statements)
	companyUC := companies.NewUseCase(companyRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Devis API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		QuoteUC:    quoteUC,
		DocumentUC: documentUC,
		ClientUC:   clientUC,
		CompanyUC:  companyUC,
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
		AppName:    cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
