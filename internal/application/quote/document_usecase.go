package quote

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/devis-api/internal/application/dto"
	"github.com/jhoicas/devis-api/internal/domain"
	"github.com/jhoicas/devis-api/internal/domain/repository"
)

// ErrMailDisabled el servidor no tiene SMTP configurado.
var ErrMailDisabled = errors.New("envío de correo no configurado")

var unsafeFileChars = regexp.MustCompile(`[^\w-]`)

// DocumentUseCase genera el PDF de un devis para descarga, vista previa o envío por correo.
type DocumentUseCase struct {
	loader    loader
	quoteRepo repository.QuoteRepository
	renderer  DocumentRenderer
	mailer    Mailer
	fs        afero.Fs
	tmpDir    string
	log       zerolog.Logger
	now       func() time.Time
}

// DocumentDeps dependencias del caso de uso. Mailer puede ser nil (SMTP deshabilitado).
type DocumentDeps struct {
	QuoteRepo   repository.QuoteRepository
	ClientRepo  repository.ClientRepository
	CompanyRepo repository.CompanyRepository
	Renderer    DocumentRenderer
	Mailer      Mailer
	TempFs      afero.Fs
	TempDir     string
	Logger      zerolog.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(d DocumentDeps) *DocumentUseCase {
	fs := d.TempFs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DocumentUseCase{
		loader: loader{
			quoteRepo:   d.QuoteRepo,
			clientRepo:  d.ClientRepo,
			companyRepo: d.CompanyRepo,
		},
		quoteRepo: d.QuoteRepo,
		renderer:  d.Renderer,
		mailer:    d.Mailer,
		fs:        fs,
		tmpDir:    d.TempDir,
		log:       d.Logger,
		now:       time.Now,
	}
}

// Download devuelve el PDF y el nombre de archivo <document_type>_<ref>.pdf.
func (uc *DocumentUseCase) Download(ctx context.Context, companyID, id string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.loader.load(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.render(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, downloadName(doc.quote.DocumentType, doc.quote.Reference), nil
}

// Preview devuelve el PDF en base64 para mostrarlo en el navegador.
func (uc *DocumentUseCase) Preview(ctx context.Context, companyID, id string) (*dto.PreviewResponse, error) {
	doc, err := uc.loader.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := uc.render(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{PDF: base64.StdEncoding.EncodeToString(pdfBytes)}, nil
}

// Send genera el PDF, lo adjunta a un correo para el cliente y marca el devis como enviado.
// El archivo temporal se elimina siempre.
func (uc *DocumentUseCase) Send(ctx context.Context, companyID, id string, in dto.SendQuoteRequest) (*dto.SendQuoteResponse, error) {
	if uc.mailer == nil {
		return nil, ErrMailDisabled
	}

	// ── 1. Datos ──────────────────────────────────────────────────────────────
	doc, err := uc.loader.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.client.Email) == "" {
		return nil, domain.ErrNoRecipient
	}

	// ── 2. PDF ────────────────────────────────────────────────────────────────
	pdfBytes, err := uc.render(ctx, doc)
	if err != nil {
		return nil, err
	}

	// ── 3. Correo ─────────────────────────────────────────────────────────────
	mail, err := composeMail(doc, in.CustomMessage)
	if err != nil {
		return nil, err
	}
	err = withTempFile(uc.fs, uc.tmpDir, "devis-*.pdf", pdfBytes, func(path string) error {
		mail.Attachment.Path = path
		return uc.mailer.Send(ctx, mail)
	})
	if err != nil {
		return nil, fmt.Errorf("documento: enviar correo: %w", err)
	}

	// ── 4. Estado ─────────────────────────────────────────────────────────────
	if err := uc.quoteRepo.MarkSent(ctx, companyID, doc.quote.ID); err != nil {
		return nil, fmt.Errorf("documento: marcar enviado: %w", err)
	}

	sentAt := uc.now()
	uc.log.Info().
		Str("company_id", companyID).
		Str("quote_ref", doc.quote.Reference).
		Str("to", mail.To).
		Msg("documento enviado")
	return &dto.SendQuoteResponse{
		Message: documentWord(doc.quote) + " envoyé avec succès",
		SentTo:  mail.To,
		SentAt:  sentAt,
	}, nil
}

func (uc *DocumentUseCase) render(ctx context.Context, doc *document) ([]byte, error) {
	out, err := uc.renderer.Render(ctx, doc.input())
	if err != nil {
		uc.log.Error().Err(err).Str("quote_ref", doc.quote.Reference).Msg("error generando PDF")
		return nil, fmt.Errorf("documento: %w", err)
	}
	return out, nil
}

// downloadName reemplaza todo lo que no sea [A-Za-z0-9_-] de la referencia por "_".
func downloadName(documentType, ref string) string {
	return documentType + "_" + unsafeFileChars.ReplaceAllString(ref, "_") + ".pdf"
}
