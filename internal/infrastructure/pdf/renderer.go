// Package pdf genera el documento DEVIS / FACTURE a partir de un presupuesto,
// sus partidas, sus ayudas, la empresa emisora y el cliente.
//
// Layout de la página A4 (puntos, margen 40):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER (160): logo o nombre + contacto │ DEVIS/FACTURE N°   │
//	│  ADRESSÉ À: nombre, título │ teléfono / email / dirección    │
//	│  TABLA: Description | Qté | Prix unit. HT | Total HT         │
//	│  (… continúa en páginas siguientes si no cabe …)             │
//	│  AIDES FINANCIÈRES (opcional)                                │
//	│                              Sous-total / TVA / TTC / À PAYER│
//	│  CONDITIONS DE PAIEMENT                  Bon pour accord     │
//	│▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀ barra inferior ▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀│
//	└─────────────────────────────────────────────────────────────┘
//
// Los errores de recursos (logo, fuentes) y de textos individuales se degradan
// a un valor por defecto; solo un fallo del propio documento es fatal.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/totals"
)

// ErrRender envuelve todo fallo fatal de generación.
var ErrRender = errors.New("pdf: no se pudo generar el documento")

// DefaultFontsDir es relativo a la raíz de assets.
const DefaultFontsDir = "/fonts"

// Input son los datos de un render. Quote es obligatorio; Company y Client
// ausentes se imprimen con textos por defecto.
type Input struct {
	Quote   *entity.Quote
	Items   []entity.LineItem
	Aides   []entity.Aide
	Company *entity.Company
	Client  *entity.Client
}

// Options configura el Renderer.
type Options struct {
	// Assets es la raíz pública (logos y fuentes). nil = sin assets.
	Assets   afero.Fs
	FontsDir string
	Currency string
	Creator  string
	Logger   zerolog.Logger
}

// Renderer es inmutable y seguro para uso concurrente: cada Render crea su
// propio documento.
type Renderer struct {
	assets   afero.Fs
	fontsDir string
	money    MoneyFormatter
	creator  string
	log      zerolog.Logger
}

// NewRenderer construye el renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.FontsDir == "" {
		opts.FontsDir = DefaultFontsDir
	}
	if opts.Creator == "" {
		opts.Creator = "devis-api"
	}
	return &Renderer{
		assets:   opts.Assets,
		fontsDir: opts.FontsDir,
		money:    NewMoneyFormatter(opts.Currency),
		creator:  opts.Creator,
		log:      opts.Logger,
	}
}

// Render genera el PDF completo. Nunca devuelve un buffer parcial.
func (r *Renderer) Render(ctx context.Context, in Input) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	e, err := r.layout(in)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := e.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// layout ejecuta HEADER → CLIENT → ITEMS → AIDES? → TOTALS → FOOTER sin
// serializar el documento.
func (r *Renderer) layout(in Input) (*engine, error) {
	if in.Quote == nil {
		return nil, fmt.Errorf("%w: presupuesto nil", ErrRender)
	}
	company := in.Company
	if company == nil {
		company = &entity.Company{}
	}
	client := in.Client
	if client == nil {
		client = &entity.Client{}
	}

	doc := fpdf.New("P", "pt", "A4", "")
	if doc.Err() {
		return nil, fmt.Errorf("%w: %w", ErrRender, doc.Error())
	}
	created := in.Quote.CreatedAt
	if created.IsZero() {
		created = time.Unix(0, 0).UTC()
	}
	doc.SetCreationDate(created)
	doc.SetModificationDate(created)
	doc.SetCatalogSort(true)
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCellMargin(0)
	doc.SetLineWidth(0.8)

	label, _ := documentLabel(in.Quote)
	doc.SetTitle(label+" "+Sanitize(in.Quote.Reference), true)
	doc.SetAuthor(Sanitize(company.Name), true)
	doc.SetCreator(r.creator, true)

	pageW, pageH := doc.GetPageSize()
	e := &engine{
		doc:      doc,
		colors:   paletteFor(company),
		money:    r.money,
		assets:   r.assets,
		log:      r.log.With().Str("reference", in.Quote.Reference).Logger(),
		pageW:    pageW,
		pageH:    pageH,
		contentW: pageW - 2*margin,
	}
	e.fonts = loadFonts(doc, r.assets, r.fontsDir, e.log)
	doc.AddPage()
	if doc.Err() {
		return nil, fmt.Errorf("%w: %w", ErrRender, doc.Error())
	}

	t := totals.Calculate(in.Items, in.Aides)

	e.drawHeader(in.Quote, company)
	e.drawClient(client)
	e.drawItems(in.Items)
	e.drawAides(in.Aides)
	e.drawTotals(t)
	e.bodyEnd = e.y
	e.drawFooter(in.Quote)

	if doc.Err() {
		return nil, fmt.Errorf("%w: %w", ErrRender, doc.Error())
	}
	return e, nil
}
