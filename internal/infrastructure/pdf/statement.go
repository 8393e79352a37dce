package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

// StatementInput son los datos del relevé de compte de un cliente.
type StatementInput struct {
	Company  *entity.Company
	Client   *entity.Client
	Quotes   []entity.QuoteSummary
	IssuedAt time.Time
}

// StatementGenerator genera el relevé de compte con Maroto v2: una tabla con
// todos los devis y facturas del cliente y sus totales.
type StatementGenerator struct {
	money MoneyFormatter
}

// NewStatementGenerator construye el generador con la divisa dada.
func NewStatementGenerator(currency string) *StatementGenerator {
	return &StatementGenerator{money: NewMoneyFormatter(currency)}
}

// GenerateStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) GenerateStatement(_ context.Context, in StatementInput) ([]byte, error) {
	company := in.Company
	if company == nil {
		company = &entity.Company{}
	}
	client := in.Client
	if client == nil {
		client = &entity.Client{}
	}
	th := paletteFor(company)
	primary := &props.Color{Red: th.primary.r, Green: th.primary.g, Blue: th.primary.b}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(14).WithBottomMargin(14).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relevé de compte", true).
		WithAuthor(company.Name, true).
		WithCreationDate(in.IssuedAt).
		Build()

	m := maroto.New(cfg)
	m.AddRows(statementHeaderRow(company, client, in.IssuedAt, primary))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.5}))
	m.AddRows(statementTableHeader(primary))
	for _, q := range in.Quotes {
		m.AddRows(g.statementRow(q))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))
	m.AddRows(g.statementTotals(in.Quotes, primary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: relevé: %w", ErrRender, err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func statementHeaderRow(company *entity.Company, client *entity.Client, issued time.Time, primary *props.Color) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New(orDefault(company.Name, "Company"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: primary, Top: 1,
			}),
			text.New(Sanitize(company.Address), props.Text{Size: 8, Top: 9, Color: statementGray}),
			text.New(Sanitize(client.Name), props.Text{Style: fontstyle.Bold, Size: 10, Top: 16}),
		),
		col.New(5).Add(
			text.New("RELEVÉ DE COMPTE", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: primary, Top: 1,
			}),
			text.New("Date: "+FormatDate(issued), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: statementGray,
			}),
			text.New(Sanitize(client.Email), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: statementGray,
			}),
		),
	)
}

var (
	statementGray  = &props.Color{Red: 100, Green: 116, Blue: 139}
	statementWhite = &props.Color{Red: 255, Green: 255, Blue: 255}
)

func statementTableHeader(primary *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: statementWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: primary}).Add(
		h("Référence", 3, align.Left),
		h("Type", 2, align.Left),
		h("Date", 3, align.Left),
		h("Statut", 2, align.Center),
		h("Total TTC", 2, align.Right),
	)
}

func (g *StatementGenerator) statementRow(q entity.QuoteSummary) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	kind := "Devis"
	if q.DocumentType == entity.DocumentTypeInvoice {
		kind = "Facture"
	}
	status := "Brouillon"
	if q.Status == entity.QuoteStatusSent {
		status = "Envoyé"
	}
	return row.New(7).Add(
		cell(orDefault(q.Reference, placeholder), 3, align.Left),
		cell(kind, 2, align.Left),
		cell(FormatDate(q.CreatedAt), 3, align.Left),
		cell(status, 2, align.Center),
		cell(g.money.Format(q.TotalTTC), 2, align.Right),
	)
}

func (g *StatementGenerator) statementTotals(quotes []entity.QuoteSummary, primary *props.Color) core.Row {
	quoted, invoiced := decimal.Zero, decimal.Zero
	for _, q := range quotes {
		if q.DocumentType == entity.DocumentTypeInvoice {
			invoiced = invoiced.Add(q.TotalTTC)
			continue
		}
		quoted = quoted.Add(q.TotalTTC)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total devis:"),
			text.New("Total facturé:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: primary, Right: 2, Top: 8,
			}),
		),
		col.New(3).Add(
			value(g.money.Format(quoted)),
			text.New(g.money.Format(invoiced), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: primary, Right: 1, Top: 8,
			}),
		),
	)
}
