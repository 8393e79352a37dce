package pdf

import (
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/totals"
)

const totalsWidth = 180.0

// ── Aides financières ─────────────────────────────────────────────────────────

func (e *engine) drawAides(aides []entity.Aide) {
	if len(aides) == 0 {
		return
	}
	descW := e.contentW - 100
	visible := make([]entity.Aide, 0, len(aides))
	for _, a := range aides {
		if a.Amount.Valid && a.Amount.Decimal.IsPositive() {
			visible = append(visible, a)
		}
	}

	// el título no queda solo al pie: va con la primera ayuda
	first := 0.0
	if len(visible) > 0 {
		first = e.aideHeight(visible[0], descW)
	}
	e.ensureSpace(20 + 15 + first)
	e.y += 20
	e.setFont(e.fonts.medium, 10)
	e.textColor(e.colors.text)
	e.text("AIDES FINANCIÈRES", margin, e.y, textOpts{})
	e.y += 15

	for _, a := range visible {
		e.ensureSpace(e.aideHeight(a, descW))
		e.setFont(e.fonts.bold, 9)
		e.textColor(e.colors.text)
		next := e.text(a.Name, margin, e.y, textOpts{width: descW})

		e.setFont(e.fonts.regular, 9)
		e.text("- "+e.money.Format(a.Amount.Decimal), margin, e.y, textOpts{width: e.contentW, align: "R"})
		e.y = next

		if Sanitize(a.Description) != "" {
			e.setFont(e.fonts.regular, 8)
			e.textColor(colorTextSecondary)
			e.y = e.text(a.Description, margin, e.y, textOpts{width: descW})
		}
		e.y += 15
		e.hline(margin, margin+e.contentW, e.y-8, colorBorder)
	}
}

// aideHeight mide una entrada de ayuda con las mismas fuentes con que se dibuja.
func (e *engine) aideHeight(a entity.Aide, descW float64) float64 {
	e.setFont(e.fonts.bold, 9)
	h := e.measure(a.Name, descW, defaultLineGap)
	e.setFont(e.fonts.regular, 8)
	h += e.measure(a.Description, descW, defaultLineGap)
	return h + 15
}

// ── Totales ───────────────────────────────────────────────────────────────────

func (e *engine) drawTotals(t totals.Totals) {
	body := 60.0
	if t.HasAides() {
		body = 75
	}
	h := 15 + body + 15
	e.ensureSpace(20 + h)
	e.y += 20
	x := e.pageW - margin - totalsWidth
	e.rect(x, e.y, totalsWidth, h, colorLightGray)
	e.strokeRect(x, e.y, totalsWidth, h, colorBorder)

	rowY := e.y + 12
	row := func(label, value string, final bool) {
		if final {
			e.setFont(e.fonts.bold, 10)
			e.textColor(e.colors.text)
		} else {
			e.setFont(e.fonts.regular, 8)
			e.textColor(colorTextSecondary)
		}
		e.text(label, x+10, rowY, textOpts{width: totalsWidth - 20})
		e.text(value, x+10, rowY, textOpts{width: totalsWidth - 20, align: "R"})
		if final {
			e.hline(x+10, x+totalsWidth-10, rowY+13, e.colors.text)
			rowY += 18
			return
		}
		rowY += 12
	}

	row("Sous-total HT:", e.money.Format(t.SubtotalHT), false)
	row("TVA ("+FormatRate(t.TaxRate)+"%):", e.money.Format(t.VAT), false)
	row("Total TTC:", e.money.Format(t.TotalTTC), false)
	if t.HasAides() {
		row("Aides financières:", "- "+e.money.Format(t.TotalAides), false)
	}
	row("TOTAL À PAYER:", e.money.Format(t.AmountDue), true)

	e.y += h
}
