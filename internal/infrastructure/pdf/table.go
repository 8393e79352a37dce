package pdf

import (
	"math"

	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/totals"
)

// columns son los anchos de la tabla de partidas (50/10/20/20 %, truncados).
type columns struct {
	desc, qty, price, total float64
}

func columnsFor(contentW float64) columns {
	return columns{
		desc:  math.Floor(contentW * 0.50),
		qty:   math.Floor(contentW * 0.10),
		price: math.Floor(contentW * 0.20),
		total: math.Floor(contentW * 0.20),
	}
}

func (e *engine) drawTableHeader(cols columns) {
	e.rect(margin, e.y, e.contentW, tableHeaderHeight, e.colors.primary)
	e.setFont(e.fonts.bold, 9)
	e.textColor(colorWhite)
	y := e.y + 10
	x := margin + rowPadding
	e.text("DESCRIPTION", x, y, textOpts{width: cols.desc - 2*rowPadding})
	x = margin + cols.desc
	e.text("QTÉ", x, y, textOpts{width: cols.qty, align: "C"})
	x += cols.qty
	e.text("PRIX UNIT. HT", x, y, textOpts{width: cols.price, align: "C"})
	x += cols.price
	e.text("TOTAL HT", x, y, textOpts{width: cols.total, align: "C"})
	e.y += tableHeaderHeight
}

// rowHeight es la altura de la descripción envuelta más el relleno, con un
// mínimo para las columnas numéricas.
func (e *engine) rowHeight(item entity.LineItem, cols columns) float64 {
	e.setFont(e.fonts.regular, 8)
	h := e.measure(item.Description, cols.desc-2*rowPadding, 1) + 2*rowPadding
	return math.Max(h, minRowHeight)
}

// drawItems recorre las partidas una sola vez. Si una fila no cabe se abre
// una página nueva y esa misma fila se dibuja arriba; la alternancia de
// sombreado se reinicia.
func (e *engine) drawItems(items []entity.LineItem) {
	cols := columnsFor(e.contentW)
	e.drawTableHeader(cols)

	alternate := false
	for i, item := range items {
		h := e.rowHeight(item, cols)
		if e.ensureSpace(h) {
			alternate = false
		}
		e.drawRow(item, cols, h, alternate)
		e.placements = append(e.placements, Placement{Item: i, Page: e.doc.PageNo(), Y: e.y, Height: h})
		e.y += h
		alternate = !alternate
	}
}

func (e *engine) drawRow(item entity.LineItem, cols columns, h float64, alternate bool) {
	if alternate {
		e.rect(margin, e.y, e.contentW, h, colorTableAlt)
	}
	e.strokeRect(margin, e.y, e.contentW, h, colorBorder)

	contentY := e.y + rowPadding
	x := margin + cols.desc
	e.setFont(e.fonts.regular, 8)
	e.textColor(e.colors.text)
	e.text(FormatQuantity(item.Quantity.Decimal), x, contentY, textOpts{width: cols.qty, align: "C"})
	x += cols.qty
	e.text(e.money.Format(item.UnitPrice.Decimal), x, contentY, textOpts{width: cols.price, align: "C"})
	x += cols.price
	e.text(e.money.Format(totals.LineTotal(item)), x, contentY, textOpts{width: cols.total, align: "C"})

	e.text(item.Description, margin+rowPadding, contentY, textOpts{width: cols.desc - 2*rowPadding, gap: 1})
}
