package pdf

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ── Geometría (puntos, A4) ────────────────────────────────────────────────────

const (
	margin          = 40.0
	headerHeight    = 160.0
	bottomThreshold = 100.0
	footerOffset    = 140.0
	bottomBarHeight = 6.0

	tableHeaderHeight = 30.0
	rowPadding        = 8.0
	minRowHeight      = 25.0

	defaultLineGap = 2.0
)

// Placement registra dónde quedó dibujada una fila de la tabla.
type Placement struct {
	Item   int
	Page   int
	Y      float64
	Height float64
}

// engine es el estado de un único render: documento, cursor y fuentes.
// No se comparte entre goroutines.
type engine struct {
	doc    *fpdf.Fpdf
	fonts  fontSet
	colors palette
	money  MoneyFormatter
	assets afero.Fs
	log    zerolog.Logger

	pageW    float64
	pageH    float64
	contentW float64
	fontSize float64
	y        float64
	bodyEnd  float64 // cursor al terminar los totales, antes del pie

	placements []Placement
}

type textOpts struct {
	width float64 // 0 = hasta el margen derecho
	align string  // "L", "C", "R"
	gap   float64 // espacio bajo cada línea; 0 = defaultLineGap
}

func (e *engine) setFont(f face, size float64) {
	e.doc.SetFont(f.family, f.style, size)
	e.fontSize = size
}

func (e *engine) textColor(c rgb) { e.doc.SetTextColor(c.r, c.g, c.b) }
func (e *engine) fillColor(c rgb) { e.doc.SetFillColor(c.r, c.g, c.b) }
func (e *engine) drawColor(c rgb) { e.doc.SetDrawColor(c.r, c.g, c.b) }

func (e *engine) lineHeight(gap float64) float64 {
	return e.fontSize + gap
}

func (e *engine) rect(x, y, w, h float64, fill rgb) {
	e.fillColor(fill)
	e.doc.Rect(x, y, w, h, "F")
}

func (e *engine) strokeRect(x, y, w, h float64, stroke rgb) {
	e.drawColor(stroke)
	e.doc.Rect(x, y, w, h, "D")
}

func (e *engine) hline(x1, x2, y float64, stroke rgb) {
	e.drawColor(stroke)
	e.doc.Line(x1, y, x2, y)
}

// shadow dibuja un rectángulo negro translúcido desplazado 1pt.
func (e *engine) shadow(x, y, w, h float64) {
	e.doc.SetAlpha(0.08, "Normal")
	e.rect(x+1, y+1, w, h, colorBlack)
	e.doc.SetAlpha(1, "Normal")
}

// wrap parte s (ya saneado) en líneas de ancho w con la fuente actual.
// Devuelve líneas codificadas para la fuente activa.
func (e *engine) wrap(s string, w float64) []string {
	enc := e.fonts.encode(s)
	if e.fonts.utf8 {
		return e.doc.SplitText(enc, w)
	}
	raw := e.doc.SplitLines([]byte(enc), w)
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	return lines
}

// measure devuelve la altura que ocuparía s con la fuente actual.
func (e *engine) measure(s string, w float64, gap float64) float64 {
	clean := Sanitize(s)
	if clean == "" {
		return 0
	}
	n, err := e.countLines(clean, w)
	if err != nil {
		n = 1
	}
	return float64(n) * e.lineHeight(gap)
}

func (e *engine) countLines(s string, w float64) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: medir texto: %v", r)
		}
	}()
	return len(e.wrap(s, w)), nil
}

// text dibuja s con su borde superior en y y devuelve la y bajo la última
// línea. Un texto vacío tras sanear no mueve el cursor; un fallo al dibujarlo
// se sustituye por el marcador.
func (e *engine) text(s string, x, y float64, o textOpts) float64 {
	clean := Sanitize(s)
	if clean == "" {
		return y
	}
	if o.width <= 0 {
		o.width = e.pageW - margin - x
	}
	if o.align == "" {
		o.align = "L"
	}
	if o.gap == 0 {
		o.gap = defaultLineGap
	}
	n, err := e.drawLines(clean, x, y, o)
	if err != nil {
		e.log.Warn().Err(err).Msg("pdf: texto reemplazado por marcador")
		n, _ = e.drawLines(placeholder, x, y, o)
	}
	return y + float64(n)*e.lineHeight(o.gap)
}

func (e *engine) drawLines(s string, x, y float64, o textOpts) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: dibujar texto: %v", r)
		}
		if err == nil && e.doc.Err() {
			err = e.doc.Error()
		}
		if err != nil {
			e.doc.ClearError()
		}
	}()
	lines := e.wrap(s, o.width)
	lh := e.lineHeight(o.gap)
	for i, l := range lines {
		e.doc.SetXY(x, y+float64(i)*lh)
		e.doc.CellFormat(o.width, lh, l, "", 0, o.align, false, 0, "")
	}
	return len(lines), nil
}

func (e *engine) newPage() {
	e.doc.AddPage()
	e.y = margin
}

// ensureSpace abre una página nueva si un bloque de altura h no cabe sobre el
// umbral inferior. En una página recién abierta no hace nada.
func (e *engine) ensureSpace(h float64) bool {
	if e.y+h > e.pageH-bottomThreshold && e.y > margin {
		e.newPage()
		return true
	}
	return false
}
