package pdf

import (
	"math"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

// ── Cabecera ──────────────────────────────────────────────────────────────────

const (
	logoX, logoY      = margin, 20.0
	logoW, logoH      = 180.0, 55.0
	badgeW, badgeH    = 120.0, 40.0
	badgeY            = 20.0
	contactSpacing    = 12.0
	detailLabelOffset = 70.0
)

func documentLabel(q *entity.Quote) (string, bool) {
	if q.IsInvoice() {
		return "FACTURE", true
	}
	return "DEVIS", false
}

func (e *engine) drawHeader(q *entity.Quote, company *entity.Company) {
	e.rect(0, 0, e.pageW, headerHeight, e.colors.primary)

	if !e.drawLogo(company.LogoPath, logoX+10, logoY+10, logoW-20, logoH-20) {
		e.setFont(e.fonts.bold, 14)
		e.textColor(colorWhite)
		e.text(orDefault(company.Name, "Company"), logoX+10, logoY+22, textOpts{width: logoW - 20, align: "C"})
	}

	contactY := logoY + logoH + 15
	for _, c := range []struct{ prefix, value string }{
		{"Tél:", company.Phone},
		{"Email:", company.Email},
		{"Web:", company.Website},
		{"Adresse:", company.Address},
	} {
		if Sanitize(c.value) == "" {
			continue
		}
		e.fillColor(e.colors.accent)
		e.doc.Circle(logoX+4, contactY+4, 1.5, "F")
		e.setFont(e.fonts.regular, 8)
		e.textColor(colorWhite)
		e.text(c.prefix+" "+c.value, logoX+12, contactY, textOpts{width: 280})
		contactY += contactSpacing
	}

	label, invoice := documentLabel(q)
	badgeColor := e.colors.secondary
	if invoice {
		badgeColor = colorSuccess
	}
	badgeX := e.pageW - margin - 140
	e.shadow(badgeX, badgeY, badgeW, badgeH)
	e.fillColor(badgeColor)
	e.doc.RoundedRect(badgeX, badgeY, badgeW, badgeH, 8, "1234", "F")
	e.setFont(e.fonts.bold, 18)
	e.textColor(colorWhite)
	e.text(label, badgeX, badgeY+10, textOpts{width: badgeW, align: "C"})

	detailsX := badgeX - 20
	detailsY := badgeY + badgeH + 15
	e.detailRow(label+" N°:", orDefault(q.Reference, placeholder), detailsX, detailsY)
	e.detailRow("Date:", FormatDate(q.CreatedAt), detailsX, detailsY+12)
}

func (e *engine) detailRow(label, value string, x, y float64) {
	e.setFont(e.fonts.regular, 8)
	e.textColor(colorMediumGray)
	e.text(label, x, y, textOpts{width: detailLabelOffset})
	e.setFont(e.fonts.medium, 9)
	e.textColor(colorWhite)
	e.text(value, x+detailLabelOffset, y, textOpts{width: 100, align: "R"})
}

// ── Logo ──────────────────────────────────────────────────────────────────────

// logoCandidates: la ruta tal cual se guardó y, si no existe, el directorio
// de subidas con el mismo nombre de archivo.
func logoCandidates(p string) []string {
	clean := path.Clean("/" + filepath.ToSlash(strings.TrimSpace(p)))
	return []string{clean, path.Join("/uploads/logos", path.Base(clean))}
}

func imageType(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".png":
		return "PNG"
	case ".jpg", ".jpeg":
		return "JPG"
	case ".gif":
		return "GIF"
	}
	return ""
}

// drawLogo ajusta la imagen dentro de la caja conservando proporción y la
// centra. Devuelve false si hay que usar el nombre de la empresa.
func (e *engine) drawLogo(logoPath string, x, y, w, h float64) bool {
	if Sanitize(logoPath) == "" {
		return false
	}
	p := firstExisting(e.assets, logoCandidates(logoPath)...)
	if p == "" {
		e.log.Warn().Str("logo", logoPath).Msg("pdf: logo no encontrado, usando nombre de empresa")
		return false
	}
	tp := imageType(p)
	if tp == "" {
		e.log.Warn().Str("logo", p).Msg("pdf: formato de logo no soportado")
		return false
	}
	if !e.embedImage(p, tp, x, y, w, h) {
		e.log.Warn().Str("logo", p).Msg("pdf: logo inválido, usando nombre de empresa")
		return false
	}
	return true
}

func (e *engine) embedImage(name, tp string, x, y, w, h float64) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
		if !ok {
			e.doc.ClearError()
		}
	}()
	f, err := e.assets.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	opts := fpdf.ImageOptions{ImageType: tp}
	info := e.doc.RegisterImageOptionsReader(name, opts, f)
	if info == nil || e.doc.Err() {
		return false
	}
	iw, ih := info.Width(), info.Height()
	if iw <= 0 || ih <= 0 {
		return false
	}
	scale := math.Min(w/iw, h/ih)
	dw, dh := iw*scale, ih*scale
	e.doc.ImageOptions(name, x+(w-dw)/2, y+(h-dh)/2, dw, dh, false, opts, 0, "")
	return !e.doc.Err()
}
