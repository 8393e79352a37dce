package pdf

import "github.com/jhoicas/devis-api/internal/domain/entity"

const footerTextWidth = 300.0

// paymentLines son las condiciones de pago que tienen valor.
func paymentLines(q *entity.Quote) []string {
	lines := []string{"Règlement par chèque ou par virement bancaire"}
	add := func(prefix, v string) {
		if Sanitize(v) != "" {
			lines = append(lines, prefix+v)
		}
	}
	add("", q.DownPaymentText)
	add("IBAN: ", q.IBAN)
	add("Référence installateur: ", q.InstallerRef)
	add("Attestation de capacité n° ", q.CapacityAttestationNo)
	add("Assurance responsabilité civile: ", q.CivilLiabilityInsurance)
	return lines
}

// drawFooter se ancla a pageHeight-140 de la última página, sin importar
// dónde haya quedado el cursor.
func (e *engine) drawFooter(q *entity.Quote) {
	top := e.pageH - footerOffset
	e.setFont(e.fonts.medium, 9)
	e.textColor(e.colors.text)
	e.text("CONDITIONS DE PAIEMENT", margin, top, textOpts{width: footerTextWidth})

	y := top + 15
	e.setFont(e.fonts.regular, 7)
	e.textColor(colorTextSecondary)
	for _, l := range paymentLines(q) {
		y = e.text(l, margin, y, textOpts{width: footerTextWidth}) + 2
	}
	if Sanitize(q.FooterNotes) != "" {
		y = e.text(q.FooterNotes, margin, y+10, textOpts{width: footerTextWidth}) + 4
	}

	sigX := e.pageW - margin - 160
	sigY := top + 12
	e.setFont(e.fonts.regular, 8)
	e.textColor(colorTextSecondary)
	e.text("Bon pour accord, lu et approuvé", sigX, sigY, textOpts{width: 160})
	lineY := sigY + 25
	e.hline(sigX, sigX+140, lineY, colorTextSecondary)
	e.setFont(e.fonts.regular, 6)
	e.text("Signature et date", sigX+35, lineY+5, textOpts{width: 105})

	e.rect(0, e.pageH-bottomBarHeight, e.pageW, bottomBarHeight, e.colors.primary)
	e.y = y
}
