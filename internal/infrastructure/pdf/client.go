package pdf

import "github.com/jhoicas/devis-api/internal/domain/entity"

const (
	clientBoxHeight = 65.0
	clientPadding   = 12.0
)

// drawClient dibuja el bloque "ADRESSÉ À" y deja el cursor en el inicio de
// la tabla.
func (e *engine) drawClient(client *entity.Client) {
	y := headerHeight + 25
	e.setFont(e.fonts.medium, 10)
	e.textColor(colorTextSecondary)
	e.text("ADRESSÉ À", margin, y, textOpts{})

	boxY := y + 15
	e.rect(margin, boxY, e.contentW, clientBoxHeight, colorLightGray)
	e.strokeRect(margin, boxY, e.contentW, clientBoxHeight, colorBorder)

	e.setFont(e.fonts.bold, 12)
	e.textColor(e.colors.text)
	nameY := e.text(orDefault(client.Name, "Client"), margin+clientPadding, boxY+clientPadding, textOpts{width: 260})
	if Sanitize(client.Title) != "" {
		e.setFont(e.fonts.regular, 9)
		e.textColor(colorTextSecondary)
		e.text(client.Title, margin+clientPadding, nameY+2, textOpts{width: 260})
	}

	contactX := e.pageW - margin - 200
	contactY := boxY + clientPadding
	e.setFont(e.fonts.regular, 8)
	e.textColor(colorTextSecondary)
	for _, c := range []struct{ prefix, value string }{
		{"Tél:", client.Phone},
		{"Email:", client.Email},
		{"Adresse:", client.Address},
	} {
		if Sanitize(c.value) == "" {
			continue
		}
		contactY = e.text(c.prefix+" "+c.value, contactX, contactY, textOpts{width: 180}) + 2
	}

	e.y = boxY + clientBoxHeight + 25
}
