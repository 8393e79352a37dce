package pdf

import (
	"strconv"
	"strings"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

// rgb es un color en componentes 0–255 como los espera fpdf.
type rgb struct{ r, g, b int }

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	defaultPrimary   = rgb{0x1E, 0x29, 0x3B}
	defaultSecondary = rgb{0x3B, 0x82, 0xF6}
	defaultAccent    = rgb{0xF5, 0x9E, 0x0B}
	defaultText      = rgb{0x0F, 0x17, 0x2A}

	colorSuccess       = rgb{0x10, 0xB9, 0x81}
	colorWhite         = rgb{0xFF, 0xFF, 0xFF}
	colorBlack         = rgb{0, 0, 0}
	colorBackground    = rgb{0xF8, 0xFA, 0xFC}
	colorLightGray     = rgb{0xF1, 0xF5, 0xF9}
	colorMediumGray    = rgb{0xCB, 0xD5, 0xE1}
	colorTextSecondary = rgb{0x64, 0x74, 0x8B}
	colorBorder        = rgb{0xE2, 0xE8, 0xF0}
	colorTableAlt      = rgb{0xF8, 0xFA, 0xFC}
)

// palette son los colores de una empresa concreta.
type palette struct {
	primary   rgb
	secondary rgb
	accent    rgb
	text      rgb
}

func paletteFor(company *entity.Company) palette {
	p := palette{
		primary:   defaultPrimary,
		secondary: defaultSecondary,
		accent:    defaultAccent,
		text:      defaultText,
	}
	if company == nil {
		return p
	}
	p.primary = parseHex(company.Theme.Primary, p.primary)
	p.secondary = parseHex(company.Theme.Secondary, p.secondary)
	p.accent = parseHex(company.Theme.Accent, p.accent)
	p.text = parseHex(company.Theme.Text, p.text)
	return p
}

// parseHex acepta "#RRGGBB", "RRGGBB" y la forma corta "#RGB".
func parseHex(s string, fallback rgb) rgb {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return rgb{int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)}
}
