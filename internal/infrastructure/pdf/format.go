package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency es la divisa de los documentos cuando no se configura otra.
const DefaultCurrency = money.EUR

// MoneyFormatter imprime importes al estilo fr-FR: "1 234,56 €".
type MoneyFormatter struct {
	f        *money.Formatter
	fraction int32
}

// NewMoneyFormatter toma la metadata de la divisa (decimales, símbolo) de
// go-money. Un código desconocido cae en EUR.
func NewMoneyFormatter(code string) MoneyFormatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || money.GetCurrency(code) == nil {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(code)
	grapheme := cur.Grapheme
	if grapheme == "" {
		grapheme = cur.Code
	}
	return MoneyFormatter{
		f:        money.NewFormatter(cur.Fraction, ",", " ", grapheme, "1 $"),
		fraction: int32(cur.Fraction),
	}
}

// Format redondea half-up a los decimales de la divisa. Trabaja sobre la
// representación decimal: no hay límite de magnitud.
func (m MoneyFormatter) Format(d decimal.Decimal) string {
	s := d.StringFixed(m.fraction)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	amount := groupThousands(whole, m.f.Thousand)
	if frac != "" {
		amount += m.f.Decimal + frac
	}
	out := strings.Replace(m.f.Template, "1", sign+amount, 1)
	return strings.Replace(out, "$", m.f.Grapheme, 1)
}

// groupThousands separa grupos de tres cifras desde la derecha.
func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatQuantity imprime cantidades con dos decimales y coma decimal.
func FormatQuantity(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// FormatRate imprime una tasa sin ceros de relleno: 20, 5,5.
func FormatRate(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate devuelve la fecha larga en francés: "04 mars 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}
