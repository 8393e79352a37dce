package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-api/internal/application/dto"
	"github.com/jhoicas/devis-api/internal/domain"
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/totals"
)

// Límites de las columnas: cantidades NUMERIC(12,2), importes NUMERIC(14,2),
// tasas NUMERIC(5,2). Todo con dos decimales como máximo.
var (
	maxTaxRate  = decimal.NewFromInt(100)
	maxQuantity = decimal.New(1, 10)
	maxAmount   = decimal.New(1, 12)
)

// fits indica si d entra en la columna: dos decimales y |d| < limit.
func fits(d, limit decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(limit)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// buildLines valida el cuerpo y lo convierte a entidades. Las líneas sin
// tva_rate reciben la tasa por defecto de forma explícita.
func buildLines(in dto.QuoteRequest) ([]entity.LineItem, []entity.Aide, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return nil, nil, invalid("client_id es obligatorio")
	}
	switch in.DocumentType {
	case entity.DocumentTypeQuote, entity.DocumentTypeInvoice:
	default:
		return nil, nil, invalid("document_type debe ser %q o %q", entity.DocumentTypeQuote, entity.DocumentTypeInvoice)
	}
	if len(in.Items) == 0 {
		return nil, nil, invalid("se requiere al menos una línea")
	}

	items := make([]entity.LineItem, 0, len(in.Items))
	for i, it := range in.Items {
		n := i + 1
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			return nil, nil, invalid("línea %d: la descripción es obligatoria", n)
		}
		if !it.Quantity.Valid || !it.Quantity.Decimal.IsPositive() {
			return nil, nil, invalid("línea %d: la cantidad debe ser mayor que 0", n)
		}
		if !fits(it.Quantity.Decimal, maxQuantity) {
			return nil, nil, invalid("línea %d: cantidad fuera de rango o con más de 2 decimales", n)
		}
		price := it.UnitPrice
		if !price.Valid {
			price = decimal.NewNullDecimal(decimal.Zero)
		}
		if price.Decimal.IsNegative() {
			return nil, nil, invalid("línea %d: el precio unitario no puede ser negativo", n)
		}
		if !fits(price.Decimal, maxAmount) {
			return nil, nil, invalid("línea %d: precio unitario fuera de rango o con más de 2 decimales", n)
		}
		rate := entity.DefaultTaxRate
		if it.TVARate != nil {
			rate = *it.TVARate
		}
		if rate.IsNegative() || rate.GreaterThan(maxTaxRate) || !rate.Equal(rate.Round(2)) {
			return nil, nil, invalid("línea %d: tva_rate fuera de rango", n)
		}
		items = append(items, entity.LineItem{
			Position:    i,
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			TaxRate:     &rate,
		})
	}

	aides := make([]entity.Aide, 0, len(in.Aides))
	for i, a := range in.Aides {
		n := i + 1
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, nil, invalid("ayuda %d: el nombre es obligatorio", n)
		}
		if !a.Amount.Valid || a.Amount.Decimal.IsNegative() {
			return nil, nil, invalid("ayuda %d: el monto debe ser mayor o igual a 0", n)
		}
		if !fits(a.Amount.Decimal, maxAmount) {
			return nil, nil, invalid("ayuda %d: monto fuera de rango o con más de 2 decimales", n)
		}
		aides = append(aides, entity.Aide{
			Position:    i,
			Name:        name,
			Description: strings.TrimSpace(a.Description),
			Amount:      a.Amount,
		})
	}

	t := totals.Calculate(items, aides)
	for _, v := range []decimal.Decimal{t.SubtotalHT, t.VAT, t.TotalTTC} {
		if v.Round(2).Abs().GreaterThanOrEqual(maxAmount) {
			return nil, nil, invalid("los totales exceden el importe máximo admitido")
		}
	}
	return items, aides, nil
}
