package entity

import "github.com/shopspring/decimal"

// DefaultTaxRate tasa de TVA aplicada cuando la línea no trae una.
var DefaultTaxRate = decimal.NewFromInt(20)

// LineItem representa una línea de un devis/factura.
// Quantity y UnitPrice son NullDecimal: un valor ausente se trata como cero.
type LineItem struct {
	ID          string
	QuoteID     string
	Position    int
	Description string
	Quantity    decimal.NullDecimal
	UnitPrice   decimal.NullDecimal
	TaxRate     *decimal.Decimal // nil = sin tasa (se usa DefaultTaxRate)
}

// Rate devuelve la tasa de la línea o DefaultTaxRate si no tiene.
func (i LineItem) Rate() decimal.Decimal {
	if i.TaxRate == nil {
		return DefaultTaxRate
	}
	return *i.TaxRate
}
