// Package totals calcula los montos de un devis/factura (servicio de dominio puro).
//
//	SubtotalHT = Σ cantidad × precio unitario
//	TVA        = SubtotalHT × tasa / 100   (tasa de la PRIMERA línea, 20 por defecto)
//	TotalTTC   = SubtotalHT + TVA
//	AmountDue  = TotalTTC − Σ ayudas
package totals

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals resultado del cálculo. Los valores no se redondean: el redondeo a dos
// decimales ocurre solo al formatear.
type Totals struct {
	SubtotalHT decimal.Decimal
	TaxRate    decimal.Decimal
	VAT        decimal.Decimal
	TotalTTC   decimal.Decimal // antes de ayudas
	TotalAides decimal.Decimal
	AmountDue  decimal.Decimal
}

// HasAides indica si hay ayudas a descontar.
func (t Totals) HasAides() bool {
	return t.TotalAides.IsPositive()
}

// Calculate deriva todos los totales a partir de las líneas y las ayudas.
// Valores ausentes cuentan como cero; nunca falla.
func Calculate(items []entity.LineItem, aides []entity.Aide) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(LineTotal(it))
	}

	rate := TaxRate(items)
	vat := subtotal.Mul(rate).Div(hundred)
	ttc := subtotal.Add(vat)

	aidesTotal := decimal.Zero
	for _, a := range aides {
		aidesTotal = aidesTotal.Add(valueOrZero(a.Amount))
	}

	return Totals{
		SubtotalHT: subtotal,
		TaxRate:    rate,
		VAT:        vat,
		TotalTTC:   ttc,
		TotalAides: aidesTotal,
		AmountDue:  ttc.Sub(aidesTotal),
	}
}

// LineTotal cantidad × precio unitario de una línea (ausentes = 0).
func LineTotal(item entity.LineItem) decimal.Decimal {
	return valueOrZero(item.Quantity).Mul(valueOrZero(item.UnitPrice))
}

// TaxRate tasa aplicada a todo el documento: la de la primera línea, o 20 si
// no hay líneas o la primera no la trae. Las tasas de las demás líneas no
// intervienen en la TVA.
func TaxRate(items []entity.LineItem) decimal.Decimal {
	if len(items) == 0 {
		return entity.DefaultTaxRate
	}
	return items[0].Rate()
}

func valueOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
