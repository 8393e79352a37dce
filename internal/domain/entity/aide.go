package entity

import "github.com/shopspring/decimal"

// Aide es una ayuda financiera (subvención) que se descuenta del total a pagar.
type Aide struct {
	ID          string
	QuoteID     string
	Position    int
	Name        string
	Description string
	Amount      decimal.NullDecimal
}
