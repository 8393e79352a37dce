package entity

import "time"

// Client representa un cliente de la empresa (destinatario de devis y facturas).
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Title     string // opcional: "M.", "Mme", razón social...
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
