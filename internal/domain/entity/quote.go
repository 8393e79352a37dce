package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento soportados (mismo pipeline de render, distinto sello).
const (
	DocumentTypeQuote   = "quote"   // DEVIS
	DocumentTypeInvoice = "invoice" // FACTURE
)

// Estados de envío del documento al cliente.
const (
	QuoteStatusDraft = "draft"
	QuoteStatusSent  = "sent"
)

// Quote representa la cabecera de un devis o una factura.
type Quote struct {
	ID           string
	CompanyID    string
	ClientID     string
	Reference    string // D2025-0001 / F2025-0001
	DocumentType string // ver constantes DocumentType*
	Status       string
	SentAt       *time.Time

	// Totales persistidos (mismo cálculo que el PDF, ver domain/totals).
	TotalHT  decimal.Decimal
	TotalTVA decimal.Decimal
	TotalTTC decimal.Decimal

	// Condiciones de pago (opcionales, pie del documento).
	DownPaymentText         string
	IBAN                    string
	InstallerRef            string
	CapacityAttestationNo   string
	CivilLiabilityInsurance string
	FooterNotes             string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsInvoice indica si el documento es una factura.
func (q *Quote) IsInvoice() bool {
	return q != nil && q.DocumentType == DocumentTypeInvoice
}

// QuoteSummary fila del listado de documentos (con nombre del cliente).
type QuoteSummary struct {
	ID           string
	Reference    string
	DocumentType string
	Status       string
	ClientID     string
	ClientName   string
	ClientEmail  string
	TotalTTC     decimal.Decimal
	CreatedAt    time.Time
}
