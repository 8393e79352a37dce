package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRequest body para POST /api/quotes y PUT /api/quotes/:id.
// En PUT las líneas y ayudas reemplazan a las existentes.
type QuoteRequest struct {
	ClientID                string             `json:"client_id"`
	DocumentType            string             `json:"document_type"` // quote | invoice
	Items                   []QuoteItemRequest `json:"items"`
	Aides                   []AideRequest      `json:"aides,omitempty"`
	DownPaymentText         string             `json:"down_payment_text,omitempty"`
	IBAN                    string             `json:"iban,omitempty"`
	InstallerRef            string             `json:"installer_ref,omitempty"`
	CapacityAttestationNo   string             `json:"capacity_attestation_no,omitempty"`
	CivilLiabilityInsurance string             `json:"civil_liability_insurance,omitempty"`
	FooterNotes             string             `json:"footer_notes,omitempty"`
}

// QuoteItemRequest línea del documento. tva_rate ausente = 20.
type QuoteItemRequest struct {
	Description string              `json:"description"`
	Quantity    decimal.NullDecimal `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
	TVARate     *decimal.Decimal    `json:"tva_rate,omitempty"`
}

// AideRequest ayuda financiera a descontar.
type AideRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Amount      decimal.NullDecimal `json:"amount"`
}

// QuoteItemResponse línea con su total HT.
type QuoteItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TVARate     decimal.Decimal `json:"tva_rate"`
	TotalHT     decimal.Decimal `json:"total_ht"`
}

// AideResponse ayuda en respuestas.
type AideResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// TotalsResponse totales calculados (mismo cálculo que el PDF).
type TotalsResponse struct {
	SubtotalHT decimal.Decimal `json:"subtotal_ht"`
	TVARate    decimal.Decimal `json:"tva_rate"`
	TotalTVA   decimal.Decimal `json:"total_tva"`
	TotalTTC   decimal.Decimal `json:"total_ttc"`
	TotalAides decimal.Decimal `json:"total_aides"`
	AmountDue  decimal.Decimal `json:"amount_due"`
}

// QuoteResponse documento completo para GET /api/quotes/:id.
type QuoteResponse struct {
	ID                      string              `json:"id"`
	Reference               string              `json:"quote_ref"`
	DocumentType            string              `json:"document_type"`
	Status                  string              `json:"status"`
	ClientID                string              `json:"client_id"`
	SentAt                  *time.Time          `json:"sent_at,omitempty"`
	DownPaymentText         string              `json:"down_payment_text,omitempty"`
	IBAN                    string              `json:"iban,omitempty"`
	InstallerRef            string              `json:"installer_ref,omitempty"`
	CapacityAttestationNo   string              `json:"capacity_attestation_no,omitempty"`
	CivilLiabilityInsurance string              `json:"civil_liability_insurance,omitempty"`
	FooterNotes             string              `json:"footer_notes,omitempty"`
	Totals                  TotalsResponse      `json:"totals"`
	Items                   []QuoteItemResponse `json:"items"`
	Aides                   []AideResponse      `json:"aides"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}

// QuoteSummaryResponse fila de GET /api/quotes.
type QuoteSummaryResponse struct {
	ID           string          `json:"id"`
	Reference    string          `json:"quote_ref"`
	DocumentType string          `json:"document_type"`
	Status       string          `json:"status"`
	ClientID     string          `json:"client_id"`
	ClientName   string          `json:"client_name"`
	ClientEmail  string          `json:"client_email,omitempty"`
	TotalTTC     decimal.Decimal `json:"total_ttc"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SendQuoteRequest body para POST /api/quotes/:id/send.
type SendQuoteRequest struct {
	CustomMessage string `json:"custom_message,omitempty"`
}

// SendQuoteResponse confirmación del envío.
type SendQuoteResponse struct {
	Message string    `json:"message"`
	SentTo  string    `json:"sent_to"`
	SentAt  time.Time `json:"sent_at"`
}

// PreviewResponse PDF en base64 para la vista previa embebida.
type PreviewResponse struct {
	PDF string `json:"pdf"`
}
