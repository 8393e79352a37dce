package quote

import (
	"github.com/jhoicas/devis-api/internal/application/dto"
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/totals"
)

func toItemResponses(items []entity.LineItem) []dto.QuoteItemResponse {
	out := make([]dto.QuoteItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.QuoteItemResponse{
			ID:          it.ID,
			Position:    it.Position,
			Description: it.Description,
			Quantity:    it.Quantity.Decimal,
			UnitPrice:   it.UnitPrice.Decimal,
			TVARate:     it.Rate(),
			TotalHT:     totals.LineTotal(it),
		})
	}
	return out
}

func toAideResponses(aides []entity.Aide) []dto.AideResponse {
	out := make([]dto.AideResponse, 0, len(aides))
	for _, a := range aides {
		out = append(out, dto.AideResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Amount:      a.Amount.Decimal,
		})
	}
	return out
}

func toTotalsResponse(t totals.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		SubtotalHT: t.SubtotalHT.Round(2),
		TVARate:    t.TaxRate,
		TotalTVA:   t.VAT.Round(2),
		TotalTTC:   t.TotalTTC.Round(2),
		TotalAides: t.TotalAides.Round(2),
		AmountDue:  t.AmountDue.Round(2),
	}
}

func toQuoteResponse(q *entity.Quote, items []entity.LineItem, aides []entity.Aide) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:                      q.ID,
		Reference:               q.Reference,
		DocumentType:            q.DocumentType,
		Status:                  q.Status,
		ClientID:                q.ClientID,
		SentAt:                  q.SentAt,
		DownPaymentText:         q.DownPaymentText,
		IBAN:                    q.IBAN,
		InstallerRef:            q.InstallerRef,
		CapacityAttestationNo:   q.CapacityAttestationNo,
		CivilLiabilityInsurance: q.CivilLiabilityInsurance,
		FooterNotes:             q.FooterNotes,
		Totals:                  toTotalsResponse(totals.Calculate(items, aides)),
		Items:                   toItemResponses(items),
		Aides:                   toAideResponses(aides),
		CreatedAt:               q.CreatedAt,
		UpdatedAt:               q.UpdatedAt,
	}
}

func toSummaryResponse(s *entity.QuoteSummary) dto.QuoteSummaryResponse {
	return dto.QuoteSummaryResponse{
		ID:           s.ID,
		Reference:    s.Reference,
		DocumentType: s.DocumentType,
		Status:       s.Status,
		ClientID:     s.ClientID,
		ClientName:   s.ClientName,
		ClientEmail:  s.ClientEmail,
		TotalTTC:     s.TotalTTC,
		CreatedAt:    s.CreatedAt,
	}
}
