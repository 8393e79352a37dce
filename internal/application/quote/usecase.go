package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/devis-api/internal/application/dto"
	"github.com/jhoicas/devis-api/internal/domain"
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/reference"
	"github.com/jhoicas/devis-api/internal/domain/repository"
	"github.com/jhoicas/devis-api/internal/domain/totals"
)

// UseCase CRUD de devis/facturas. Cabecera, líneas, ayudas y consecutivo se
// escriben en una sola transacción.
type UseCase struct {
	tx         TxRunner
	quoteRepo  repository.QuoteRepository
	clientRepo repository.ClientRepository
	log        zerolog.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx TxRunner,
	quoteRepo repository.QuoteRepository,
	clientRepo repository.ClientRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:         tx,
		quoteRepo:  quoteRepo,
		clientRepo: clientRepo,
		log:        log,
		now:        time.Now,
	}
}

// Create valida el cuerpo, asigna la referencia D/F<año>-NNNN y guarda todo.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	items, aides, err := buildLines(in)
	if err != nil {
		return nil, err
	}
	if err := uc.checkClient(ctx, companyID, in.ClientID); err != nil {
		return nil, err
	}

	now := uc.now()
	t := totals.Calculate(items, aides)
	q := &entity.Quote{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		ClientID:     in.ClientID,
		DocumentType: in.DocumentType,
		Status:       entity.QuoteStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyRequest(q, in, t)

	err = uc.tx.RunQuote(ctx, func(quotes repository.QuoteRepository, counter repository.ReferenceCounter) error {
		seq, err := counter.Next(ctx, companyID, now.Year())
		if err != nil {
			return fmt.Errorf("consecutivo: %w", err)
		}
		ref, err := reference.Format(q.DocumentType, now, seq)
		if err != nil {
			return err
		}
		q.Reference = ref
		if err := quotes.Create(ctx, q); err != nil {
			return err
		}
		if err := quotes.ReplaceItems(ctx, q.ID, items); err != nil {
			return err
		}
		return quotes.ReplaceAides(ctx, q.ID, aides)
	})
	if err != nil {
		return nil, fmt.Errorf("devis: crear: %w", err)
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("quote_ref", q.Reference).
		Int("items", len(items)).
		Msg("devis creado")
	return toQuoteResponse(q, items, aides), nil
}

// Update reemplaza cabecera, líneas y ayudas. La referencia no cambia.
func (uc *UseCase) Update(ctx context.Context, companyID, id string, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	items, aides, err := buildLines(in)
	if err != nil {
		return nil, err
	}
	q, err := uc.quoteRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("devis: obtener: %w", err)
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkClient(ctx, companyID, in.ClientID); err != nil {
		return nil, err
	}

	q.ClientID = in.ClientID
	q.DocumentType = in.DocumentType
	q.UpdatedAt = uc.now()
	applyRequest(q, in, totals.Calculate(items, aides))

	err = uc.tx.RunQuote(ctx, func(quotes repository.QuoteRepository, _ repository.ReferenceCounter) error {
		if err := quotes.Update(ctx, q); err != nil {
			return err
		}
		if err := quotes.ReplaceItems(ctx, q.ID, items); err != nil {
			return err
		}
		return quotes.ReplaceAides(ctx, q.ID, aides)
	})
	if err != nil {
		return nil, fmt.Errorf("devis: actualizar: %w", err)
	}
	return toQuoteResponse(q, items, aides), nil
}

// Get devuelve el documento con líneas, ayudas y totales recalculados.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.QuoteResponse, error) {
	q, err := uc.quoteRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("devis: obtener: %w", err)
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItems(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("devis: líneas: %w", err)
	}
	aides, err := uc.quoteRepo.GetAides(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("devis: ayudas: %w", err)
	}
	return toQuoteResponse(q, items, aides), nil
}

// List resúmenes de la empresa, más recientes primero.
func (uc *UseCase) List(ctx context.Context, companyID string) ([]dto.QuoteSummaryResponse, error) {
	list, err := uc.quoteRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("devis: listar: %w", err)
	}
	out := make([]dto.QuoteSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSummaryResponse(s))
	}
	return out, nil
}

// Delete elimina el documento; líneas y ayudas caen por cascada.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.quoteRepo.Delete(ctx, companyID, id); err != nil {
		return fmt.Errorf("devis: eliminar: %w", err)
	}
	return nil
}

// Items líneas del documento en orden.
func (uc *UseCase) Items(ctx context.Context, companyID, id string) ([]dto.QuoteItemResponse, error) {
	if err := uc.checkQuote(ctx, companyID, id); err != nil {
		return nil, err
	}
	items, err := uc.quoteRepo.GetItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("devis: líneas: %w", err)
	}
	return toItemResponses(items), nil
}

// Aides ayudas del documento en orden.
func (uc *UseCase) Aides(ctx context.Context, companyID, id string) ([]dto.AideResponse, error) {
	if err := uc.checkQuote(ctx, companyID, id); err != nil {
		return nil, err
	}
	aides, err := uc.quoteRepo.GetAides(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("devis: ayudas: %w", err)
	}
	return toAideResponses(aides), nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (uc *UseCase) checkQuote(ctx context.Context, companyID, id string) error {
	q, err := uc.quoteRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("devis: obtener: %w", err)
	}
	if q == nil {
		return domain.ErrNotFound
	}
	return nil
}

// checkClient el cliente debe existir y pertenecer a la empresa del token.
func (uc *UseCase) checkClient(ctx context.Context, companyID, clientID string) error {
	c, err := uc.clientRepo.GetByID(ctx, companyID, clientID)
	if err != nil {
		return fmt.Errorf("devis: obtener cliente: %w", err)
	}
	if c == nil {
		return invalid("cliente %s no existe", clientID)
	}
	return nil
}

func applyRequest(q *entity.Quote, in dto.QuoteRequest, t totals.Totals) {
	q.DownPaymentText = in.DownPaymentText
	q.IBAN = in.IBAN
	q.InstallerRef = in.InstallerRef
	q.CapacityAttestationNo = in.CapacityAttestationNo
	q.CivilLiabilityInsurance = in.CivilLiabilityInsurance
	q.FooterNotes = in.FooterNotes
	q.TotalHT = t.SubtotalHT.Round(2)
	q.TotalTVA = t.VAT.Round(2)
	q.TotalTTC = t.TotalTTC.Round(2)
}
