package quote

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/devis-api/internal/domain"
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/repository"
	"github.com/jhoicas/devis-api/internal/infrastructure/pdf"
)

// document todo lo que necesita el renderizador para un devis.
type document struct {
	quote   *entity.Quote
	items   []entity.LineItem
	aides   []entity.Aide
	company *entity.Company
	client  *entity.Client
}

func (d *document) input() pdf.Input {
	return pdf.Input{
		Quote:   d.quote,
		Items:   d.items,
		Aides:   d.aides,
		Company: d.company,
		Client:  d.client,
	}
}

type loader struct {
	quoteRepo   repository.QuoteRepository
	clientRepo  repository.ClientRepository
	companyRepo repository.CompanyRepository
}

// load obtiene la cabecera y luego, en paralelo, líneas, ayudas, empresa y cliente.
func (l loader) load(ctx context.Context, companyID, id string) (*document, error) {
	q, err := l.quoteRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener devis: %w", err)
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}

	doc := &document{quote: q}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := l.quoteRepo.GetItems(gctx, q.ID)
		if err != nil {
			return fmt.Errorf("documento: líneas: %w", err)
		}
		doc.items = items
		return nil
	})
	g.Go(func() error {
		aides, err := l.quoteRepo.GetAides(gctx, q.ID)
		if err != nil {
			return fmt.Errorf("documento: ayudas: %w", err)
		}
		doc.aides = aides
		return nil
	})
	g.Go(func() error {
		company, err := l.companyRepo.GetByID(gctx, companyID)
		if err != nil {
			return fmt.Errorf("documento: obtener empresa: %w", err)
		}
		if company == nil {
			return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
		}
		doc.company = company
		return nil
	})
	g.Go(func() error {
		client, err := l.clientRepo.GetByID(gctx, companyID, q.ClientID)
		if err != nil {
			return fmt.Errorf("documento: obtener cliente: %w", err)
		}
		if client == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, q.ClientID)
		}
		doc.client = client
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return doc, nil
}
