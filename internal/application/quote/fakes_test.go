package quote_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/jhoicas/devis-api/internal/application/quote"
	"github.com/jhoicas/devis-api/internal/domain"
	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/repository"
	"github.com/jhoicas/devis-api/internal/infrastructure/pdf"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memQuotes struct {
	mu     sync.Mutex
	quotes map[string]*entity.Quote
	items  map[string][]entity.LineItem
	aides  map[string][]entity.Aide
	sent   []string
	failOn string
}

func newMemQuotes() *memQuotes {
	return &memQuotes{
		quotes: map[string]*entity.Quote{},
		items:  map[string][]entity.LineItem{},
		aides:  map[string][]entity.Aide{},
	}
}

func (m *memQuotes) fail(op string) error {
	if m.failOn == op {
		return context.DeadlineExceeded
	}
	return nil
}

func (m *memQuotes) Create(_ context.Context, q *entity.Quote) error {
	if err := m.fail("create"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *q
	m.quotes[q.ID] = &cp
	return nil
}

func (m *memQuotes) Update(_ context.Context, q *entity.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quotes[q.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *q
	m.quotes[q.ID] = &cp
	return nil
}

func (m *memQuotes) GetByID(_ context.Context, companyID, id string) (*entity.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok || q.CompanyID != companyID {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (m *memQuotes) ListByCompany(_ context.Context, companyID string) ([]*entity.QuoteSummary, error) {
	return m.list(func(q *entity.Quote) bool { return q.CompanyID == companyID }), nil
}

func (m *memQuotes) ListByClient(_ context.Context, companyID, clientID string) ([]*entity.QuoteSummary, error) {
	return m.list(func(q *entity.Quote) bool { return q.CompanyID == companyID && q.ClientID == clientID }), nil
}

func (m *memQuotes) list(keep func(*entity.Quote) bool) []*entity.QuoteSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.QuoteSummary
	for _, q := range m.quotes {
		if !keep(q) {
			continue
		}
		out = append(out, &entity.QuoteSummary{
			ID: q.ID, Reference: q.Reference, DocumentType: q.DocumentType, Status: q.Status,
			ClientID: q.ClientID, TotalTTC: q.TotalTTC, CreatedAt: q.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference > out[j].Reference })
	return out
}

func (m *memQuotes) Delete(_ context.Context, companyID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok || q.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(m.quotes, id)
	delete(m.items, id)
	delete(m.aides, id)
	return nil
}

func (m *memQuotes) MarkSent(_ context.Context, companyID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok || q.CompanyID != companyID {
		return domain.ErrNotFound
	}
	q.Status = entity.QuoteStatusSent
	m.sent = append(m.sent, id)
	return nil
}

func (m *memQuotes) ReplaceItems(_ context.Context, quoteID string, items []entity.LineItem) error {
	if err := m.fail("items"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[quoteID] = append([]entity.LineItem(nil), items...)
	return nil
}

func (m *memQuotes) GetItems(_ context.Context, quoteID string) ([]entity.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.LineItem(nil), m.items[quoteID]...), nil
}

func (m *memQuotes) ReplaceAides(_ context.Context, quoteID string, aides []entity.Aide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aides[quoteID] = append([]entity.Aide(nil), aides...)
	return nil
}

func (m *memQuotes) GetAides(_ context.Context, quoteID string) ([]entity.Aide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.Aide(nil), m.aides[quoteID]...), nil
}

type memClients struct {
	clients map[string]*entity.Client
}

func (m *memClients) Create(context.Context, *entity.Client) error { return nil }
func (m *memClients) Update(context.Context, *entity.Client) error { return nil }
func (m *memClients) Delete(context.Context, string, string) error { return nil }
func (m *memClients) ListByCompany(context.Context, string) ([]*entity.Client, error) {
	return nil, nil
}

func (m *memClients) GetByID(_ context.Context, companyID, id string) (*entity.Client, error) {
	c, ok := m.clients[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return c, nil
}

// memCompanies solo implementa GetByID; el alta de empresas no se usa aquí.
type memCompanies struct {
	repository.CompanyRepository
	companies map[string]*entity.Company
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.companies[id], nil
}

// memCounter consecutivo por (empresa, año); el valor solo se confirma si la tx termina bien.
type memCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

func (c *memCounter) Next(_ context.Context, companyID string, year int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := fmt.Sprintf("%s/%d", companyID, year)
	c.values[key]++
	return c.values[key], nil
}

type memTx struct {
	quotes  *memQuotes
	counter *memCounter
}

func (t *memTx) RunQuote(ctx context.Context, fn func(repository.QuoteRepository, repository.ReferenceCounter) error) error {
	t.counter.mu.Lock()
	snapshot := make(map[string]int64, len(t.counter.values))
	for k, v := range t.counter.values {
		snapshot[k] = v
	}
	t.counter.mu.Unlock()

	if err := fn(t.quotes, t.counter); err != nil {
		t.counter.mu.Lock()
		t.counter.values = snapshot
		t.counter.mu.Unlock()
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Renderizador y correo
// ──────────────────────────────────────────────────────────────────────────────

type stubRenderer struct {
	out []byte
	err error
	got pdf.Input
}

func (r *stubRenderer) Render(_ context.Context, in pdf.Input) ([]byte, error) {
	r.got = in
	return r.out, r.err
}

// recordingMailer guarda el correo y el contenido del adjunto en el momento del envío.
type recordingMailer struct {
	fs         afero.Fs
	err        error
	mails      []quote.Mail
	attachment []byte
}

func (m *recordingMailer) Send(_ context.Context, mail quote.Mail) error {
	m.mails = append(m.mails, mail)
	data, err := afero.ReadFile(m.fs, mail.Attachment.Path)
	if err != nil {
		return err
	}
	m.attachment = data
	return m.err
}
