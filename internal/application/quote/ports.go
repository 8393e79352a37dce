package quote

import (
	"context"

	"github.com/jhoicas/devis-api/internal/domain/repository"
	"github.com/jhoicas/devis-api/internal/infrastructure/pdf"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella:
// cabecera, líneas, ayudas y consecutivo se confirman juntos.
type TxRunner interface {
	RunQuote(ctx context.Context, fn func(
		quotes repository.QuoteRepository,
		counter repository.ReferenceCounter,
	) error) error
}

// DocumentRenderer genera el PDF DEVIS/FACTURE.
type DocumentRenderer interface {
	Render(ctx context.Context, in pdf.Input) ([]byte, error)
}

// Mailer entrega un correo con un adjunto ya escrito en disco.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// Mail mensaje a enviar. FromName/ReplyTo son los de la empresa emisora; el
// remitente técnico lo fija el Mailer.
type Mail struct {
	FromName   string
	ReplyTo    string
	To         string
	ToName     string
	Subject    string
	Text       string
	HTML       string
	Attachment Attachment
}

// Attachment archivo adjunto: Path es la ruta temporal, Name el nombre visible.
type Attachment struct {
	Name string
	Path string
}
