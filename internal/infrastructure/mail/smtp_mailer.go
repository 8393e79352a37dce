// Package mail envía los documentos por SMTP con gomail.
package mail

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/gomail.v2"

	appquote "github.com/jhoicas/devis-api/internal/application/quote"
	"github.com/jhoicas/devis-api/pkg/config"
)

var _ appquote.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementa quote.Mailer. Los adjuntos se leen del mismo afero.Fs
// en el que el caso de uso escribió el archivo temporal.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	fs     afero.Fs
	log    zerolog.Logger
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig, fs afero.Fs, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		fs:     fs,
		log:    log,
	}
}

// Send compone el mensaje y lo entrega. gomail no acepta contexto: solo se
// comprueba antes de conectar.
func (m *SMTPMailer) Send(ctx context.Context, msg appquote.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm := m.build(msg)
	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", msg.To, err)
	}
	m.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail: documento enviado")
	return nil
}

// build arma el mensaje multipart: texto plano, alternativa HTML y adjunto.
func (m *SMTPMailer) build(msg appquote.Mail) *gomail.Message {
	gm := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	from := m.from
	if from == "" {
		from = msg.ReplyTo
	}
	gm.SetAddressHeader("From", from, msg.FromName)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetAddressHeader("To", msg.To, msg.ToName)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}
	if a := msg.Attachment; a.Path != "" {
		gm.Attach(a.Path,
			gomail.Rename(a.Name),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				f, err := m.fs.Open(a.Path)
				if err != nil {
					return err
				}
				defer f.Close()
				_, err = io.Copy(w, f)
				return err
			}),
		)
	}
	return gm
}
