package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appquote "github.com/jhoicas/devis-api/internal/application/quote"
	"github.com/jhoicas/devis-api/pkg/config"
)

func TestBuild_MensajeConAdjunto(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/devis-123.pdf", []byte("%PDF-1.3 contenido"), 0o600))

	m := NewSMTPMailer(config.SMTPConfig{Host: "localhost", Port: 2525, From: "noreply@devis.test"}, fs, zerolog.Nop())
	gm := m.build(appquote.Mail{
		FromName: "Thermique Services",
		ReplyTo:  "contact@thermique.test",
		To:       "jean@example.test",
		ToName:   "Jean Dupont",
		Subject:  "Votre Devis D2025-0001 - Thermique Services",
		Text:     "Bonjour Jean Dupont",
		HTML:     "<p>Bonjour Jean Dupont</p>",
		Attachment: appquote.Attachment{
			Name: "Devis_D2025-0001.pdf",
			Path: "/tmp/devis-123.pdf",
		},
	})

	var buf bytes.Buffer
	_, err := gm.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: Votre Devis D2025-0001 - Thermique Services")
	assert.Contains(t, raw, "noreply@devis.test")
	assert.Contains(t, raw, "Reply-To: contact@thermique.test")
	assert.Contains(t, raw, "jean@example.test")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, `filename="Devis_D2025-0001.pdf"`)
	assert.Contains(t, raw, "application/pdf")
}

func TestSend_ContextoCancelado(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "localhost", Port: 2525}, afero.NewMemMapFs(), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Send(ctx, appquote.Mail{To: "x@example.test"})
	assert.ErrorIs(t, err, context.Canceled)
}
