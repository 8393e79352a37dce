package quote

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

var mailTmpl = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333333;">
  <h2 style="color: {{.Color}};">Bonjour {{.ClientName}},</h2>
  <p>Veuillez trouver ci-joint votre {{.Label}} <strong>{{.Reference}}</strong>.</p>
  {{- if .Lines}}
  <p>{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
  {{- else}}
  <p>N'hésitez pas à nous contacter si vous avez des questions.</p>
  {{- end}}
  <p>Cordialement,<br><strong>{{.Company}}</strong></p>
  <hr style="border: none; border-top: 1px solid #dddddd;">
  <p style="font-size: 12px; color: #777777;">
    {{- if .Phone}}Tél : {{.Phone}}<br>{{end}}
    {{- if .Email}}Email : {{.Email}}<br>{{end}}
    {{- if .Address}}{{.Address}}{{end}}
  </p>
</body>
</html>
`))

type mailData struct {
	Color      string
	ClientName string
	Label      string
	Reference  string
	Lines      []string
	Company    string
	Phone      string
	Email      string
	Address    string
}

// documentWord nombre del documento en el asunto y el adjunto.
func documentWord(q *entity.Quote) string {
	if q.IsInvoice() {
		return "Facture"
	}
	return "Devis"
}

// attachmentName Devis_D2025-0001.pdf / Facture_F2025-0001.pdf.
func attachmentName(q *entity.Quote) string {
	return documentWord(q) + "_" + q.Reference + ".pdf"
}

// composeMail arma asunto, texto y HTML. El mensaje personalizado sustituye el
// párrafo por defecto; en HTML cada salto de línea se vuelve <br>.
func composeMail(doc *document, customMessage string) (Mail, error) {
	q, company, client := doc.quote, doc.company, doc.client
	word := documentWord(q)
	label := strings.ToLower(word)

	text := strings.TrimSpace(customMessage)
	if text == "" {
		text = fmt.Sprintf("Bonjour %s,\n\nVeuillez trouver ci-joint votre %s %s.\n\n"+
			"N'hésitez pas à nous contacter si vous avez des questions.\n\nCordialement,\n%s",
			client.Name, label, q.Reference, company.Name)
	}

	data := mailData{
		Color:      orColor(company.Theme.Primary),
		ClientName: client.Name,
		Label:      label,
		Reference:  q.Reference,
		Company:    company.Name,
		Phone:      company.Phone,
		Email:      company.Email,
		Address:    company.Address,
	}
	if msg := strings.TrimSpace(customMessage); msg != "" {
		data.Lines = strings.Split(strings.ReplaceAll(msg, "\r\n", "\n"), "\n")
	}

	var html bytes.Buffer
	if err := mailTmpl.Execute(&html, data); err != nil {
		return Mail{}, fmt.Errorf("correo: plantilla: %w", err)
	}

	return Mail{
		FromName: company.Name,
		ReplyTo:  company.Email,
		To:       strings.TrimSpace(client.Email),
		ToName:   client.Name,
		Subject:  fmt.Sprintf("Votre %s %s - %s", word, q.Reference, company.Name),
		Text:     text,
		HTML:     html.String(),
		Attachment: Attachment{
			Name: attachmentName(q),
		},
	}, nil
}

func orColor(c string) string {
	if strings.HasPrefix(c, "#") && (len(c) == 4 || len(c) == 7) {
		return c
	}
	return "#1E293B"
}
