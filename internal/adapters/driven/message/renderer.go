// Package message renders the outreach email for a lead.
package message

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/ports/driven"
)

const bodyTemplate = `<html>
  <body style="font-family: Arial, sans-serif; font-size: 14px; color: #222;">
    <p>Hi {{.Greeting}},</p>

    <p>
      We support SAP-centric companies like <strong>{{.Company}}</strong> with one very specific topic:
      <strong>product master data governance in SAP MDG</strong>.
    </p>

    <p>
      Using our <strong>Rapid Product Master SAP MDG Template</strong>, teams typically go live in <strong>6-12 months</strong>.
      Reference: <strong>Jungheinrich</strong> went live globally in <strong>12 months</strong>.
    </p>

    <p>
      Can we schedule a <strong>15-minute Teams call</strong> to check if this is relevant for you?
    </p>

    <p>
      Best wishes,<br>
      <strong>{{.SenderName}}</strong><br>
      {{.SenderTitle}}
    </p>
{{if .LogoCID}}
    <img src="cid:{{.LogoCID}}" alt="{{.Brand}}" width="350"
         style="display:block; margin-top:6px;" />
{{end}}  </body>
</html>
`

// Renderer builds HTML outreach messages. The logo file, when configured, is
// read once at construction and attached inline to every message.
type Renderer struct {
	senderName  string
	senderTitle string
	brand       string
	tmpl        *template.Template

	logo     []byte
	logoName string
}

var _ driven.MessageRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer signing messages as the given sender. brand
// labels the inline logo; an empty logoPath disables the logo entirely.
func NewRenderer(senderName, senderTitle, brand, logoPath string) (*Renderer, error) {
	tmpl, err := template.New("outreach").Parse(bodyTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse message template: %w", err)
	}

	r := &Renderer{
		senderName:  senderName,
		senderTitle: senderTitle,
		brand:       brand,
		tmpl:        tmpl,
	}

	if logoPath != "" {
		logo, err := os.ReadFile(logoPath)
		if err != nil {
			return nil, fmt.Errorf("read logo file: %w", err)
		}
		r.logo = logo
		r.logoName = filepath.Base(logoPath)
	}

	return r, nil
}

// Render builds the outreach message for one lead.
func (r *Renderer) Render(lead domain.Lead) (*domain.OutreachMessage, error) {
	if lead.Email == "" {
		return nil, fmt.Errorf("lead %s has no email: %w", lead.PersonID, domain.ErrInvalidInput)
	}

	greeting := strings.TrimSpace(lead.FirstName)
	if greeting == "" {
		greeting = "there"
	}
	company := strings.TrimSpace(lead.Company)

	var body strings.Builder
	err := r.tmpl.Execute(&body, struct {
		Greeting    string
		Company     string
		SenderName  string
		SenderTitle string
		Brand       string
		LogoCID     string
	}{
		Greeting:    greeting,
		Company:     company,
		SenderName:  r.senderName,
		SenderTitle: r.senderTitle,
		Brand:       r.brand,
		LogoCID:     r.logoName,
	})
	if err != nil {
		return nil, fmt.Errorf("render message body: %w", err)
	}

	return &domain.OutreachMessage{
		To:         lead.Email,
		Subject:    fmt.Sprintf("AVC at %s re: master data governance for SAP S/4HANA programs", company),
		HTMLBody:   body.String(),
		InlineLogo: r.logo,
		LogoName:   r.logoName,
	}, nil
}
