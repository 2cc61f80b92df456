package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltmpl "html/template"
	"net/http"
	texttmpl "text/template"

	"github.com/lshigami/ojtportal/config"
	"github.com/lshigami/ojtportal/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// AccessCodeMessage is the content of the email sent to a supervisor.
type AccessCodeMessage struct {
	To          string
	Supervisor  string
	StudentName string
	Family      model.Family
	Code        string
	Link        string
}

// Mailer delivers access-code emails.
type Mailer interface {
	SendAccessCode(ctx context.Context, msg AccessCodeMessage) error
}

var errMailerNotConfigured = errors.New("email delivery is not configured")

const accessCodeText = `Good day{{if .Supervisor}} {{.Supervisor}}{{end}},

{{.StudentName}} has requested your {{.Form}}.

Open {{.Link}} and enter the access code {{.Code}} to fill in the form.
`

const accessCodeHTML = `<p>Good day{{if .Supervisor}} {{.Supervisor}}{{end}},</p>
<p>{{.StudentName}} has requested your {{.Form}}.</p>
<p><a href="{{.Link}}">Open the form</a> and enter the access code <strong>{{.Code}}</strong>.</p>`

var (
	accessCodeTextTmpl = texttmpl.Must(texttmpl.New("access_code.txt").Parse(accessCodeText))
	accessCodeHTMLTmpl = htmltmpl.Must(htmltmpl.New("access_code.html").Parse(accessCodeHTML))
)

type sendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
	prefix string
}

func NewSendGridMailer(cfg *config.Config) Mailer {
	m := &sendGridMailer{
		from:   mail.NewEmail(cfg.Email.FromName, cfg.Email.FromAddress),
		prefix: "[" + cfg.App.Name + "] ",
	}
	if cfg.Email.SendGridAPIKey == "" {
		log.Warn().Msg("SENDGRID_API_KEY is not set. Access-code emails will fail.")
		return m
	}
	m.client = sendgrid.NewSendClient(cfg.Email.SendGridAPIKey)
	return m
}

func (m *sendGridMailer) SendAccessCode(ctx context.Context, msg AccessCodeMessage) error {
	if m.client == nil {
		return errMailerNotConfigured
	}
	text, html, err := renderAccessCode(msg)
	if err != nil {
		return err
	}
	subject := m.prefix + msg.Family.Requirement() + " access code"
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail(msg.Supervisor, msg.To), text, html)

	res, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send access code email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send access code email: sendgrid returned %d: %s", res.StatusCode, res.Body)
	}
	log.Info().Str("family", string(msg.Family)).Int("status", res.StatusCode).Msg("Access code email sent")
	return nil
}

func renderAccessCode(msg AccessCodeMessage) (string, string, error) {
	data := struct {
		AccessCodeMessage
		Form string
	}{msg, msg.Family.Requirement()}

	var text, html bytes.Buffer
	if err := accessCodeTextTmpl.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("render access code text: %w", err)
	}
	if err := accessCodeHTMLTmpl.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("render access code html: %w", err)
	}
	return text.String(), html.String(), nil
}
