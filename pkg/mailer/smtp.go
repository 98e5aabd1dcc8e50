package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templatesFS embed.FS

var verifyTemplate = template.Must(template.ParseFS(templatesFS, "templates/verify_email.html"))

// Config holds SMTP connection settings
type Config struct {
	Server   string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	SSL      bool
}

// Message is a single HTML email
type Message struct {
	To      string
	Subject string
	HTML    string
}

// VerifyEmailData is rendered into the confirmation email
type VerifyEmailData struct {
	Username string
	Link     string
}

// SMTPMailer sends messages through an SMTP server
type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
}

// NewSMTPMailer creates a mailer. No connection is made until Send.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.SSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Server, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

// Send delivers one message
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	built, err := m.build(msg)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, built); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}

	return nil
}

func (m *SMTPMailer) build(msg Message) (*mail.Msg, error) {
	built := mail.NewMsg()
	if err := built.FromFormat(m.fromName, m.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := built.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	built.Subject(msg.Subject)
	built.SetBodyString(mail.TypeTextHTML, msg.HTML)

	return built, nil
}

// RenderVerifyEmail renders the body of the confirmation email
func RenderVerifyEmail(data VerifyEmailData) (string, error) {
	var buf bytes.Buffer
	if err := verifyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}
