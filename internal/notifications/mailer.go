package notifications

import (
	"context"

	"cawebsite-backend/internal/config"
)

// Message is the provider-independent outbound mail shape.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the provider once at startup: Brevo's REST API when an API
// key is configured, plain SMTP when SMTP credentials are, nil otherwise.
func NewMailer(cfg *config.Config) Mailer {
	if brevo := NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox); brevo != nil {
		return brevo
	}
	if smtp := NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom); smtp != nil {
		return smtp
	}
	return nil
}
