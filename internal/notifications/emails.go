package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"cawebsite-backend/internal/careers"
)

// Service fans firm-facing notifications out to the configured mail provider
// and the optional chat webhook.
type Service struct {
	mailer      Mailer
	chat        *ChatWebhook
	notifyEmail string
}

func NewService(mailer Mailer, chat *ChatWebhook, notifyEmail string) *Service {
	return &Service{
		mailer:      mailer,
		chat:        chat,
		notifyEmail: notifyEmail,
	}
}

// MailEnabled reports whether a mail provider and destination inbox are
// configured. Callers skip mail sends entirely when this is false.
func (s *Service) MailEnabled() bool {
	return s != nil && s.mailer != nil && s.notifyEmail != ""
}

func (s *Service) ChatEnabled() bool {
	return s != nil && s.chat != nil
}

type ContactNotification struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New contact enquiry</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <p><strong>Message:</strong><br/>{{.Message}}</p>
</body>
</html>`

const applicationNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New career application</h3>
  <p><strong>Position:</strong> {{.CareerTitle}}</p>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Experience:</strong> {{.Experience}}</p>
  {{if .Resume}}<p><strong>Resume:</strong> <a href="{{.Resume}}">{{.Resume}}</a></p>{{end}}
  {{if .CoverLetter}}<p><strong>Cover letter:</strong><br/>{{.CoverLetter}}</p>{{end}}
  <p><strong>Application ID:</strong> {{.ID}}</p>
</body>
</html>`

var contactNotificationTmpl = template.Must(template.New("contact_notification").Parse(contactNotificationTemplate))
var applicationNotificationTmpl = template.Must(template.New("application_notification").Parse(applicationNotificationTemplate))

func (s *Service) SendContactNotification(ctx context.Context, c ContactNotification) error {
	if s == nil || s.mailer == nil {
		return errors.New("mailer not configured")
	}
	if s.notifyEmail == "" {
		return errors.New("notify email not configured")
	}
	var buf bytes.Buffer
	if err := contactNotificationTmpl.Execute(&buf, c); err != nil {
		return err
	}
	return s.mailer.Send(ctx, Message{
		To:      s.notifyEmail,
		Subject: fmt.Sprintf("Contact enquiry: %s", c.Subject),
		HTML:    buf.String(),
		ReplyTo: c.Email,
	})
}

func (s *Service) SendApplicationNotification(ctx context.Context, app careers.Application) error {
	if s == nil || s.mailer == nil {
		return errors.New("mailer not configured")
	}
	if s.notifyEmail == "" {
		return errors.New("notify email not configured")
	}
	var buf bytes.Buffer
	if err := applicationNotificationTmpl.Execute(&buf, app); err != nil {
		return err
	}
	return s.mailer.Send(ctx, Message{
		To:      s.notifyEmail,
		Subject: fmt.Sprintf("Career application: %s", app.CareerTitle),
		HTML:    buf.String(),
		ReplyTo: app.Email,
	})
}

// NotifyContactChat pushes a short line to the chat webhook. Errors are
// returned so the caller can log them, but the contact request itself must
// still succeed.
func (s *Service) NotifyContactChat(ctx context.Context, c ContactNotification) error {
	if s == nil || s.chat == nil {
		return errors.New("chat webhook not configured")
	}
	text := fmt.Sprintf("New contact enquiry from %s <%s>: %s", c.Name, c.Email, c.Subject)
	return s.chat.Notify(ctx, text)
}
