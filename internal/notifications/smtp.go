package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer is the fallback provider when no Brevo API key is configured.
type SMTPMailer struct {
	addr     string
	auth     smtp.Auth
	from     string
	username string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	if strings.TrimSpace(host) == "" || strings.TrimSpace(username) == "" {
		return nil
	}
	if strings.TrimSpace(from) == "" {
		from = username
	}
	return &SMTPMailer{
		addr:     fmt.Sprintf("%s:%d", host, port),
		auth:     smtp.PlainAuth("", username, password, host),
		from:     from,
		username: username,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m == nil {
		return errors.New("smtp mailer is nil")
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("missing recipient email")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if strings.TrimSpace(msg.ReplyTo) != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	if strings.TrimSpace(msg.HTML) != "" {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.HTML)
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.Text)
	}

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
