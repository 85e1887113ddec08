package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/user/repowatch/internal/report"
)

// Email sends reports over SMTP with plain auth.
type Email struct {
	server   string
	port     int
	from     string
	to       []string
	password string

	// send allows tests to intercept the SMTP call.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmail creates an email notifier.
func NewEmail(server string, port int, from string, to []string, password string) *Email {
	return &Email{
		server:   server,
		port:     port,
		from:     from,
		to:       to,
		password: password,
		send:     smtp.SendMail,
	}
}

func (e *Email) Name() string { return "email" }

// Send mails the report as plain text to all recipients.
func (e *Email) Send(ctx context.Context, rep *report.Report) error {
	if len(e.to) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	msg := buildMessage(e.from, e.to, rep.Title, rep.Content)
	addr := fmt.Sprintf("%s:%d", e.server, e.port)
	auth := smtp.PlainAuth("", e.from, e.password, e.server)

	if err := e.send(addr, auth, e.from, e.to, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
