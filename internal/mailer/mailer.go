package mailer

import (
	"context"
	"log"
)

// Mailer sends notification emails
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes outgoing mail to the log instead of delivering it. It is
// the default sender when no Gmail credentials are configured.
type LogMailer struct{}

// NewLogMailer creates a log-only sender
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Send logs the message and reports success
func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("[EMAIL SIMULADO] Enviando a: %s", to)
	log.Printf("   Asunto: %s", subject)
	log.Printf("   Cuerpo: %s", body)
	return nil
}
