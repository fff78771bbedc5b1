package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// Mailer sends plain-text mail over authenticated SMTP. It satisfies
// the OTP manager's Notifier interface.
type Mailer struct {
	host     string
	port     string
	username string
	password string
}

func NewMailer(host, port, username, password string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.username, to, subject, body,
	)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	err := smtp.SendMail(
		m.host+":"+m.port,
		auth,
		m.username,
		[]string{to},
		[]byte(msg),
	)
	if err != nil {
		return fmt.Errorf("mail: failed to send to %s: %w", to, err)
	}

	return nil
}
