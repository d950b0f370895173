// Package mailer is the transactional email boundary: SMTP delivery via
// gomail, placeholder template rendering, and the booking/application
// notification composition (internal notice plus templated user
// confirmation).
package mailer

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/vipcaribbean/site-api/internal/config"
)

// Attachment is a file carried by a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outbound email.
type Message struct {
	FromName    string
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers messages. The SMTP implementation is Mailer; tests swap
// in a recorder.
type Sender interface {
	Send(msg *Message) error
}

// Mailer sends over SMTP with the configured identity.
type Mailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *Mailer) Send(msg *Message) error {
	fromName := msg.FromName
	if fromName == "" {
		fromName = m.cfg.FromName
	}

	out := gomail.NewMessage()
	out.SetHeader("From", fmt.Sprintf("%s <%s>", fromName, m.cfg.FromEmail))
	out.SetHeader("To", msg.To)
	out.SetHeader("Subject", msg.Subject)
	out.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		content := att.Content
		out.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(content))
			return err
		}))
	}

	if err := m.dialer.DialAndSend(out); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}
