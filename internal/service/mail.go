package service

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/HaxHorizon/AutoHack/internal/config"
)

type Email struct {
	To             string
	Subject        string
	Body           string
	Attachment     []byte
	AttachmentName string
}

type MailSender interface {
	Send(email Email) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender настраивает отправку через SMTP с неявным TLS (порт 465).
func NewSMTPSender(cfg config.SMTPConfig) MailSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password)
	dialer.SSL = true

	return &smtpSender{
		dialer: dialer,
		from:   cfg.Sender,
	}
}

func (s *smtpSender) Send(email Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)

	if len(email.Attachment) > 0 {
		msg.Attach(email.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(email.Attachment)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
