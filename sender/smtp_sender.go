package sender

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"storefront-backend/config"
)

type SMTPSender struct {
	host       string
	port       string
	username   string
	password   string
	senderName string
}

func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	if cfg.SMTPUser == "" {
		return nil, fmt.Errorf("SMTP_USER not set")
	}
	if cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP_PASS not set")
	}

	return &SMTPSender{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		username:   cfg.SMTPUser,
		password:   cfg.SMTPPass,
		senderName: cfg.SMTPSenderName,
	}, nil
}

func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	from := fmt.Sprintf("%s <%s>", s.senderName, s.username)

	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, s.username, []string{to}, msg); err != nil {
		return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
	}

	return SendResult{
		MessageID: fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
