package sender

import (
	"context"
	"time"
)

// SendResult carries the provider's message id for logging. Delivery
// webhooks are not handled; send-and-log-result only.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender is the transactional email collaborator.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}
