package mail

import "context"

// Client is the outbound notification gateway. Implementations deliver a
// single plain-text mail; a nil error means the downstream accepted it.
type Client interface {
	SendEmail(ctx context.Context, fromEmail, toEmail, subject, content string) error
}
