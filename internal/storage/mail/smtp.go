package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/cafekiosk/kiosk/internal/config"
)

var _ Client = (*SMTPClient)(nil)

type SMTPClient struct {
	cl *gomail.Client
}

// NewSMTPClient creates a mail client for the configured SMTP relay.
func NewSMTPClient(cfg config.Mail) (*SMTPClient, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUser),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	cl, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPClient{cl: cl}, nil
}

func (c *SMTPClient) SendEmail(ctx context.Context, fromEmail, toEmail, subject, content string) error {
	msg := gomail.NewMsg()
	if err := msg.From(fromEmail); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, content)

	if err := c.cl.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("dial and send: %w", err)
	}

	return nil
}
