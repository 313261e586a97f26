package service

import (
	"context"
	"fmt"

	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/repository"
	"github.com/cafekiosk/kiosk/internal/storage/mail"
)

type MailService interface {
	// SendMail delivers a mail through the notification gateway and, on
	// success, appends a row to the send history.
	SendMail(ctx context.Context, fromEmail, toEmail, subject, content string) error
}

type mailService struct {
	mailClient      mail.Client
	mailHistoryRepo repository.MailSendHistoryRepository
}

func NewMailService(
	mailClient mail.Client,
	mailHistoryRepo repository.MailSendHistoryRepository,
) MailService {
	return &mailService{
		mailClient:      mailClient,
		mailHistoryRepo: mailHistoryRepo,
	}
}

func (s *mailService) SendMail(ctx context.Context, fromEmail, toEmail, subject, content string) error {
	if err := s.mailClient.SendEmail(ctx, fromEmail, toEmail, subject, content); err != nil {
		return fmt.Errorf("mail client send email: %w", err)
	}

	if err := s.mailHistoryRepo.CreateMailSendHistory(ctx, model.MailSendHistory{
		FromEmail: fromEmail,
		ToEmail:   toEmail,
		Subject:   subject,
		Content:   content,
	}); err != nil {
		return fmt.Errorf("mail send history repository create: %w", err)
	}

	return nil
}
