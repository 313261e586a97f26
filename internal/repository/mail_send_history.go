package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/storage/db"
)

type MailSendHistoryRepository interface {
	WithDB(db db.DB) MailSendHistoryRepository
	CreateMailSendHistory(ctx context.Context, history model.MailSendHistory) error
}

type mailSendHistoryRepository struct {
	db db.DB
}

func NewMailSendHistoryRepository(db db.DB) MailSendHistoryRepository {
	return &mailSendHistoryRepository{db: db}
}

func (r mailSendHistoryRepository) WithDB(db db.DB) MailSendHistoryRepository {
	return &mailSendHistoryRepository{db: db}
}

func (r mailSendHistoryRepository) CreateMailSendHistory(ctx context.Context, history model.MailSendHistory) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO mail_send_histories (from_email, to_email, subject, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		history.FromEmail,
		history.ToEmail,
		history.Subject,
		history.Content,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert mail send history: %w", err)
	}

	return nil
}
