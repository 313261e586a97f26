package model

import "time"

// MailSendHistory records one successfully sent mail. The history is an
// append-only log; rows are never updated or deleted.
type MailSendHistory struct {
	ID        int64     `json:"id"`
	FromEmail string    `json:"from_email"`
	ToEmail   string    `json:"to_email"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
