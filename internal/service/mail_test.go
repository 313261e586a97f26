package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailServiceSendMail(t *testing.T) {
	ctx := context.Background()

	t.Run("Should record a history row after a successful send", func(t *testing.T) {
		mailClient := &fakeMailClient{}
		historyRepo := &fakeMailHistoryRepo{}
		svc := NewMailService(mailClient, historyRepo)

		err := svc.SendMail(ctx, "no-reply@cafekiosk.com", "owner@cafekiosk.com", "subject", "content")

		require.NoError(t, err)
		require.Len(t, historyRepo.created, 1)
		history := historyRepo.created[0]
		assert.Equal(t, "no-reply@cafekiosk.com", history.FromEmail)
		assert.Equal(t, "owner@cafekiosk.com", history.ToEmail)
		assert.Equal(t, "subject", history.Subject)
		assert.Equal(t, "content", history.Content)
	})

	t.Run("Should not record history when the send fails", func(t *testing.T) {
		mailClient := &fakeMailClient{sendErr: errors.New("smtp unavailable")}
		historyRepo := &fakeMailHistoryRepo{}
		svc := NewMailService(mailClient, historyRepo)

		err := svc.SendMail(ctx, "no-reply@cafekiosk.com", "owner@cafekiosk.com", "subject", "content")

		require.Error(t, err)
		assert.Empty(t, historyRepo.created)
	})
}
