package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafekiosk/kiosk/internal/apperr"
	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/pkg/zerror"
)

func TestOrderStatisticsServiceSendOrderStatisticsMail(t *testing.T) {
	ctx := context.Background()
	orderDate := time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)

	ordersOn := func(at time.Time, status model.OrderStatus, totals ...int64) []model.Order {
		orders := make([]model.Order, 0, len(totals))
		for _, total := range totals {
			orders = append(orders, model.Order{
				Status:       status,
				TotalPrice:   total,
				RegisteredAt: at,
			})
		}
		return orders
	}

	t.Run("Should mail the revenue total of the day", func(t *testing.T) {
		orderRepo := &fakeOrderRepo{}
		orderRepo.listed = append(orderRepo.listed,
			ordersOn(orderDate.Add(4*time.Hour), model.OrderStatusPaymentCompleted, 12000, 15000)...)
		// outside the window or wrong status: must not count
		orderRepo.listed = append(orderRepo.listed,
			ordersOn(orderDate.Add(-time.Minute), model.OrderStatusPaymentCompleted, 99999)...)
		orderRepo.listed = append(orderRepo.listed,
			ordersOn(orderDate.Add(25*time.Hour), model.OrderStatusPaymentCompleted, 99999)...)
		orderRepo.listed = append(orderRepo.listed,
			ordersOn(orderDate.Add(4*time.Hour), model.OrderStatusInit, 99999)...)

		mailClient := &fakeMailClient{}
		historyRepo := &fakeMailHistoryRepo{}
		mailSvc := NewMailService(mailClient, historyRepo)
		svc := NewOrderStatisticsService("no-reply@cafekiosk.com", orderRepo, mailSvc)

		err := svc.SendOrderStatisticsMail(ctx, orderDate, "owner@cafekiosk.com")

		require.NoError(t, err)

		assert.Equal(t, orderDate, orderRepo.listedStart)
		assert.Equal(t, orderDate.AddDate(0, 0, 1), orderRepo.listedEnd)
		assert.Equal(t, model.OrderStatusPaymentCompleted, orderRepo.listedState)

		require.Len(t, mailClient.sent, 1)
		sent := mailClient.sent[0]
		assert.Equal(t, "no-reply@cafekiosk.com", sent.fromEmail)
		assert.Equal(t, "owner@cafekiosk.com", sent.toEmail)
		assert.Equal(t, "[Order statistics] 2023-03-05", sent.subject)
		assert.Equal(t, "Total revenue for 2023-03-05 is 27000.", sent.content)

		require.Len(t, historyRepo.created, 1)
		assert.Equal(t, sent.subject, historyRepo.created[0].Subject)
	})

	t.Run("Should mail a zero total when no orders match", func(t *testing.T) {
		mailClient := &fakeMailClient{}
		mailSvc := NewMailService(mailClient, &fakeMailHistoryRepo{})
		svc := NewOrderStatisticsService("no-reply@cafekiosk.com", &fakeOrderRepo{}, mailSvc)

		err := svc.SendOrderStatisticsMail(ctx, orderDate, "owner@cafekiosk.com")

		require.NoError(t, err)
		require.Len(t, mailClient.sent, 1)
		assert.Equal(t, "Total revenue for 2023-03-05 is 0.", mailClient.sent[0].content)
	})

	t.Run("Should fail when the gateway rejects the mail", func(t *testing.T) {
		mailClient := &fakeMailClient{sendErr: errors.New("smtp unavailable")}
		historyRepo := &fakeMailHistoryRepo{}
		mailSvc := NewMailService(mailClient, historyRepo)
		svc := NewOrderStatisticsService("no-reply@cafekiosk.com", &fakeOrderRepo{}, mailSvc)

		err := svc.SendOrderStatisticsMail(ctx, orderDate, "owner@cafekiosk.com")

		require.Error(t, err)
		var zErr zerror.ZError
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, apperr.StatisticsMailErrorCode, zErr.Code())
		assert.Empty(t, historyRepo.created)
	})
}
