package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cafekiosk/kiosk/internal/apperr"
	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/repository"
)

type OrderStatisticsService interface {
	// SendOrderStatisticsMail sums the payment-completed orders of the given
	// calendar day (UTC, half-open [D 00:00, D+1 00:00)) and mails the total
	// to the recipient. A gateway failure fails the whole operation.
	SendOrderStatisticsMail(ctx context.Context, orderDate time.Time, toEmail string) error
}

type orderStatisticsService struct {
	fromEmail string
	orderRepo repository.OrderRepository
	mailSvc   MailService
}

func NewOrderStatisticsService(
	fromEmail string,
	orderRepo repository.OrderRepository,
	mailSvc MailService,
) OrderStatisticsService {
	return &orderStatisticsService{
		fromEmail: fromEmail,
		orderRepo: orderRepo,
		mailSvc:   mailSvc,
	}
}

// SendOrderStatisticsMail runs outside any database transaction; the SMTP
// roundtrip must not hold a connection open.
func (s *orderStatisticsService) SendOrderStatisticsMail(ctx context.Context, orderDate time.Time, toEmail string) error {
	day := orderDate.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	orders, err := s.orderRepo.ListOrdersRegisteredBetween(ctx, start, end, model.OrderStatusPaymentCompleted)
	if err != nil {
		return fmt.Errorf("order repository list orders registered between: %w", err)
	}

	var totalAmount int64
	for _, order := range orders {
		totalAmount += order.TotalPrice
	}

	date := start.Format("2006-01-02")
	subject := fmt.Sprintf("[Order statistics] %s", date)
	content := fmt.Sprintf("Total revenue for %s is %d.", date, totalAmount)

	if err := s.mailSvc.SendMail(ctx, s.fromEmail, toEmail, subject, content); err != nil {
		return apperr.StatisticsMailErr.WrapParent(err)
	}

	return nil
}
