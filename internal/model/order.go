package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order. New orders start in INIT.
type OrderStatus string

const (
	OrderStatusInit             OrderStatus = "INIT"
	OrderStatusCanceled         OrderStatus = "CANCELED"
	OrderStatusPaymentCompleted OrderStatus = "PAYMENT_COMPLETED"
	OrderStatusPaymentFailed    OrderStatus = "PAYMENT_FAILED"
	OrderStatusReceived         OrderStatus = "RECEIVED"
	OrderStatusCompleted        OrderStatus = "COMPLETED"
)

// Validate implements the enum contract used by the request validator.
func (s OrderStatus) Validate() error {
	switch s {
	case OrderStatusInit, OrderStatusCanceled, OrderStatusPaymentCompleted,
		OrderStatusPaymentFailed, OrderStatusReceived, OrderStatusCompleted:
		return nil
	default:
		return fmt.Errorf("unknown order status: %s", s)
	}
}

// Order is a persisted order with its product snapshots. Products holds one
// entry per requested occurrence, so ordering the same product twice yields
// two lines. TotalPrice is computed once at creation; later catalog changes
// never alter it.
type Order struct {
	ID           uuid.UUID   `json:"id"`
	Status       OrderStatus `json:"status"`
	TotalPrice   int64       `json:"total_price"`
	RegisteredAt time.Time   `json:"registered_at"`
	Products     []Product   `json:"products"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewOrder assembles an order in INIT state from resolved product snapshots,
// summing their prices into the total.
func NewOrder(id uuid.UUID, products []Product, registeredAt time.Time) Order {
	var total int64
	for _, product := range products {
		total += product.Price
	}

	return Order{
		ID:           id,
		Status:       OrderStatusInit,
		TotalPrice:   total,
		RegisteredAt: registeredAt,
		Products:     products,
	}
}
