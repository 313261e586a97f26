package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafekiosk/kiosk/internal/model"
)

func TestNewOrder(t *testing.T) {
	now := time.Now()

	t.Run("Should sum product prices into the total", func(t *testing.T) {
		products := []model.Product{
			testProduct("001", 4000),
			testProduct("002", 6000),
		}

		order := model.NewOrder(newOrderID(t), products, now)

		assert.Equal(t, int64(10000), order.TotalPrice)
	})

	t.Run("Should count duplicate lines once per occurrence", func(t *testing.T) {
		products := []model.Product{
			testProduct("001", 4000),
			testProduct("001", 4000),
			testProduct("002", 5000),
		}

		order := model.NewOrder(newOrderID(t), products, now)

		assert.Equal(t, int64(13000), order.TotalPrice)
		assert.Len(t, order.Products, 3)
	})

	t.Run("Should start in INIT status", func(t *testing.T) {
		order := model.NewOrder(newOrderID(t), []model.Product{testProduct("001", 4000)}, now)

		assert.Equal(t, model.OrderStatusInit, order.Status)
	})

	t.Run("Should record the registration time", func(t *testing.T) {
		order := model.NewOrder(newOrderID(t), []model.Product{testProduct("001", 4000)}, now)

		assert.Equal(t, now, order.RegisteredAt)
	})
}

func newOrderID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id
}

func testProduct(number string, price int64) model.Product {
	return model.Product{
		ProductNumber: number,
		Type:          model.ProductTypeHandmade,
		SellingStatus: model.SellingStatusSelling,
		Name:          "americano",
		Price:         price,
	}
}
