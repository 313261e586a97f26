package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafekiosk/kiosk/internal/model"
)

func TestStockDeduct(t *testing.T) {
	t.Run("Should deduct the requested quantity", func(t *testing.T) {
		stock := model.Stock{ProductNumber: "001", Quantity: 2}

		err := stock.Deduct(1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), stock.Quantity)
	})

	t.Run("Should allow deducting down to zero", func(t *testing.T) {
		stock := model.Stock{ProductNumber: "001", Quantity: 2}

		err := stock.Deduct(2)

		require.NoError(t, err)
		assert.Equal(t, int64(0), stock.Quantity)
	})

	t.Run("Should reject deducting more than available", func(t *testing.T) {
		stock := model.Stock{ProductNumber: "001", Quantity: 1}

		err := stock.Deduct(2)

		require.Error(t, err)
		assert.Equal(t, int64(1), stock.Quantity)
	})
}

func TestStockIsQuantityLessThan(t *testing.T) {
	stock := model.Stock{ProductNumber: "001", Quantity: 2}

	assert.False(t, stock.IsQuantityLessThan(2))
	assert.True(t, stock.IsQuantityLessThan(3))
}
