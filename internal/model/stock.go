package model

import (
	"fmt"
	"time"
)

// Stock holds the available quantity for one stock-tracked product. The
// product number is a weak reference; a stock row does not own its product.
type Stock struct {
	ProductNumber string    `json:"product_number"`
	Quantity      int64     `json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsQuantityLessThan reports whether fewer than n units are available.
func (s Stock) IsQuantityLessThan(n int64) bool {
	return s.Quantity < n
}

// Deduct removes n units from the stock. The quantity never goes negative;
// deducting more than is available is an error.
func (s *Stock) Deduct(n int64) error {
	if s.IsQuantityLessThan(n) {
		return fmt.Errorf("deduct %d from stock %q with quantity %d", n, s.ProductNumber, s.Quantity)
	}
	s.Quantity -= n
	return nil
}
