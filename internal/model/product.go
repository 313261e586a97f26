package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProductType categorizes a product. Bottled drinks and bakery goods are
// stock-tracked: their availability is limited by an explicit quantity ledger.
// Handmade drinks are prepared to order and always available.
type ProductType string

const (
	ProductTypeHandmade ProductType = "HANDMADE"
	ProductTypeBottle   ProductType = "BOTTLE"
	ProductTypeBakery   ProductType = "BAKERY"
)

// Validate implements the enum contract used by the request validator.
func (t ProductType) Validate() error {
	switch t {
	case ProductTypeHandmade, ProductTypeBottle, ProductTypeBakery:
		return nil
	default:
		return fmt.Errorf("unknown product type: %s", t)
	}
}

// IsStockTracked reports whether products of this type deduct from the stock
// ledger when ordered.
func (t ProductType) IsStockTracked() bool {
	return t == ProductTypeBottle || t == ProductTypeBakery
}

// SellingStatus describes whether a product can currently be ordered.
type SellingStatus string

const (
	SellingStatusSelling     SellingStatus = "SELLING"
	SellingStatusHold        SellingStatus = "HOLD"
	SellingStatusStopSelling SellingStatus = "STOP_SELLING"
)

// Validate implements the enum contract used by the request validator.
func (s SellingStatus) Validate() error {
	switch s {
	case SellingStatusSelling, SellingStatusHold, SellingStatusStopSelling:
		return nil
	default:
		return fmt.Errorf("unknown selling status: %s", s)
	}
}

// DisplaySellingStatuses are the statuses shown on the kiosk menu.
var DisplaySellingStatuses = []SellingStatus{
	SellingStatusSelling,
	SellingStatusHold,
}

// Product is a catalog entry. Products are immutable once registered; orders
// keep a snapshot of the lines they were created with.
type Product struct {
	ID            uuid.UUID     `json:"id"`
	ProductNumber string        `json:"product_number"`
	Type          ProductType   `json:"type"`
	SellingStatus SellingStatus `json:"selling_status"`
	Name          string        `json:"name"`
	Price         int64         `json:"price"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
