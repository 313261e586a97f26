package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/storage/db"
)

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	CreateOrder(ctx context.Context, order model.Order) error
	// ListOrdersRegisteredBetween returns orders with the given status whose
	// registration time falls in the half-open interval [start, end). The
	// product lines are not loaded; callers aggregating revenue only need
	// the stored totals.
	ListOrdersRegisteredBetween(ctx context.Context, start, end time.Time, status model.OrderStatus) ([]model.Order, error)
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) CreateOrder(ctx context.Context, order model.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, status, total_price, registered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		order.ID,
		string(order.Status),
		order.TotalPrice,
		order.RegisteredAt,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if len(order.Products) == 0 {
		return nil
	}

	productIDs := make([]uuid.UUID, 0, len(order.Products))
	productNumbers := make([]string, 0, len(order.Products))
	productTypes := make([]string, 0, len(order.Products))
	names := make([]string, 0, len(order.Products))
	prices := make([]int64, 0, len(order.Products))
	for _, product := range order.Products {
		productIDs = append(productIDs, product.ID)
		productNumbers = append(productNumbers, product.ProductNumber)
		productTypes = append(productTypes, string(product.Type))
		names = append(names, product.Name)
		prices = append(prices, product.Price)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO order_products (order_id, product_id, product_number, product_type, name, price)
		SELECT @order_id,
			UNNEST(@product_ids::uuid[]),
			UNNEST(@product_numbers::text[]),
			UNNEST(@product_types::text[]),
			UNNEST(@names::text[]),
			UNNEST(@prices::bigint[])
	`, pgx.NamedArgs{
		"order_id":        order.ID,
		"product_ids":     productIDs,
		"product_numbers": productNumbers,
		"product_types":   productTypes,
		"names":           names,
		"prices":          prices,
	})
	if err != nil {
		return fmt.Errorf("insert order products: %w", err)
	}

	return nil
}

func (r orderRepository) ListOrdersRegisteredBetween(ctx context.Context, start, end time.Time, status model.OrderStatus) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, status, total_price, registered_at, created_at, updated_at
		FROM orders
		WHERE registered_at >= $1
		  AND registered_at < $2
		  AND status = $3
		ORDER BY registered_at
	`, start, end, string(status))
	if err != nil {
		return nil, fmt.Errorf("query orders by period: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(
			&order.ID,
			&order.Status,
			&order.TotalPrice,
			&order.RegisteredAt,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}
