package repository

import (
	"context"
	"fmt"

	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/storage/db"
)

type StockRepository interface {
	WithDB(db db.DB) StockRepository
	CreateStock(ctx context.Context, stock model.Stock) error
	// ListStocksByNumbersForUpdate fetches stock rows and locks them until
	// the surrounding transaction ends. The check-then-deduct sequence in
	// the order workflow relies on this lock to serialize concurrent
	// deductions of the same product.
	ListStocksByNumbersForUpdate(ctx context.Context, productNumbers []string) ([]model.Stock, error)
	UpdateStockQuantity(ctx context.Context, productNumber string, quantity int64) error
}

type stockRepository struct {
	db db.DB
}

func NewStockRepository(db db.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r stockRepository) WithDB(db db.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r stockRepository) CreateStock(ctx context.Context, stock model.Stock) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stocks (product_number, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`,
		stock.ProductNumber,
		stock.Quantity,
		stock.CreatedAt,
		stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock: %w", err)
	}

	return nil
}

func (r stockRepository) ListStocksByNumbersForUpdate(ctx context.Context, productNumbers []string) ([]model.Stock, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_number, quantity, created_at, updated_at
		FROM stocks
		WHERE product_number = ANY($1)
		ORDER BY product_number
		FOR UPDATE
	`, productNumbers)
	if err != nil {
		return nil, fmt.Errorf("query stocks by numbers: %w", err)
	}
	defer rows.Close()

	stocks := make([]model.Stock, 0)
	for rows.Next() {
		var stock model.Stock
		if err := rows.Scan(
			&stock.ProductNumber,
			&stock.Quantity,
			&stock.CreatedAt,
			&stock.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks = append(stocks, stock)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stocks: %w", err)
	}

	return stocks, nil
}

func (r stockRepository) UpdateStockQuantity(ctx context.Context, productNumber string, quantity int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE stocks
		SET quantity = $2, updated_at = NOW()
		WHERE product_number = $1
	`, productNumber, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock %q not found", productNumber)
	}

	return nil
}
