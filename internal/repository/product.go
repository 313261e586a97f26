package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	ListProductsByNumbers(ctx context.Context, productNumbers []string) ([]model.Product, error)
	ListProductsBySellingStatuses(ctx context.Context, statuses []model.SellingStatus) ([]model.Product, error)
	// LatestProductNumberForUpdate returns the greatest product number and
	// locks its row until the surrounding transaction ends, so concurrent
	// registrations cannot both derive the same next number. Returns ""
	// when the catalog is empty.
	LatestProductNumberForUpdate(ctx context.Context) (string, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, product_number, type, selling_status, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		product.ID,
		product.ProductNumber,
		string(product.Type),
		string(product.SellingStatus),
		product.Name,
		product.Price,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r productRepository) ListProductsByNumbers(ctx context.Context, productNumbers []string) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_number, type, selling_status, name, price, created_at, updated_at
		FROM products
		WHERE product_number = ANY($1)
		ORDER BY product_number
	`, productNumbers)
	if err != nil {
		return nil, fmt.Errorf("query products by numbers: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r productRepository) ListProductsBySellingStatuses(ctx context.Context, statuses []model.SellingStatus) ([]model.Product, error) {
	statusStrs := make([]string, 0, len(statuses))
	for _, status := range statuses {
		statusStrs = append(statusStrs, string(status))
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, product_number, type, selling_status, name, price, created_at, updated_at
		FROM products
		WHERE selling_status = ANY($1)
		ORDER BY product_number
	`, statusStrs)
	if err != nil {
		return nil, fmt.Errorf("query products by selling statuses: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r productRepository) LatestProductNumberForUpdate(ctx context.Context) (string, error) {
	var productNumber string
	err := r.db.QueryRow(ctx, `
		SELECT product_number
		FROM products
		ORDER BY product_number DESC
		LIMIT 1
		FOR UPDATE
	`).Scan(&productNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest product number: %w", err)
	}

	return productNumber, nil
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	products := make([]model.Product, 0)
	for rows.Next() {
		var product model.Product
		if err := rows.Scan(
			&product.ID,
			&product.ProductNumber,
			&product.Type,
			&product.SellingStatus,
			&product.Name,
			&product.Price,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
