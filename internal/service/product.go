package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/cafekiosk/kiosk/internal/apperr"
	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/repository"
	"github.com/cafekiosk/kiosk/internal/storage/db"
)

// seedProductNumber is assigned to the first product of an empty catalog.
const seedProductNumber = "001"

type CreateProductParams struct {
	Type          model.ProductType
	SellingStatus model.SellingStatus
	Name          string
	Price         int64

	// InitialStock seeds a stock row for stock-tracked product types.
	// Ignored for types that are not stock-tracked.
	InitialStock *int64
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	ListSellingProducts(ctx context.Context) ([]model.Product, error)
}

type productService struct {
	db          db.DB
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	var product model.Product

	// The max-scan numbering and the insert run in one transaction; the row
	// lock taken by the scan keeps concurrent registrations from deriving
	// the same number.
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		latest, err := s.productRepo.WithDB(db).LatestProductNumberForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("product repository latest product number: %w", err)
		}

		productNumber, err := nextProductNumber(latest)
		if err != nil {
			return apperr.ProductNumberParseErr.WrapParent(err)
		}

		product = model.Product{
			ID:            id,
			ProductNumber: productNumber,
			Type:          params.Type,
			SellingStatus: params.SellingStatus,
			Name:          params.Name,
			Price:         params.Price,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := s.productRepo.WithDB(db).CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		if params.Type.IsStockTracked() && params.InitialStock != nil {
			stock := model.Stock{
				ProductNumber: productNumber,
				Quantity:      *params.InitialStock,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := s.stockRepo.WithDB(db).CreateStock(ctx, stock); err != nil {
				return fmt.Errorf("stock repository create stock: %w", err)
			}
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) ListSellingProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListProductsBySellingStatuses(ctx, model.DisplaySellingStatuses)
	if err != nil {
		return nil, fmt.Errorf("product repository list products by selling statuses: %w", err)
	}

	return products, nil
}

// nextProductNumber increments the latest product number, preserving its
// zero-padded width ("001" -> "002", "099" -> "100").
func nextProductNumber(latest string) (string, error) {
	if latest == "" {
		return seedProductNumber, nil
	}

	n, err := strconv.Atoi(latest)
	if err != nil {
		return "", fmt.Errorf("parse product number %q: %w", latest, err)
	}

	return fmt.Sprintf("%0*d", len(latest), n+1), nil
}
