package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cafekiosk/kiosk/internal/apperr"
	"github.com/cafekiosk/kiosk/internal/event"
	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/repository"
	"github.com/cafekiosk/kiosk/internal/storage/db"
	"github.com/cafekiosk/kiosk/pkg/ptr"
)

type CreateOrderParams struct {
	// ProductNumbers may contain duplicates; each occurrence becomes one
	// order line.
	ProductNumbers []string
	RegisteredAt   time.Time
}

type OrderService interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error)
}

type orderService struct {
	db            db.DB
	productRepo   repository.ProductRepository
	stockRepo     repository.StockRepository
	orderRepo     repository.OrderRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewOrderService(
	db db.DB,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		db:            db,
		productRepo:   productRepo,
		stockRepo:     stockRepo,
		orderRepo:     orderRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

// CreateOrder resolves the requested product numbers, deducts stock for
// stock-tracked lines and persists the order, all in one transaction. Any
// insufficient stock aborts the whole operation: no order row, no deduction.
func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Order{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	var order model.Order

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		products, err := s.resolveProducts(ctx, db, params.ProductNumbers)
		if err != nil {
			return err
		}

		if err := s.deductStockQuantities(ctx, db, products); err != nil {
			return err
		}

		order = model.NewOrder(id, products, params.RegisteredAt)
		order.CreatedAt = now
		order.UpdatedAt = now

		if err := s.orderRepo.WithDB(db).CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		ev := event.OrderCreatedEvent{
			OrderID:        order.ID.String(),
			ProductNumbers: productNumbers(products),
			TotalPrice:     order.TotalPrice,
			RegisteredAt:   order.RegisteredAt,
		}
		evBytes, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:        event.TopicOrderCreated,
				Payload:      evBytes,
				PartitionKey: ptr.New(order.ID.String()),
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return order, nil
}

// resolveProducts expands the requested numbers into product snapshots, one
// per occurrence. The catalog is queried once per distinct number; numbers
// with no matching product are dropped from the result.
func (s *orderService) resolveProducts(ctx context.Context, db db.DB, requested []string) ([]model.Product, error) {
	distinct := dedupeProductNumbers(requested)

	products, err := s.productRepo.WithDB(db).ListProductsByNumbers(ctx, distinct)
	if err != nil {
		return nil, fmt.Errorf("product repository list products by numbers: %w", err)
	}

	productMap := make(map[string]model.Product, len(products))
	for _, product := range products {
		productMap[product.ProductNumber] = product
	}

	resolved := make([]model.Product, 0, len(requested))
	for _, number := range requested {
		if product, ok := productMap[number]; ok {
			resolved = append(resolved, product)
		}
	}

	return resolved, nil
}

// deductStockQuantities verifies every stock-tracked line against the ledger
// before touching any row, then deducts each product by its requested
// multiplicity. The rows were locked by the FOR UPDATE fetch, so the
// check-then-deduct sequence is atomic with respect to concurrent orders.
func (s *orderService) deductStockQuantities(ctx context.Context, db db.DB, products []model.Product) error {
	counts := make(map[string]int64)
	numbers := make([]string, 0)
	for _, product := range products {
		if !product.Type.IsStockTracked() {
			continue
		}
		if _, ok := counts[product.ProductNumber]; !ok {
			numbers = append(numbers, product.ProductNumber)
		}
		counts[product.ProductNumber]++
	}
	if len(numbers) == 0 {
		return nil
	}

	stocks, err := s.stockRepo.WithDB(db).ListStocksByNumbersForUpdate(ctx, numbers)
	if err != nil {
		return fmt.Errorf("stock repository list stocks by numbers: %w", err)
	}

	stockMap := make(map[string]model.Stock, len(stocks))
	for _, stock := range stocks {
		stockMap[stock.ProductNumber] = stock
	}

	// fail fast: no deduction happens unless every line can be satisfied
	for _, number := range numbers {
		stock, ok := stockMap[number]
		if !ok || stock.IsQuantityLessThan(counts[number]) {
			return apperr.InsufficientStockErr
		}
	}

	for _, number := range numbers {
		stock := stockMap[number]
		if err := stock.Deduct(counts[number]); err != nil {
			return apperr.InsufficientStockErr.WrapParent(err)
		}

		if err := s.stockRepo.WithDB(db).UpdateStockQuantity(ctx, number, stock.Quantity); err != nil {
			return fmt.Errorf("stock repository update stock quantity: %w", err)
		}
	}

	return nil
}

func dedupeProductNumbers(numbers []string) []string {
	seen := make(map[string]struct{}, len(numbers))
	distinct := make([]string, 0, len(numbers))
	for _, number := range numbers {
		if _, ok := seen[number]; ok {
			continue
		}
		seen[number] = struct{}{}
		distinct = append(distinct, number)
	}
	return distinct
}

func productNumbers(products []model.Product) []string {
	numbers := make([]string, 0, len(products))
	for _, product := range products {
		numbers = append(numbers, product.ProductNumber)
	}
	return numbers
}
