package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafekiosk/kiosk/internal/apperr"
	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/service"
	"github.com/cafekiosk/kiosk/pkg/validator"
)

type fakeProductService struct {
	createParams  service.CreateProductParams
	createProduct model.Product
	createErr     error

	sellingProducts []model.Product
	sellingErr      error
}

func (f *fakeProductService) CreateProduct(_ context.Context, params service.CreateProductParams) (model.Product, error) {
	f.createParams = params
	if f.createErr != nil {
		return model.Product{}, f.createErr
	}
	return f.createProduct, nil
}

func (f *fakeProductService) ListSellingProducts(_ context.Context) ([]model.Product, error) {
	if f.sellingErr != nil {
		return nil, f.sellingErr
	}
	return f.sellingProducts, nil
}

type fakeOrderService struct {
	createParams service.CreateOrderParams
	createOrder  model.Order
	createErr    error
}

func (f *fakeOrderService) CreateOrder(_ context.Context, params service.CreateOrderParams) (model.Order, error) {
	f.createParams = params
	if f.createErr != nil {
		return model.Order{}, f.createErr
	}
	return f.createOrder, nil
}

func newTestRouter(t *testing.T, productSvc service.ProductService, orderSvc service.OrderService) chi.Router {
	t.Helper()

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	h := newHandler(logger, v, productSvc, orderSvc)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/products", h.CreateProduct)
		r.Get("/products/selling", h.ListSellingProducts)
		r.Post("/orders", h.CreateOrder)
	})
	return r
}

func testProduct(number string, price int64) model.Product {
	return model.Product{
		ID:            uuid.New(),
		ProductNumber: number,
		Type:          model.ProductTypeHandmade,
		SellingStatus: model.SellingStatusSelling,
		Name:          "Americano",
		Price:         price,
	}
}

func TestCreateProductHandler(t *testing.T) {
	t.Run("Should create product successfully", func(t *testing.T) {
		productSvc := &fakeProductService{
			createProduct: testProduct("001", 4000),
		}
		r := newTestRouter(t, productSvc, &fakeOrderService{})

		body := `{"type":"HANDMADE","selling_status":"SELLING","name":"Americano","price":4000}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusCreated, resp.Code)

		var got ProductResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, "001", got.ProductNumber)
		assert.Equal(t, int64(4000), got.Price)

		assert.Equal(t, model.ProductTypeHandmade, productSvc.createParams.Type)
		assert.Equal(t, "Americano", productSvc.createParams.Name)
	})

	t.Run("Should pass initial stock through", func(t *testing.T) {
		productSvc := &fakeProductService{
			createProduct: testProduct("001", 4000),
		}
		r := newTestRouter(t, productSvc, &fakeOrderService{})

		body := `{"type":"BOTTLE","selling_status":"SELLING","name":"Juice","price":3000,"initial_stock":10}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusCreated, resp.Code)
		require.NotNil(t, productSvc.createParams.InitialStock)
		assert.Equal(t, int64(10), *productSvc.createParams.InitialStock)
	})

	t.Run("Should reject unknown product type", func(t *testing.T) {
		r := newTestRouter(t, &fakeProductService{}, &fakeOrderService{})

		body := `{"type":"FROZEN","selling_status":"SELLING","name":"Americano","price":4000}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "validationError")
	})

	t.Run("Should reject negative price", func(t *testing.T) {
		r := newTestRouter(t, &fakeProductService{}, &fakeOrderService{})

		body := `{"type":"HANDMADE","selling_status":"SELLING","name":"Americano","price":-1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Should reject malformed json", func(t *testing.T) {
		r := newTestRouter(t, &fakeProductService{}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(`{"type":`))
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestListSellingProductsHandler(t *testing.T) {
	t.Run("Should list selling products", func(t *testing.T) {
		productSvc := &fakeProductService{
			sellingProducts: []model.Product{
				testProduct("001", 4000),
				testProduct("002", 4500),
			},
		}
		r := newTestRouter(t, productSvc, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/selling", nil)
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)

		var got []ProductResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "001", got[0].ProductNumber)
		assert.Equal(t, "002", got[1].ProductNumber)
	})

	t.Run("Should return empty array when nothing is selling", func(t *testing.T) {
		r := newTestRouter(t, &fakeProductService{}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/selling", nil)
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, "[]", resp.Body.String())
	})
}

func TestCreateOrderHandler(t *testing.T) {
	t.Run("Should create order successfully", func(t *testing.T) {
		registeredAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
		orderSvc := &fakeOrderService{
			createOrder: model.Order{
				ID:           uuid.New(),
				Status:       model.OrderStatusInit,
				TotalPrice:   8500,
				RegisteredAt: registeredAt,
				Products: []model.Product{
					testProduct("001", 4000),
					testProduct("002", 4500),
				},
			},
		}
		r := newTestRouter(t, &fakeProductService{}, orderSvc)

		body := `{"product_numbers":["001","002"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusCreated, resp.Code)

		var got OrderResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, model.OrderStatusInit, got.Status)
		assert.Equal(t, int64(8500), got.TotalPrice)
		assert.Len(t, got.Products, 2)

		assert.Equal(t, []string{"001", "002"}, orderSvc.createParams.ProductNumbers)
		assert.False(t, orderSvc.createParams.RegisteredAt.IsZero())
	})

	t.Run("Should reject empty product numbers", func(t *testing.T) {
		orderSvc := &fakeOrderService{}
		r := newTestRouter(t, &fakeProductService{}, orderSvc)

		body := `{"product_numbers":[]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Empty(t, orderSvc.createParams.ProductNumbers)
	})

	t.Run("Should map insufficient stock to bad request", func(t *testing.T) {
		orderSvc := &fakeOrderService{
			createErr: apperr.InsufficientStockErr,
		}
		r := newTestRouter(t, &fakeProductService{}, orderSvc)

		body := `{"product_numbers":["001"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "INSUFFICIENT_STOCK")
	})
}
