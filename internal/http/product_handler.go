package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cafekiosk/kiosk/internal/apperr"
	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/service"
)

type CreateProductRequest struct {
	Type          model.ProductType   `json:"type" validate:"required,enum"`
	SellingStatus model.SellingStatus `json:"selling_status" validate:"required,enum"`
	Name          string              `json:"name" validate:"required,max=255"`
	Price         int64               `json:"price" validate:"gte=0"`
	InitialStock  *int64              `json:"initial_stock" validate:"omitempty,gte=0"`
}

type ProductResponse struct {
	ID            uuid.UUID           `json:"id"`
	ProductNumber string              `json:"product_number"`
	Type          model.ProductType   `json:"type"`
	SellingStatus model.SellingStatus `json:"selling_status"`
	Name          string              `json:"name"`
	Price         int64               `json:"price"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (h *handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	if err := h.validator.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Type:          req.Type,
		SellingStatus: req.SellingStatus,
		Name:          req.Name,
		Price:         req.Price,
		InitialStock:  req.InitialStock,
	})
	if err != nil {
		h.respondError(w, r, fmt.Errorf("product service create product: %w", err))
		return
	}

	h.respondJSON(w, r, http.StatusCreated, productToResponse(product))
}

func (h *handler) ListSellingProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListSellingProducts(r.Context())
	if err != nil {
		h.respondError(w, r, fmt.Errorf("product service list selling products: %w", err))
		return
	}

	items := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, productToResponse(product))
	}

	h.respondJSON(w, r, http.StatusOK, items)
}

func productToResponse(product model.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		ProductNumber: product.ProductNumber,
		Type:          product.Type,
		SellingStatus: product.SellingStatus,
		Name:          product.Name,
		Price:         product.Price,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}
