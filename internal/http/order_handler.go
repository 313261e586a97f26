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

type CreateOrderRequest struct {
	ProductNumbers []string `json:"product_numbers" validate:"required,min=1,dive,required"`
}

type OrderResponse struct {
	ID           uuid.UUID         `json:"id"`
	Status       model.OrderStatus `json:"status"`
	TotalPrice   int64             `json:"total_price"`
	RegisteredAt time.Time         `json:"registered_at"`
	Products     []ProductResponse `json:"products"`
}

func (h *handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	if err := h.validator.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), service.CreateOrderParams{
		ProductNumbers: req.ProductNumbers,
		RegisteredAt:   time.Now(),
	})
	if err != nil {
		h.respondError(w, r, fmt.Errorf("order service create order: %w", err))
		return
	}

	h.respondJSON(w, r, http.StatusCreated, orderToResponse(order))
}

func orderToResponse(order model.Order) OrderResponse {
	products := make([]ProductResponse, 0, len(order.Products))
	for _, product := range order.Products {
		products = append(products, productToResponse(product))
	}

	return OrderResponse{
		ID:           order.ID,
		Status:       order.Status,
		TotalPrice:   order.TotalPrice,
		RegisteredAt: order.RegisteredAt,
		Products:     products,
	}
}
