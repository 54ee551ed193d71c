package handler

import (
	"net/http"
	"strconv"

	"github.com/efreitasn/currencyledger/internal/domain"
	"github.com/efreitasn/currencyledger/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// submitOrderRequest is the JSON request body for POST /orders.
type submitOrderRequest struct {
	Type       string `json:"type"`
	CurrencyID int64  `json:"currency_id"`
	Quantity   int64  `json:"quantity"`
}

// orderResponse is the JSON representation of a journaled order.
// Result is the decimal total or "Insufficient balance".
type orderResponse struct {
	OrderID      string `json:"order_id"`
	Type         string `json:"type"`
	CurrencyID   int64  `json:"currency_id"`
	Quantity     int64  `json:"quantity"`
	Status       string `json:"status"`
	Result       string `json:"result"`
	Total        *int64 `json:"total"` // null when rejected
	BalanceAfter int64  `json:"balance_after"`
	CreatedAt    string `json:"created_at"`
}

// orderListResponse is the JSON response for GET /orders.
type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// SubmitOrder handles POST /orders. A buy rejected for insufficient
// balance is still 201: the order was processed and journaled.
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	order, err := h.orderSvc.SubmitOrder(service.SubmitOrderRequest{
		Type:       req.Type,
		CurrencyID: req.CurrencyID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildOrderResponse(order))
}

// GetOrder handles GET /orders/{order_id}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.GetOrder(chi.URLParam(r, "order_id"))
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildOrderResponse(order))
}

// ListOrders handles GET /orders.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var currencyFilter *int64
	if s := r.URL.Query().Get("currency_id"); s != "" {
		id, err := parseInt64("currency_id", s)
		if err != nil {
			mapError(w, err)
			return
		}
		currencyFilter = &id
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		var err error
		page, err = strconv.Atoi(p)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "page must be a valid integer")
			return
		}
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "limit must be a valid integer")
			return
		}
	}

	orders, total, err := h.orderSvc.ListOrders(currencyFilter, page, limit)
	if err != nil {
		mapError(w, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = buildOrderResponse(o)
	}

	WriteJSON(w, http.StatusOK, orderListResponse{
		Orders: resp,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

func buildOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		OrderID:      o.OrderID,
		Type:         string(o.Type),
		CurrencyID:   o.CurrencyID,
		Quantity:     o.Quantity,
		Status:       string(o.Status),
		Result:       o.Result().String(),
		BalanceAfter: o.BalanceAfter,
		CreatedAt:    formatTime(o.CreatedAt),
	}
	if o.Status == domain.OrderStatusExecuted {
		total := o.Total
		resp.Total = &total
	}
	return resp
}
