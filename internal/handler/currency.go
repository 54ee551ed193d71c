package handler

import (
	"net/http"

	"github.com/efreitasn/currencyledger/internal/service"
	"github.com/go-chi/chi/v5"
)

// CurrencyHandler handles HTTP requests for currency endpoints.
type CurrencyHandler struct {
	currencySvc *service.CurrencyService
	orderSvc    *service.OrderService
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencySvc *service.CurrencyService, orderSvc *service.OrderService) *CurrencyHandler {
	return &CurrencyHandler{
		currencySvc: currencySvc,
		orderSvc:    orderSvc,
	}
}

// registerCurrencyRequest is the JSON request body for POST /currencies.
type registerCurrencyRequest struct {
	ID       int64 `json:"id"`
	BuyRate  int64 `json:"buy_rate"`
	SellRate int64 `json:"sell_rate"`
}

// currencyResponse is the JSON representation of a currency.
type currencyResponse struct {
	ID        int64  `json:"id"`
	BuyRate   int64  `json:"buy_rate"`
	SellRate  int64  `json:"sell_rate"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"created_at"`
}

// currencyListResponse is the JSON response for GET /currencies.
type currencyListResponse struct {
	Currencies []currencyResponse `json:"currencies"`
	Total      int                `json:"total"`
}

// quoteResponse is the JSON response for GET /currencies/{currency_id}/quote.
type quoteResponse struct {
	Type         string `json:"type"`
	CurrencyID   int64  `json:"currency_id"`
	Quantity     int64  `json:"quantity"`
	Result       string `json:"result"`
	Total        *int64 `json:"total"` // null when the buy would be rejected
	BalanceAfter int64  `json:"balance_after"`
}

// Register handles POST /currencies.
func (h *CurrencyHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerCurrencyRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	v, err := h.currencySvc.Register(service.RegisterCurrencyRequest{
		ID:       req.ID,
		BuyRate:  req.BuyRate,
		SellRate: req.SellRate,
	})
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildCurrencyResponse(*v))
}

// List handles GET /currencies.
func (h *CurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	views := h.currencySvc.List()

	currencies := make([]currencyResponse, len(views))
	for i, v := range views {
		currencies[i] = buildCurrencyResponse(v)
	}

	WriteJSON(w, http.StatusOK, currencyListResponse{
		Currencies: currencies,
		Total:      len(currencies),
	})
}

// Get handles GET /currencies/{currency_id}.
func (h *CurrencyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64("currency_id", chi.URLParam(r, "currency_id"))
	if err != nil {
		mapError(w, err)
		return
	}

	v, err := h.currencySvc.Get(id)
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildCurrencyResponse(*v))
}

// Quote handles GET /currencies/{currency_id}/quote?type=Buy&quantity=N.
func (h *CurrencyHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64("currency_id", chi.URLParam(r, "currency_id"))
	if err != nil {
		mapError(w, err)
		return
	}
	quantity, err := parseInt64("quantity", r.URL.Query().Get("quantity"))
	if err != nil {
		mapError(w, err)
		return
	}

	q, err := h.orderSvc.Quote(service.SubmitOrderRequest{
		Type:       r.URL.Query().Get("type"),
		CurrencyID: id,
		Quantity:   quantity,
	})
	if err != nil {
		mapError(w, err)
		return
	}

	resp := quoteResponse{
		Type:         string(q.Type),
		CurrencyID:   q.CurrencyID,
		Quantity:     q.Quantity,
		Result:       q.Result.String(),
		BalanceAfter: q.BalanceAfter,
	}
	if !q.Result.Insufficient {
		total := q.Result.Total
		resp.Total = &total
	}

	WriteJSON(w, http.StatusOK, resp)
}

func buildCurrencyResponse(v service.CurrencyView) currencyResponse {
	return currencyResponse{
		ID:        v.ID,
		BuyRate:   v.BuyRate,
		SellRate:  v.SellRate,
		Balance:   v.Balance,
		CreatedAt: formatTime(v.CreatedAt),
	}
}
