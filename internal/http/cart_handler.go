package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/coffee-shop/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartService interface {
	AddItem(ctx context.Context, catalogID int64, options domain.Options) (domain.CartLine, error)
	RemoveLine(ctx context.Context, lineID string) error
	SetQuantity(ctx context.Context, lineID string, quantity int) error
	SetOrderType(ctx context.Context, orderType domain.OrderType) error
	Clear(ctx context.Context) error
	View() domain.CartView
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
}

func NewCartHandler(cart CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	CatalogID int64          `json:"catalogId"`
	Options   domain.Options `json:"options"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

type OrderTypeRequestDTO struct {
	OrderType domain.OrderType `json:"orderType"`
}

type CartResponse struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"itemCount"`
	OrderType domain.OrderType  `json:"orderType"`
	Totals    domain.Totals     `json:"totals"`
}

type AddItemResponse struct {
	Line domain.CartLine `json:"line"`
	Cart CartResponse    `json:"cart"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CatalogID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "catalogId must be positive")
		return
	}

	line, err := h.cart.AddItem(ctx, req.CatalogID, req.Options)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, AddItemResponse{Line: line, Cart: h.snapshot()})
}

// PUT /api/v1/cart/items/{line_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	lineID := chi.URLParam(r, "line_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "quantity must be an integer")
		return
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "quantity must be zero or more")
		return
	}

	if err := h.cart.SetQuantity(ctx, lineID, *req.Quantity); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot())
}

// DELETE /api/v1/cart/items/{line_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.cart.RemoveLine(ctx, chi.URLParam(r, "line_id")); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.cart.Clear(ctx); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot())
}

// PUT /api/v1/cart/order-type
func (h *CartHandler) SetOrderType(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req OrderTypeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.cart.SetOrderType(ctx, req.OrderType); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) snapshot() CartResponse {
	view := h.cart.View()
	return CartResponse{
		Lines:     view.Lines,
		ItemCount: view.ItemCount,
		OrderType: view.OrderType,
		Totals:    view.Totals,
	}
}
