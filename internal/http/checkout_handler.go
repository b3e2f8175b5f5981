package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/coffee-shop/internal/checkout"
	"github.com/fjod/coffee-shop/internal/domain"
)

type CheckoutHandler struct {
	session *checkout.Session
	timeout time.Duration
}

func NewCheckoutHandler(session *checkout.Session, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		session: session,
		timeout: timeout,
	}
}

type CheckoutResponseDTO struct {
	State         domain.FlowState       `json:"state"`
	PaymentStatus checkout.PaymentStatus `json:"paymentStatus,omitempty"`
	Order         *domain.OrderSnapshot  `json:"order,omitempty"`
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, describe(h.session.Current()))
}

// POST /api/v1/checkout/open
func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	flow, err := h.session.Begin(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, describe(flow))
}

// POST /api/v1/checkout/proceed
func (h *CheckoutHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	h.withFlow(w, r, func(ctx context.Context, flow *checkout.Flow) error {
		return flow.Proceed(ctx)
	})
}

// POST /api/v1/checkout/contact
func (h *CheckoutHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var form checkout.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.withFlow(w, r, func(ctx context.Context, flow *checkout.Flow) error {
		_, err := flow.SubmitContact(ctx, form)
		return err
	})
}

// POST /api/v1/checkout/payment/confirm
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	flow := h.session.Current()
	if flow == nil {
		respondError(w, http.StatusConflict, "illegal_transition", "no checkout in progress")
		return
	}

	order, err := flow.ConfirmPayment(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := describe(flow)
	resp.Order = &order
	respondJSON(w, http.StatusOK, resp)
}

// POST /api/v1/checkout/payment/cancel
func (h *CheckoutHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	h.withFlow(w, r, func(ctx context.Context, flow *checkout.Flow) error {
		return flow.CancelPayment(ctx)
	})
}

func (h *CheckoutHandler) withFlow(w http.ResponseWriter, r *http.Request, fn func(context.Context, *checkout.Flow) error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	flow := h.session.Current()
	if flow == nil {
		respondError(w, http.StatusConflict, "illegal_transition", "no checkout in progress")
		return
	}
	if err := fn(ctx, flow); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, describe(flow))
}

func describe(flow *checkout.Flow) CheckoutResponseDTO {
	if flow == nil {
		return CheckoutResponseDTO{State: domain.FlowStateIdle}
	}
	resp := CheckoutResponseDTO{
		State:         flow.State(),
		PaymentStatus: flow.PaymentStatus(),
	}
	if order, ok := flow.Order(); ok {
		resp.Order = &order
	}
	return resp
}
