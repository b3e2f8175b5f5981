package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fjod/coffee-shop/internal/domain"
	"github.com/fjod/coffee-shop/internal/publisher"
	"github.com/fjod/coffee-shop/internal/storage"
	"github.com/google/uuid"
)

// Cart is the part of the cart store the checkout reads and clears.
type Cart interface {
	ItemCount() int
	OrderType() domain.OrderType
	Totals() domain.Totals
	SnapshotForCheckout() []domain.CheckoutItem
	Clear(ctx context.Context) error
}

type ContactForm struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// Flow drives one checkout from cart review to a paid or cancelled order.
type Flow struct {
	cart         Cart
	store        storage.Store
	publisher    publisher.Publisher
	paymentDelay time.Duration
	now          func() time.Time

	mu            sync.Mutex
	state         domain.FlowState
	order         *domain.OrderSnapshot
	awaitingSince time.Time
}

func NewFlow(cart Cart, store storage.Store, pub publisher.Publisher, paymentDelay time.Duration) *Flow {
	if pub == nil {
		pub = publisher.NoopPublisher{}
	}
	return &Flow{
		cart:         cart,
		store:        store,
		publisher:    pub,
		paymentDelay: paymentDelay,
		now:          time.Now,
		state:        domain.FlowStateIdle,
	}
}

// Resume rebuilds a flow waiting for payment from the stored current order.
// A missing or undecodable record yields an idle flow.
func Resume(ctx context.Context, cart Cart, store storage.Store, pub publisher.Publisher, paymentDelay time.Duration) (*Flow, error) {
	f := NewFlow(cart, store, pub, paymentDelay)

	data, err := store.Get(ctx, storage.KeyCurrentOrder)
	if errors.Is(err, storage.ErrNotFound) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current order: %w", err)
	}

	var order domain.OrderSnapshot
	if errUnmarshal := json.Unmarshal(data, &order); errUnmarshal != nil {
		slog.WarnContext(ctx, "ignoring stored current order",
			"error", fmt.Errorf("%w: %v", storage.ErrCorrupt, errUnmarshal))
		return f, nil
	}
	if order.ID == "" {
		order.ID = newOrderID()
	}

	f.order = &order
	f.state = domain.FlowStateAwaitingPaymentConfirmation
	f.awaitingSince = order.Timestamp
	slog.InfoContext(ctx, "resumed pending order", "order_id", order.ID)
	return f, nil
}

// Open starts reviewing the cart. An empty cart keeps the flow idle.
func (f *Flow) Open(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkTransition(domain.FlowStateReviewingCart); err != nil {
		return err
	}
	if f.cart.ItemCount() == 0 {
		return ErrEmptyCart
	}
	f.setState(ctx, domain.FlowStateReviewingCart)
	return nil
}

func (f *Flow) Proceed(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkTransition(domain.FlowStateFillingContactInfo); err != nil {
		return err
	}
	if f.cart.ItemCount() == 0 {
		return ErrEmptyCart
	}
	f.setState(ctx, domain.FlowStateFillingContactInfo)
	return nil
}

// SubmitContact validates the form, freezes the cart into an order snapshot
// and stores it as the current order.
func (f *Flow) SubmitContact(ctx context.Context, form ContactForm) (domain.OrderSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkTransition(domain.FlowStateAwaitingPaymentConfirmation); err != nil {
		return domain.OrderSnapshot{}, err
	}

	orderType := f.cart.OrderType()
	if err := validateContact(form, orderType); err != nil {
		return domain.OrderSnapshot{}, err
	}
	if f.cart.ItemCount() == 0 {
		return domain.OrderSnapshot{}, ErrEmptyCart
	}

	order := domain.OrderSnapshot{
		ID:    newOrderID(),
		Items: f.cart.SnapshotForCheckout(),
		Customer: domain.Customer{
			Name:    form.CustomerName,
			Phone:   form.CustomerPhone,
			Address: form.Address,
			Notes:   form.Notes,
		},
		OrderType: orderType,
		Totals:    f.cart.Totals(),
		Timestamp: f.now().UTC(),
	}

	data, err := json.Marshal(order)
	if err != nil {
		return domain.OrderSnapshot{}, fmt.Errorf("failed to marshal order: %w", err)
	}
	if err := f.store.Set(ctx, storage.KeyCurrentOrder, data); err != nil {
		slog.ErrorContext(ctx, "persist current order", "error", err)
		return domain.OrderSnapshot{}, fmt.Errorf("failed to save current order: %w", err)
	}

	f.order = &order
	f.awaitingSince = f.now()
	f.setState(ctx, domain.FlowStateAwaitingPaymentConfirmation)
	return order, nil
}

// ConfirmPayment clears the cart and the stored order. On failure the flow
// keeps waiting for payment and the call can be repeated.
func (f *Flow) ConfirmPayment(ctx context.Context) (domain.OrderSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkTransition(domain.FlowStatePaid); err != nil {
		return domain.OrderSnapshot{}, err
	}

	if err := f.cart.Clear(ctx); err != nil {
		return domain.OrderSnapshot{}, fmt.Errorf("failed to clear cart: %w", err)
	}
	if err := f.store.Delete(ctx, storage.KeyCurrentOrder); err != nil {
		return domain.OrderSnapshot{}, fmt.Errorf("failed to delete current order: %w", err)
	}

	var order domain.OrderSnapshot
	if f.order != nil {
		order = *f.order
	}
	f.order = nil
	f.setState(ctx, domain.FlowStatePaid)
	f.publish(ctx, publisher.EventOrderPaid, order)
	return order, nil
}

// CancelPayment abandons the payment step. The cart and the stored order are
// left as they are.
func (f *Flow) CancelPayment(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkTransition(domain.FlowStateCancelled); err != nil {
		return err
	}
	f.setState(ctx, domain.FlowStateCancelled)
	if f.order != nil {
		f.publish(ctx, publisher.EventOrderCancelled, *f.order)
	}
	return nil
}

func (f *Flow) State() domain.FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Order returns the pending order snapshot, if any.
func (f *Flow) Order() (domain.OrderSnapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order == nil {
		return domain.OrderSnapshot{}, false
	}
	return *f.order, true
}

func (f *Flow) PaymentStatus() PaymentStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	return calcPaymentStatus(f.state, f.awaitingSince, f.now(), f.paymentDelay)
}

func (f *Flow) checkTransition(to domain.FlowState) error {
	if !domain.CanTransitionTo(f.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.state, to)
	}
	return nil
}

func (f *Flow) setState(ctx context.Context, to domain.FlowState) {
	slog.InfoContext(ctx, "checkout state changed", "from", f.state.String(), "to", to.String())
	f.state = to
}

// publish is best effort; the order outcome is already settled.
func (f *Flow) publish(ctx context.Context, eventType string, order domain.OrderSnapshot) {
	event := publisher.NewOrderEvent(eventType, order, f.now().UTC())
	if err := f.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "order event not published", "event", eventType, "order_id", order.ID, "error", err)
	}
}

func validateContact(form ContactForm, orderType domain.OrderType) error {
	if strings.TrimSpace(form.CustomerName) == "" {
		return &ValidationError{Field: "customerName", Message: "name is required"}
	}
	if strings.TrimSpace(form.CustomerPhone) == "" {
		return &ValidationError{Field: "customerPhone", Message: "phone is required"}
	}
	if orderType == domain.OrderTypeDelivery && strings.TrimSpace(form.Address) == "" {
		return &ValidationError{Field: "address", Message: "address is required for delivery"}
	}
	return nil
}

func newOrderID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
