package publisher

import (
	"context"
	"time"

	"github.com/fjod/coffee-shop/internal/domain"
)

const (
	EventOrderPaid      = "order.paid"
	EventOrderCancelled = "order.cancelled"
)

// OrderEvent is emitted when a checkout reaches a terminal state.
type OrderEvent struct {
	Type       string                `json:"type"`
	OrderID    string                `json:"orderId"`
	OrderType  domain.OrderType      `json:"orderType"`
	Customer   domain.Customer       `json:"customer"`
	Items      []domain.CheckoutItem `json:"items"`
	Totals     domain.Totals         `json:"totals"`
	OccurredAt time.Time             `json:"occurredAt"`
}

// NewOrderEvent builds an event of the given type from an order snapshot.
func NewOrderEvent(eventType string, order domain.OrderSnapshot, at time.Time) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		OrderType:  order.OrderType,
		Customer:   order.Customer,
		Items:      order.Items,
		Totals:     order.Totals,
		OccurredAt: at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, OrderEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
