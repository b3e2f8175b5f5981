package domain

import (
	"errors"
	"fmt"
)

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

var ErrUnknownOrderType = errors.New("unknown order type")

func ParseOrderType(s string) (OrderType, error) {
	switch t := OrderType(s); t {
	case OrderTypePickup, OrderTypeDelivery:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOrderType, s)
	}
}

func (t OrderType) String() string {
	return string(t)
}

// CartLine is one distinct item configuration in the cart. Name, price and
// image are copied from the catalog when the line is created and never
// refreshed afterwards.
type CartLine struct {
	ID        string  `json:"id"`
	CatalogID int64   `json:"catalogId"`
	Name      string  `json:"name"`
	UnitPrice Amount  `json:"unitPrice"`
	Image     string  `json:"image"`
	Options   Options `json:"options"`
	Quantity  int     `json:"quantity"`
}

func (l CartLine) Total() Amount {
	return l.UnitPrice * Amount(l.Quantity)
}

// Matches reports whether the line holds the given item configuration.
func (l CartLine) Matches(catalogID int64, options Options) bool {
	return l.CatalogID == catalogID && l.Options.Equal(options)
}

type Totals struct {
	Subtotal    Amount `json:"subtotal"`
	DeliveryFee Amount `json:"deliveryFee"`
	Total       Amount `json:"total"`
}

// CartView is a consistent read of the whole cart taken at one instant.
type CartView struct {
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"itemCount"`
	OrderType OrderType  `json:"orderType"`
	Totals    Totals     `json:"totals"`
}

// CheckoutItem is the display-ready view of a cart line.
type CheckoutItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    Amount `json:"price"`
	Options  string `json:"options"`
	Total    Amount `json:"total"`
}

func (l CartLine) CheckoutItem() CheckoutItem {
	return CheckoutItem{
		Name:     l.Name,
		Quantity: l.Quantity,
		Price:    l.UnitPrice,
		Options:  l.Options.Format(),
		Total:    l.Total(),
	}
}
