package domain

import "time"

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// OrderSnapshot represents the cart frozen at contact-form submission, kept
// until payment is confirmed.
type OrderSnapshot struct {
	ID        string         `json:"id"`
	Items     []CheckoutItem `json:"items"`
	Customer  Customer       `json:"customer"`
	OrderType OrderType      `json:"orderType"`
	Totals    Totals         `json:"totals"`
	Timestamp time.Time      `json:"timestamp"`
}
