package checkout

import (
	"time"

	"github.com/fjod/coffee-shop/internal/domain"
)

// PaymentStatus is the display hint for the payment step. It never drives a
// transition.
type PaymentStatus string

const (
	PaymentStatusNone                 PaymentStatus = ""
	PaymentStatusProcessing           PaymentStatus = "processing"
	PaymentStatusAwaitingConfirmation PaymentStatus = "awaiting_confirmation"
	PaymentStatusPaid                 PaymentStatus = "paid"
	PaymentStatusCancelled            PaymentStatus = "cancelled"
)

func calcPaymentStatus(state domain.FlowState, since, now time.Time, delay time.Duration) PaymentStatus {
	switch state {
	case domain.FlowStateAwaitingPaymentConfirmation:
		if now.Sub(since) < delay {
			return PaymentStatusProcessing
		}
		return PaymentStatusAwaitingConfirmation
	case domain.FlowStatePaid:
		return PaymentStatusPaid
	case domain.FlowStateCancelled:
		return PaymentStatusCancelled
	default:
		return PaymentStatusNone
	}
}
