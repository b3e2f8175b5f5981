package domain

type FlowState string

const (
	FlowStateIdle                        FlowState = "IDLE"
	FlowStateReviewingCart               FlowState = "REVIEWING_CART"
	FlowStateFillingContactInfo          FlowState = "FILLING_CONTACT_INFO"
	FlowStateAwaitingPaymentConfirmation FlowState = "AWAITING_PAYMENT_CONFIRMATION"
	FlowStatePaid                        FlowState = "PAID"
	FlowStateCancelled                   FlowState = "CANCELLED"
)

var transitions = map[FlowState][]FlowState{
	FlowStateIdle:                        {FlowStateReviewingCart},
	FlowStateReviewingCart:               {FlowStateFillingContactInfo},
	FlowStateFillingContactInfo:          {FlowStateAwaitingPaymentConfirmation},
	FlowStateAwaitingPaymentConfirmation: {FlowStatePaid, FlowStateCancelled},
}

func (s FlowState) IsTerminal() bool {
	return s == FlowStatePaid || s == FlowStateCancelled
}

// String representation (for logging)
func (s FlowState) String() string {
	return string(s)
}

func CanTransitionTo(from, to FlowState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
