package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/fjod/coffee-shop/internal/domain"
)

// Session holds the checkout flow the storefront is currently driving.
type Session struct {
	mu      sync.Mutex
	current *Flow
	newFlow func() *Flow
}

// NewSession starts with current, which may be nil, and uses newFlow to
// build a flow for every new checkout.
func NewSession(current *Flow, newFlow func() *Flow) *Session {
	return &Session{current: current, newFlow: newFlow}
}

func (s *Session) Current() *Flow {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Begin opens a fresh flow, replacing a finished or abandoned one. A flow
// waiting for payment must be confirmed or cancelled first.
func (s *Session) Begin(ctx context.Context) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if state := s.current.State(); state == domain.FlowStateAwaitingPaymentConfirmation {
			return nil, fmt.Errorf("%w: payment is pending", ErrIllegalTransition)
		}
	}

	f := s.newFlow()
	if err := f.Open(ctx); err != nil {
		return nil, err
	}
	s.current = f
	return f, nil
}
