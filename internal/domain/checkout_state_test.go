package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to FlowState
		want     bool
	}{
		{FlowStateIdle, FlowStateReviewingCart, true},
		{FlowStateReviewingCart, FlowStateFillingContactInfo, true},
		{FlowStateFillingContactInfo, FlowStateAwaitingPaymentConfirmation, true},
		{FlowStateAwaitingPaymentConfirmation, FlowStatePaid, true},
		{FlowStateAwaitingPaymentConfirmation, FlowStateCancelled, true},
		{FlowStateIdle, FlowStateFillingContactInfo, false},
		{FlowStateReviewingCart, FlowStatePaid, false},
		{FlowStatePaid, FlowStateIdle, false},
		{FlowStateCancelled, FlowStateReviewingCart, false},
		{FlowStatePaid, FlowStateCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionTo(tt.from, tt.to))
		})
	}
}

func TestFlowState_IsTerminal(t *testing.T) {
	assert.True(t, FlowStatePaid.IsTerminal())
	assert.True(t, FlowStateCancelled.IsTerminal())
	assert.False(t, FlowStateIdle.IsTerminal())
	assert.False(t, FlowStateAwaitingPaymentConfirmation.IsTerminal())
}

func TestParseOrderType(t *testing.T) {
	got, err := ParseOrderType("delivery")
	require.NoError(t, err)
	assert.Equal(t, OrderTypeDelivery, got)

	_, err = ParseOrderType("drone")
	assert.ErrorIs(t, err, ErrUnknownOrderType)
}
