package checkout

import (
	"context"
	"testing"

	"github.com/fjod/coffee-shop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_BeginEmptyCart(t *testing.T) {
	fx := newFixture(t)
	s := NewSession(nil, fx.newFlow)

	f, err := s.Begin(context.Background())

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, f)
	assert.Nil(t, s.Current())
}

func TestSession_BeginOpensFlow(t *testing.T) {
	fx := newFixture(t)
	fx.addItems(t)
	s := NewSession(nil, fx.newFlow)

	f, err := s.Begin(context.Background())

	require.NoError(t, err)
	assert.Same(t, f, s.Current())
	assert.Equal(t, domain.FlowStateReviewingCart, f.State())
}

func TestSession_BeginReplacesAbandonedFlow(t *testing.T) {
	fx := newFixture(t)
	fx.addItems(t)
	ctx := context.Background()
	s := NewSession(nil, fx.newFlow)

	first, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Proceed(ctx))

	second, err := s.Begin(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, domain.FlowStateReviewingCart, second.State())
}

func TestSession_BeginWhilePaymentPending(t *testing.T) {
	fx := newFixture(t)
	fx.addItems(t)
	ctx := context.Background()
	s := NewSession(nil, fx.newFlow)

	f, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Proceed(ctx))
	_, err = f.SubmitContact(ctx, validContact)
	require.NoError(t, err)

	_, err = s.Begin(ctx)
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Same(t, f, s.Current())
}

func TestSession_BeginAfterTerminal(t *testing.T) {
	fx := newFixture(t)
	fx.addItems(t)
	ctx := context.Background()
	fx.toAwaitingPayment(t)
	require.NoError(t, fx.flow.CancelPayment(ctx))
	s := NewSession(fx.flow, fx.newFlow)

	f, err := s.Begin(ctx)

	require.NoError(t, err)
	assert.NotSame(t, fx.flow, f)
	assert.Equal(t, domain.FlowStateReviewingCart, f.State())
}
