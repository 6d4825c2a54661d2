package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {StatusReturned},
		StatusCancelled:  {},
		StatusReturned:   {},
	}

	all := []OrderStatus{
		StatusPending, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusReturned,
	}

	for from, targets := range allowed {
		permitted := make(map[OrderStatus]bool, len(targets))
		for _, to := range targets {
			permitted[to] = true
		}
		for _, to := range all {
			assert.Equal(t, permitted[to], from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestOrderStatus_TerminalStatesHaveNoExits(t *testing.T) {
	assert.Empty(t, StatusCancelled.AllowedTransitions())
	assert.Empty(t, StatusReturned.AllowedTransitions())
}

func TestOrderStatus_NoSkippingAhead(t *testing.T) {
	// The lifecycle cannot jump over intermediate states.
	assert.False(t, StatusPending.CanTransitionTo(StatusShipped))
	assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusProcessing.CanTransitionTo(StatusDelivered))
	// Shipped orders are past the point of cancellation.
	assert.False(t, StatusShipped.CanTransitionTo(StatusCancelled))
	// No moving backwards.
	assert.False(t, StatusDelivered.CanTransitionTo(StatusProcessing))
	assert.False(t, StatusShipped.CanTransitionTo(StatusPending))
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusReturned.Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("archived").Valid())
}

func TestOrderStatus_RestoresStock(t *testing.T) {
	assert.True(t, StatusCancelled.RestoresStock())
	assert.True(t, StatusReturned.RestoresStock())
	assert.False(t, StatusPending.RestoresStock())
	assert.False(t, StatusDelivered.RestoresStock())
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 10.00, RoundCents(9.999))
	assert.Equal(t, 4.99, RoundCents(4.9949))
	assert.Equal(t, 0.1, RoundCents(0.1+0.2-0.2))
	assert.Equal(t, 5.00, RoundCents(33.33*15/100))
}
