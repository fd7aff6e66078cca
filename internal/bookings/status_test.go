package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusProcessing.IsValid())
	assert.True(t, StatusApproved.IsValid())
	assert.True(t, StatusFailed.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("PENDING").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestProcessingTransitions(t *testing.T) {
	assert.True(t, StatusProcessing.CanTransitionTo(StatusApproved))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusFailed))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusProcessing.CanTransitionTo(StatusProcessing))
}

func TestTerminalStatusesNeverTransition(t *testing.T) {
	terminals := []Status{StatusApproved, StatusFailed, StatusCancelled}
	targets := []Status{StatusProcessing, StatusApproved, StatusFailed, StatusCancelled}

	for _, from := range terminals {
		for _, to := range targets {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s must be rejected", from, to)
		}
	}
}
