package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-club-api/models"
)

func TestKitchenHappyPath(t *testing.T) {
	require.NoError(t, CanTransition(models.StatusPending, models.StatusPreparing, "kitchen"))
	require.NoError(t, CanTransition(models.StatusPreparing, models.StatusReady, "kitchen"))
	require.NoError(t, CanTransition(models.StatusReady, models.StatusPickedUp, "kitchen"))
}

func TestCancellationEdges(t *testing.T) {
	for _, actor := range []string{"kitchen", "member", "admin"} {
		assert.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, actor), actor)
	}

	// Once in the oven, only the admin can pull an order.
	assert.NoError(t, CanTransition(models.StatusPreparing, models.StatusCancelled, "admin"))
	assert.Error(t, CanTransition(models.StatusPreparing, models.StatusCancelled, "member"))
	assert.Error(t, CanTransition(models.StatusPreparing, models.StatusCancelled, "kitchen"))
}

func TestInvalidTransitions(t *testing.T) {
	// No skipping steps.
	assert.Error(t, CanTransition(models.StatusPending, models.StatusReady, "kitchen"))
	assert.Error(t, CanTransition(models.StatusPending, models.StatusPickedUp, "kitchen"))

	// Terminal states stay terminal.
	assert.Error(t, CanTransition(models.StatusPickedUp, models.StatusPending, "kitchen"))
	assert.Error(t, CanTransition(models.StatusCancelled, models.StatusPending, "admin"))
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusPreparing, models.StatusCancelled}, nexts)

	assert.Empty(t, ValidTransitionsFrom(models.StatusPickedUp))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestErrorNamesValidNextStates(t *testing.T) {
	err := CanTransition(models.StatusReady, models.StatusPreparing, "kitchen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(models.StatusPickedUp))
}
