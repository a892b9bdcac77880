package statemachine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/koko-king/models"
)

func TestKitchenHappyPathPickup(t *testing.T) {
	steps := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusCompleted,
	}
	for i := 0; i < len(steps)-1; i++ {
		assert.NoError(t, CanTransition(steps[i], steps[i+1], models.RoleKitchen, models.DeliveryPickup))
	}
}

func TestDeliveryPathRequiresDriverSide(t *testing.T) {
	assert.NoError(t, CanTransition(models.StatusReady, models.StatusOutForDelivery, models.RoleDriver, models.DeliveryDelivery))
	assert.NoError(t, CanTransition(models.StatusOutForDelivery, models.StatusCompleted, models.RoleDriver, models.DeliveryDelivery))

	// kitchen cannot dispatch
	err := CanTransition(models.StatusReady, models.StatusOutForDelivery, models.RoleKitchen, models.DeliveryDelivery)
	var tErr *models.IllegalTransitionError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, models.RoleKitchen, tErr.Role)

	// delivery orders never complete straight from ready
	assert.Error(t, CanTransition(models.StatusReady, models.StatusCompleted, models.RoleManager, models.DeliveryDelivery))
	// pickup orders never go out for delivery
	assert.Error(t, CanTransition(models.StatusReady, models.StatusOutForDelivery, models.RoleAdmin, models.DeliveryPickup))
}

func TestIllegalEdges(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusReady},
		{models.StatusCompleted, models.StatusPending},
		{models.StatusCancelled, models.StatusConfirmed},
		{models.StatusCompleted, models.StatusCancelled},
		{models.StatusPreparing, models.StatusConfirmed},
	}
	for _, c := range cases {
		err := CanTransition(c.from, c.to, models.RoleAdmin, models.DeliveryPickup)
		var tErr *models.IllegalTransitionError
		assert.True(t, errors.As(err, &tErr), "%s -> %s", c.from, c.to)
	}
}

func TestDriverCannotCancelOrConfirm(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusPending, models.StatusConfirmed, models.RoleDriver, models.DeliveryDelivery))
	assert.Error(t, CanTransition(models.StatusOutForDelivery, models.StatusCancelled, models.RoleDriver, models.DeliveryDelivery))
}

func TestCancelFromEveryNonTerminal(t *testing.T) {
	for _, s := range models.AllStatuses {
		err := CanTransition(s, models.StatusCancelled, models.RoleKitchen, models.DeliveryDelivery)
		if s.IsTerminal() {
			assert.Error(t, err, s)
		} else {
			assert.NoError(t, err, s)
		}
	}
}

func TestValidNext(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		ValidNext(models.StatusReady, models.RoleKitchen, models.DeliveryPickup))
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusOutForDelivery},
		ValidNext(models.StatusReady, models.RoleDriver, models.DeliveryDelivery))
	assert.Empty(t, ValidNext(models.StatusCompleted, models.RoleAdmin, models.DeliveryPickup))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

// Nothing leaves a terminal state and every edge names at least one role.
func TestTableShape(t *testing.T) {
	for _, tr := range Transitions() {
		assert.False(t, tr.From.IsTerminal(), "edge leaves terminal %s", tr.From)
		assert.NotEmpty(t, tr.Roles)
	}
}
