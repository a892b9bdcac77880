package statemachine

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/koko-king/models"
)

// Transition is one legal edge of the order lifecycle and who may take it.
// An empty Method means the edge applies to pickup and delivery alike.
type Transition struct {
	From   models.OrderStatus
	To     models.OrderStatus
	Roles  []models.Role
	Method models.DeliveryMethod
}

var (
	kitchenRoles = []models.Role{models.RoleKitchen, models.RoleManager, models.RoleAdmin}
	driverRoles  = []models.Role{models.RoleDriver, models.RoleManager, models.RoleAdmin}
)

// transitions is the authoritative lifecycle definition.
var transitions = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed, Roles: kitchenRoles},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Roles: kitchenRoles},
	{From: models.StatusPreparing, To: models.StatusReady, Roles: kitchenRoles},
	// pickup orders are handed over at the counter
	{From: models.StatusReady, To: models.StatusCompleted, Roles: kitchenRoles, Method: models.DeliveryPickup},
	{From: models.StatusReady, To: models.StatusOutForDelivery, Roles: driverRoles, Method: models.DeliveryDelivery},
	{From: models.StatusOutForDelivery, To: models.StatusCompleted, Roles: driverRoles, Method: models.DeliveryDelivery},

	{From: models.StatusPending, To: models.StatusCancelled, Roles: kitchenRoles},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Roles: kitchenRoles},
	{From: models.StatusPreparing, To: models.StatusCancelled, Roles: kitchenRoles},
	{From: models.StatusReady, To: models.StatusCancelled, Roles: kitchenRoles},
	{From: models.StatusOutForDelivery, To: models.StatusCancelled, Roles: kitchenRoles},
}

type edgeKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

var edgeMap = func() map[edgeKey][]Transition {
	m := make(map[edgeKey][]Transition)
	for _, t := range transitions {
		k := edgeKey{t.From, t.To}
		m[k] = append(m[k], t)
	}
	return m
}()

// Transitions returns a copy of the table.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

func (t Transition) allows(role models.Role, method models.DeliveryMethod) bool {
	if t.Method != "" && t.Method != method {
		return false
	}
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanTransition checks (from, to, role, method) against the table. The
// returned error is always *models.IllegalTransitionError.
func CanTransition(from, to models.OrderStatus, role models.Role, method models.DeliveryMethod) error {
	illegal := func(reason string) error {
		return &models.IllegalTransitionError{From: from, To: to, Role: role, Reason: reason}
	}

	if from.IsTerminal() {
		return illegal(fmt.Sprintf("order is already %s", from))
	}
	candidates, ok := edgeMap[edgeKey{from, to}]
	if !ok {
		return illegal("valid next states are: " + describe(ValidTransitionsFrom(from)))
	}

	roleSeen := false
	for _, t := range candidates {
		if t.allows(role, method) {
			return nil
		}
		for _, r := range t.Roles {
			if r == role {
				roleSeen = true
			}
		}
	}
	if roleSeen {
		return illegal(fmt.Sprintf("not allowed for %s orders", method))
	}
	return illegal(fmt.Sprintf("role %s may not perform this transition", role))
}

// ValidTransitionsFrom returns every graph successor of status, regardless of role.
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range transitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// ValidNext lists the targets role may move an order with method to.
func ValidNext(status models.OrderStatus, role models.Role, method models.DeliveryMethod) []models.OrderStatus {
	nexts := []models.OrderStatus{}
	for _, t := range transitions {
		if t.From == status && t.allows(role, method) {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

func describe(statuses []models.OrderStatus) string {
	if len(statuses) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
