package statemachine

import (
	"errors"

	"quickbite/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "restaurant", "driver", "customer", "admin"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Restaurant accepts the order
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: "restaurant"},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: "restaurant"},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "restaurant"},
	// Driver fulfillment chain
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: "driver"},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "driver"},
	{From: models.StatusReady, To: models.StatusPickedUp, Actor: "driver"},
	{From: models.StatusPickedUp, To: models.StatusOnWay, Actor: "driver"},
	{From: models.StatusOnWay, To: models.StatusDelivered, Actor: "driver"},
}

// nextStatus is the fixed "advance" chain the driver dashboard walks.
var nextStatus = map[models.OrderStatus]models.OrderStatus{
	models.StatusConfirmed: models.StatusPreparing,
	models.StatusPreparing: models.StatusReady,
	models.StatusReady:     models.StatusPickedUp,
	models.StatusPickedUp:  models.StatusOnWay,
	models.StatusOnWay:     models.StatusDelivered,
}

var allStatuses = map[models.OrderStatus]bool{
	models.StatusPending:   true,
	models.StatusConfirmed: true,
	models.StatusPreparing: true,
	models.StatusReady:     true,
	models.StatusPickedUp:  true,
	models.StatusOnWay:     true,
	models.StatusDelivered: true,
	models.StatusCancelled: true,
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// Known reports whether the status is part of the enumeration.
func Known(s models.OrderStatus) bool { return allStatuses[s] }

// IsTerminal reports whether no transitions leave the status.
func IsTerminal(s models.OrderStatus) bool {
	return s == models.StatusDelivered || s == models.StatusCancelled
}

// NextStatus returns the fixed next step of the fulfillment chain.
func NextStatus(s models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := nextStatus[s]
	return next, ok
}

// CanTransition checks if a given actor can move from one state to another.
// Cancellation is allowed from every non-terminal state regardless of actor.
func CanTransition(from, to models.OrderStatus, actor string) error {
	if to == models.StatusCancelled {
		if IsTerminal(from) {
			return errors.New("cannot cancel an order in terminal state " + string(from))
		}
		return nil
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	if !IsTerminal(status) && !seen[models.StatusCancelled] {
		nexts = append(nexts, models.StatusCancelled)
	}
	return nexts
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
