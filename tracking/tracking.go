// Package tracking synthesizes a customer-facing order timeline from the
// order's current status. Steps are derived on every read, never stored.
package tracking

import (
	"time"

	"quickbite/models"
)

// Actor identifies who causes a tracking step.
type Actor string

const (
	ActorSystem     Actor = "system"
	ActorRestaurant Actor = "restaurant"
	ActorDriver     Actor = "driver"
)

// Step is one synthesized timeline entry.
type Step struct {
	Status    models.OrderStatus `json:"status"`
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	Actor     Actor              `json:"actor"`
}

type stepDef struct {
	status        models.OrderStatus
	message       string
	offsetMinutes int
	actor         Actor
}

// stepTable is the fixed ordered progression an order is presented as
// following. Cancelled is deliberately absent; a cancelled order has no
// timeline.
var stepTable = []stepDef{
	{models.StatusPending, "Order received", 0, ActorSystem},
	{models.StatusConfirmed, "Order confirmed by the restaurant", 5, ActorRestaurant},
	{models.StatusPreparing, "Your food is being prepared", 10, ActorRestaurant},
	{models.StatusReady, "Order is ready for pickup", 20, ActorRestaurant},
	{models.StatusPickedUp, "Driver picked up your order", 25, ActorDriver},
	{models.StatusOnWay, "Driver is on the way", 30, ActorDriver},
	{models.StatusDelivered, "Order delivered. Enjoy!", 45, ActorDriver},
}

// Timeline returns one step per table entry at or before the current status,
// inclusive. A status outside the table yields an empty timeline. The result
// is a pure function of (status, createdAt).
func Timeline(status models.OrderStatus, createdAt time.Time) []Step {
	pos := -1
	for i, def := range stepTable {
		if def.status == status {
			pos = i
			break
		}
	}
	if pos < 0 {
		return []Step{}
	}
	steps := make([]Step, 0, pos+1)
	for _, def := range stepTable[:pos+1] {
		steps = append(steps, Step{
			Status:    def.status,
			Message:   def.message,
			Timestamp: createdAt.Add(time.Duration(def.offsetMinutes) * time.Minute),
			Actor:     def.actor,
		})
	}
	return steps
}
