// Package notify persists best-effort notification records off the request
// path. Emission never blocks and never fails the operation that caused it:
// a full queue drops the notification, a write error is logged and ignored.
package notify

import (
	"fmt"
	"log"
	"sync"

	"quickbite/models"

	"gorm.io/gorm"
)

type Emitter struct {
	db    *gorm.DB
	queue chan models.Notification
	wg    sync.WaitGroup
}

// New starts the background worker draining the queue into the database.
func New(db *gorm.DB, buffer int) *Emitter {
	e := &Emitter{db: db, queue: make(chan models.Notification, buffer)}
	e.wg.Add(1)
	go e.run()
	return e
}

func (e *Emitter) run() {
	defer e.wg.Done()
	for n := range e.queue {
		if err := e.db.Create(&n).Error; err != nil {
			log.Printf("notify: dropping %s notification for order %s: %v", n.Type, n.OrderID, err)
		}
	}
}

// Emit enqueues a notification without blocking. When the queue is full the
// notification is dropped; order state always wins over notification delivery.
func (e *Emitter) Emit(n models.Notification) {
	select {
	case e.queue <- n:
	default:
		log.Printf("notify: queue full, dropping %s notification for order %s", n.Type, n.OrderID)
	}
}

// Close drains outstanding notifications and stops the worker.
func (e *Emitter) Close() {
	close(e.queue)
	e.wg.Wait()
}

// statusMessages is the fixed status→message table for customer updates.
var statusMessages = map[models.OrderStatus]string{
	models.StatusConfirmed: "Your order has been confirmed",
	models.StatusPreparing: "Your food is being prepared",
	models.StatusReady:     "Your order is ready for pickup",
	models.StatusPickedUp:  "A driver has picked up your order",
	models.StatusOnWay:     "Your order is on the way",
	models.StatusDelivered: "Your order has been delivered",
	models.StatusCancelled: "Your order has been cancelled",
}

// StatusMessage returns the customer-facing text for a status, with a
// generic fallback for anything outside the table.
func StatusMessage(s models.OrderStatus) string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return "Your order status has been updated"
}

// OrderCreated notifies the admin panel about a new order.
func (e *Emitter) OrderCreated(order *models.Order) {
	e.Emit(models.Notification{
		Type:          "order_created",
		Title:         "New order " + order.OrderNumber,
		Message:       fmt.Sprintf("%s placed an order for %.2f", order.CustomerName, order.Total),
		RecipientType: models.RecipientAdmin,
		OrderID:       order.ID,
	})
}

// StatusChanged notifies the customer about a status change.
func (e *Emitter) StatusChanged(order *models.Order, status models.OrderStatus) {
	e.Emit(models.Notification{
		Type:          "order_status",
		Title:         "Order " + order.OrderNumber + " update",
		Message:       StatusMessage(status),
		RecipientType: models.RecipientCustomer,
		RecipientID:   order.CustomerPhone,
		OrderID:       order.ID,
	})
}

// DriverAssigned notifies the customer that a driver took their order.
func (e *Emitter) DriverAssigned(order *models.Order, driver *models.User) {
	e.Emit(models.Notification{
		Type:          "driver_assigned",
		Title:         "Order " + order.OrderNumber + " update",
		Message:       driver.Name + " is handling your order",
		RecipientType: models.RecipientCustomer,
		RecipientID:   order.CustomerPhone,
		OrderID:       order.ID,
	})
}
