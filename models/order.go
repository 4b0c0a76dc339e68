package models

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of a delivery order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusOnWay     OrderStatus = "on_way"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;size:36"`
	OrderNumber     string      `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID      *uint       `json:"customer_id" gorm:"index"`
	CustomerName    string      `json:"customer_name" gorm:"not null"`
	CustomerPhone   string      `json:"customer_phone" gorm:"not null"`
	CustomerEmail   string      `json:"customer_email"`
	DeliveryAddress string      `json:"delivery_address" gorm:"not null"`
	Latitude        *float64    `json:"latitude"`
	Longitude       *float64    `json:"longitude"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Subtotal        float64     `json:"subtotal"`
	DeliveryFee     float64     `json:"delivery_fee"`
	Total           float64     `json:"total"`
	PaymentMethod   string      `json:"payment_method"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	DriverID        *uint       `json:"driver_id"`
	Driver          *User       `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	RestaurantID    uint        `json:"restaurant_id" gorm:"index"`
	Restaurant      Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	OrderID      string  `json:"order_id" gorm:"size:36;not null;index"`
	Name         string  `json:"name" gorm:"not null"`
	Quantity     int     `json:"quantity" gorm:"not null"`
	UnitPrice    float64 `json:"unit_price" gorm:"not null"` // snapshot price at time of order
	RestaurantID uint    `json:"restaurant_id"`              // originating restaurant
}

// NewOrderNumber generates the human-facing order code: millisecond timestamp
// plus a random suffix. Not unique by construction, but the collision window
// is a single millisecond.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%08X", time.Now().UnixMilli(), rand.Uint32())
}
