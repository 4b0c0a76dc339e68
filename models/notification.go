package models

import "time"

// RecipientType identifies who a notification is addressed to
type RecipientType string

const (
	RecipientAdmin    RecipientType = "admin"
	RecipientCustomer RecipientType = "customer"
)

type Notification struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Type          string        `json:"type" gorm:"not null"`
	Title         string        `json:"title" gorm:"not null"`
	Message       string        `json:"message"`
	RecipientType RecipientType `json:"recipient_type" gorm:"not null;index"`
	RecipientID   string        `json:"recipient_id"`
	OrderID       string        `json:"order_id" gorm:"size:36;index"`
	Read          bool          `json:"read" gorm:"default:false"`
	CreatedAt     time.Time     `json:"created_at"`
}
