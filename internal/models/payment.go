package models

import "gorm.io/gorm"

// Payment statuses.
const (
	PaymentStatusValid = "VALID"
	PaymentStatusVoid  = "VOID"
)

// Payment records a settlement against an order. Amount equals the order
// total at the moment of confirmation.
type Payment struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string  `json:"order_id" gorm:"index;type:varchar(36)"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status" gorm:"type:varchar(16);default:'VALID'"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
