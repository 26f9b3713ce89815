package models

import "gorm.io/gorm"

// Order statuses. An order is OPEN when committed without a payment,
// PAID once a payment has been recorded, CANCELLED when voided.
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
)

// OrderLine is a single line of an order. Unit price and line total are
// frozen at commit time so later catalog price changes do not rewrite
// history.
type OrderLine struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	gorm.Model
}

// Order is the persisted order header. Total always equals the sum of its
// lines' totals at commit time.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ClientID   string      `json:"client_id" gorm:"index;type:varchar(36)"`
	UserID     string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Total      float64     `json:"total"`
	Status     string      `json:"status" gorm:"type:varchar(16);default:'OPEN'"`
	Lines      []OrderLine `json:"lines" gorm:"foreignKey:OrderID"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
