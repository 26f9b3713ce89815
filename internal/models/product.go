package models

import "gorm.io/gorm"

// Product represents an item in the catalog. Stock is a mutable attribute
// decremented as a side effect of committing an order.
type Product struct {
	ID             string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string  `json:"name" validate:"required,min=2,max=100"`
	Description    string  `json:"description" validate:"omitempty,max=500"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	Stock          int     `json:"stock" validate:"gte=0"`
	AlertThreshold int     `json:"alert_threshold" gorm:"default:5" validate:"gte=0"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// LowOnStock reports whether the product has reached its alert threshold.
func (p *Product) LowOnStock() bool {
	return p.Stock <= p.AlertThreshold
}
