package models

import "gorm.io/gorm"

// Operator roles. Cashiers run checkout sessions; managers additionally
// maintain the catalog and settle orders.
const (
	RoleCashier = "CASHIER"
	RoleManager = "MANAGER"
)

// User is a point-of-sale operator account. Orders reference the operator
// who committed them.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(16);default:'CASHIER'" validate:"omitempty,oneof=CASHIER MANAGER"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
