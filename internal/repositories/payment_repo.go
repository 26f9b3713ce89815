package repositories

import (
	"caisse/internal/models"
)

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	GetAll() ([]models.Payment, error)
	GetByOrderID(orderID string) ([]models.Payment, error)
	Create(payment *models.Payment) error
}
