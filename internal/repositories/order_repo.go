package repositories

import (
	"caisse/internal/models"
)

// OrderRepository defines the interface for order data access. Create
// persists the header together with its lines; ReplaceLines swaps the full
// line set of an existing order.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByStatus(status string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	UpdateStatus(id string, status string) error
	ReplaceLines(orderID string, lines []models.OrderLine) error
	GetLines(orderID string) ([]models.OrderLine, error)
}
