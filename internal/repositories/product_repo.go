package repositories

import (
	"caisse/internal/models"
)

// ProductRepository defines the interface for catalog data access.
// DecrementStock only succeeds when enough stock remains, so the stock guard
// holds inside the commit transaction even if the pre-commit check raced
// with another sale.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetLowStock() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	DecrementStock(id string, quantity int) error
	RestoreStock(id string, quantity int) error
}
