package repositories

import (
	"fmt"
	"sync"

	"caisse/internal/checkout"
	"caisse/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// FailOn maps an operation name to an error to return instead of performing
// it, so tests can inject failures at a specific commit step.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
	FailOn   map[string]error
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

func (r *MockProductRepository) failure(op string) error {
	if r.FailOn == nil {
		return nil
	}
	return r.FailOn[op]
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetLowStock returns products at or below their alert threshold.
func (r *MockProductRepository) GetLowStock() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0)
	for _, p := range r.products {
		if p.LowOnStock() {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	if err := r.failure("GetByID"); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock subtracts quantity from a product's stock, failing with a
// StockError when not enough remains.
func (r *MockProductRepository) DecrementStock(id string, quantity int) error {
	if err := r.failure("DecrementStock"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found", id)
	}
	if product.Stock < quantity {
		return &checkout.StockError{ProductID: id, Requested: quantity, Available: product.Stock}
	}
	product.Stock -= quantity
	r.products[id] = product
	return nil
}

// RestoreStock adds quantity back to a product's stock.
func (r *MockProductRepository) RestoreStock(id string, quantity int) error {
	if err := r.failure("RestoreStock"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found for stock restore", id)
	}
	product.Stock += quantity
	r.products[id] = product
	return nil
}

func (r *MockProductRepository) snapshot() map[string]models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]models.Product, len(r.products))
	for id, p := range r.products {
		snap[id] = p
	}
	return snap
}

func (r *MockProductRepository) restore(snap map[string]models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = snap
}
