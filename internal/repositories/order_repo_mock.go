package repositories

import (
	"fmt"
	"sync"
	"time"

	"caisse/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// FailOn maps an operation name to an error to return instead of performing
// it, so tests can inject failures at a specific commit step.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
	FailOn map[string]error
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

func (r *MockOrderRepository) failure(op string) error {
	if r.FailOn == nil {
		return nil
	}
	return r.FailOn[op]
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, copyOrder(order))
	}
	return orderList, nil
}

// GetByStatus returns orders filtered by status.
func (r *MockOrderRepository) GetByStatus(status string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.Status == status {
			orderList = append(orderList, copyOrder(order))
		}
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	cp := copyOrder(order)
	return &cp, nil
}

// Create adds a new order with its lines.
func (r *MockOrderRepository) Create(order *models.Order) error {
	if err := r.failure("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Lines {
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = uuid.New().String()
		}
		order.Lines[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = copyOrder(*order)
	return nil
}

// Update updates the header fields of an existing order.
func (r *MockOrderRepository) Update(order *models.Order) error {
	if err := r.failure("Update"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("order with ID %s not found for update", order.ID)
	}
	stored.Total = order.Total
	stored.Status = order.Status
	stored.UpdatedAt = time.Now()
	r.orders[order.ID] = stored
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	if err := r.failure("UpdateStatus"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// ReplaceLines swaps the full line set of an existing order.
func (r *MockOrderRepository) ReplaceLines(orderID string, lines []models.OrderLine) error {
	if err := r.failure("ReplaceLines"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return fmt.Errorf("order with ID %s not found for line replacement", orderID)
	}
	order.Lines = make([]models.OrderLine, len(lines))
	for i, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.OrderID = orderID
		order.Lines[i] = line
	}
	r.orders[orderID] = order
	return nil
}

// GetLines returns all lines of an order.
func (r *MockOrderRepository) GetLines(orderID string) ([]models.OrderLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", orderID)
	}
	lines := make([]models.OrderLine, len(order.Lines))
	copy(lines, order.Lines)
	return lines, nil
}

// Count returns the number of stored orders.
func (r *MockOrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func copyOrder(order models.Order) models.Order {
	lines := make([]models.OrderLine, len(order.Lines))
	copy(lines, order.Lines)
	order.Lines = lines
	return order
}

func (r *MockOrderRepository) snapshot() map[string]models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]models.Order, len(r.orders))
	for id, order := range r.orders {
		snap[id] = copyOrder(order)
	}
	return snap
}

func (r *MockOrderRepository) restore(snap map[string]models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = snap
}
