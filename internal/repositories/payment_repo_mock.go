package repositories

import (
	"fmt"
	"sync"
	"time"

	"caisse/internal/models"

	"github.com/google/uuid"
)

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
// FailOn maps an operation name to an error to return instead of performing
// it, so tests can inject failures at a specific commit step.
type MockPaymentRepository struct {
	payments map[string]models.Payment
	mu       sync.RWMutex
	FailOn   map[string]error
}

// NewMockPaymentRepository creates a new instance of MockPaymentRepository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]models.Payment),
	}
}

func (r *MockPaymentRepository) failure(op string) error {
	if r.FailOn == nil {
		return nil
	}
	return r.FailOn[op]
}

// GetAll returns all payments.
func (r *MockPaymentRepository) GetAll() ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paymentList := make([]models.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		paymentList = append(paymentList, p)
	}
	return paymentList, nil
}

// GetByOrderID returns the payments recorded against an order.
func (r *MockPaymentRepository) GetByOrderID(orderID string) ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paymentList := make([]models.Payment, 0)
	for _, p := range r.payments {
		if p.OrderID == orderID {
			paymentList = append(paymentList, p)
		}
	}
	return paymentList, nil
}

// Create records a new payment.
func (r *MockPaymentRepository) Create(payment *models.Payment) error {
	if err := r.failure("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.OrderID == "" {
		return fmt.Errorf("payment requires an order ID")
	}
	payment.CreatedAt = time.Now()
	r.payments[payment.ID] = *payment
	return nil
}

// Count returns the number of stored payments.
func (r *MockPaymentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.payments)
}

func (r *MockPaymentRepository) snapshot() map[string]models.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]models.Payment, len(r.payments))
	for id, p := range r.payments {
		snap[id] = p
	}
	return snap
}

func (r *MockPaymentRepository) restore(snap map[string]models.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = snap
}
