package repositories

import (
	"fmt"

	"caisse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

// GetAll retrieves all payments from the database.
func (r *GORMPaymentRepository) GetAll() ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get all payments: %w", err)
	}
	return payments, nil
}

// GetByOrderID retrieves the payments recorded against an order.
func (r *GORMPaymentRepository) GetByOrderID(orderID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("order_id = ?", orderID).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get payments of order %s: %w", orderID, err)
	}
	return payments, nil
}

// Create records a new payment.
func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}
