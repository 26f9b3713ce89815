package repositories

import (
	"fmt"

	"caisse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their lines.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Lines").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByStatus retrieves orders filtered by status.
func (r *GORMOrderRepository) GetByStatus(status string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Lines").Where("status = ?", status).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders with status %s: %w", status, err)
	}
	return orders, nil
}

// GetByID retrieves a single order and its lines by its ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create persists the order header and its lines.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Lines {
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = uuid.New().String()
		}
		order.Lines[i].OrderID = order.ID
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update updates the header fields (total, status) of an existing order.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{"total": order.Total, "status": order.Status})
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for update", order.ID)
	}
	return nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	return nil
}

// ReplaceLines deletes the order's existing lines and inserts the given set.
func (r *GORMOrderRepository) ReplaceLines(orderID string, lines []models.OrderLine) error {
	if err := r.db.Delete(&models.OrderLine{}, "order_id = ?", orderID).Error; err != nil {
		return fmt.Errorf("failed to delete lines of order %s: %w", orderID, err)
	}
	for i := range lines {
		if lines[i].ID == "" {
			lines[i].ID = uuid.New().String()
		}
		lines[i].OrderID = orderID
	}
	if len(lines) == 0 {
		return nil
	}
	if err := r.db.Create(&lines).Error; err != nil {
		return fmt.Errorf("failed to insert lines of order %s: %w", orderID, err)
	}
	return nil
}

// GetLines retrieves all lines of an order.
func (r *GORMOrderRepository) GetLines(orderID string) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	if err := r.db.Where("order_id = ?", orderID).Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to get lines of order %s: %w", orderID, err)
	}
	return lines, nil
}
