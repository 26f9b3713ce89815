package services

import (
	"encoding/json"
	"fmt"
	"log"

	"caisse/internal/models"
	"caisse/internal/repositories"
)

// OrderService handles listing and lifecycle of committed orders. Order
// creation itself goes through the CheckoutService.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	mqClient    EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, paymentRepo repositories.PaymentRepository, mqClient EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		mqClient:    mqClient,
	}
}

// GetAllOrders retrieves all orders, optionally filtered by status.
func (s *OrderService) GetAllOrders(status string) ([]models.Order, error) {
	if status == "" {
		return s.orderRepo.GetAll()
	}
	if !validOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	return s.orderRepo.GetByStatus(status)
}

// GetOrderByID retrieves a single order with its lines.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrderPayments retrieves the payments recorded against an order.
func (s *OrderService) GetOrderPayments(orderID string) ([]models.Payment, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByOrderID(orderID)
}

// UpdateOrderStatus moves an order through its lifecycle. Only OPEN orders
// can change status; stock is not restored on cancellation.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !validOrderStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusOpen && order.Status != status {
		return fmt.Errorf("order %s is %s and can no longer change status", id, order.Status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	s.publishStatusChanged(id, status)
	return nil
}

func (s *OrderService) publishStatusChanged(orderID, status string) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID": orderID,
		"status":  status,
	})
	if err != nil {
		log.Printf("Failed to marshal status event to JSON: %v", err)
		return
	}
	if err := s.mqClient.Publish("", "order.status_changed", body); err != nil {
		log.Printf("Warning: Failed to publish status change event for order %s: %v", orderID, err)
	}
}

func validOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusOpen, models.OrderStatusPaid, models.OrderStatusCancelled:
		return true
	}
	return false
}
