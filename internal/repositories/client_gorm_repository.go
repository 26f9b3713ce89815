package repositories

import (
	"fmt"

	"caisse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMClientRepository is a GORM implementation of ClientRepository.
type GORMClientRepository struct {
	db *gorm.DB
}

// NewGORMClientRepository creates a new instance of GORMClientRepository.
func NewGORMClientRepository(db *gorm.DB) *GORMClientRepository {
	return &GORMClientRepository{
		db: db,
	}
}

// GetAll retrieves all clients from the database.
func (r *GORMClientRepository) GetAll() ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to get all clients: %w", err)
	}
	return clients, nil
}

// GetByID retrieves a single client by its ID from the database.
func (r *GORMClientRepository) GetByID(id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("client with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get client by ID %s: %w", id, err)
	}
	return &client, nil
}

// Create creates a new client in the database.
func (r *GORMClientRepository) Create(client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	if err := r.db.Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Update updates an existing client in the database.
func (r *GORMClientRepository) Update(client *models.Client) error {
	res := r.db.Save(client)
	if res.Error != nil {
		return fmt.Errorf("failed to update client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("client with ID %s not found for update", client.ID)
	}
	return nil
}

// Delete deletes a client by its ID from the database.
func (r *GORMClientRepository) Delete(id string) error {
	res := r.db.Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("client with ID %s not found for deletion", id)
	}
	return nil
}
