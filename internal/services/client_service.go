package services

import (
	"caisse/internal/models"
	"caisse/internal/repositories"
)

// ClientService handles business logic related to clients.
type ClientService struct {
	repo repositories.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(repo repositories.ClientRepository) *ClientService {
	return &ClientService{
		repo: repo,
	}
}

// GetAllClients retrieves all clients.
func (s *ClientService) GetAllClients() ([]models.Client, error) {
	return s.repo.GetAll()
}

// GetClientByID retrieves a single client by its ID.
func (s *ClientService) GetClientByID(id string) (*models.Client, error) {
	return s.repo.GetByID(id)
}

// CreateClient creates a new client.
func (s *ClientService) CreateClient(client *models.Client) error {
	return s.repo.Create(client)
}

// UpdateClient updates an existing client.
func (s *ClientService) UpdateClient(client *models.Client) error {
	return s.repo.Update(client)
}

// DeleteClient deletes a client by its ID.
func (s *ClientService) DeleteClient(id string) error {
	return s.repo.Delete(id)
}
