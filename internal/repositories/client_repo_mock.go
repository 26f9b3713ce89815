package repositories

import (
	"fmt"
	"sync"

	"caisse/internal/models"

	"github.com/google/uuid"
)

// MockClientRepository is an in-memory implementation of ClientRepository.
// FailOn maps an operation name ("Create", "Update", ...) to an error to
// return instead of performing it, so tests can inject failures at a
// specific commit step.
type MockClientRepository struct {
	clients map[string]models.Client
	mu      sync.RWMutex
	FailOn  map[string]error
}

// NewMockClientRepository creates a new instance of MockClientRepository.
func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		clients: make(map[string]models.Client),
	}
}

func (r *MockClientRepository) failure(op string) error {
	if r.FailOn == nil {
		return nil
	}
	return r.FailOn[op]
}

// GetAll returns all clients.
func (r *MockClientRepository) GetAll() ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clientList := make([]models.Client, 0, len(r.clients))
	for _, c := range r.clients {
		clientList = append(clientList, c)
	}
	return clientList, nil
}

// GetByID returns a client by its ID.
func (r *MockClientRepository) GetByID(id string) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("client with ID %s not found", id)
	}
	return &client, nil
}

// Create adds a new client.
func (r *MockClientRepository) Create(client *models.Client) error {
	if err := r.failure("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	r.clients[client.ID] = *client
	return nil
}

// Update modifies an existing client.
func (r *MockClientRepository) Update(client *models.Client) error {
	if err := r.failure("Update"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.clients[client.ID]
	if !ok {
		return fmt.Errorf("client with ID %s not found for update", client.ID)
	}
	r.clients[client.ID] = *client
	return nil
}

// Delete removes a client by its ID.
func (r *MockClientRepository) Delete(id string) error {
	if err := r.failure("Delete"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.clients[id]
	if !ok {
		return fmt.Errorf("client with ID %s not found for deletion", id)
	}
	delete(r.clients, id)
	return nil
}

// Count returns the number of stored clients.
func (r *MockClientRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *MockClientRepository) snapshot() map[string]models.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]models.Client, len(r.clients))
	for id, c := range r.clients {
		snap[id] = c
	}
	return snap
}

func (r *MockClientRepository) restore(snap map[string]models.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = snap
}
