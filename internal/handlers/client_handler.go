package handlers

import (
	"fmt"
	"log"
	"strings"

	"caisse/internal/models"
	"caisse/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles HTTP requests for clients.
type ClientHandler struct {
	service  *services.ClientService
	validate *validator.Validate
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the client routes with the Fiber app.
func (h *ClientHandler) RegisterRoutes(router fiber.Router) {
	clientRoutes := router.Group("/clients")
	clientRoutes.Get("/", h.HandleGetClients)
	clientRoutes.Get("/:id", h.HandleGetClientByID)
	clientRoutes.Post("/", h.HandleCreateClient)
	clientRoutes.Put("/:id", h.HandleUpdateClient)
	clientRoutes.Delete("/:id", h.HandleDeleteClient)
}

// HandleGetClients retrieves all clients.
func (h *ClientHandler) HandleGetClients(c *fiber.Ctx) error {
	clients, err := h.service.GetAllClients()
	if err != nil {
		log.Printf("Error getting all clients: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve clients",
			"error":   err.Error(),
		})
	}
	return c.JSON(clients)
}

// HandleGetClientByID retrieves a single client by its ID.
func (h *ClientHandler) HandleGetClientByID(c *fiber.Ctx) error {
	clientID := c.Params("id")
	client, err := h.service.GetClientByID(clientID)
	if err != nil {
		log.Printf("Error getting client by ID %s: %v", clientID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Client with ID %s not found", clientID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve client",
			"error":   err.Error(),
		})
	}
	return c.JSON(client)
}

// HandleCreateClient creates a new client.
func (h *ClientHandler) HandleCreateClient(c *fiber.Ctx) error {
	var client models.Client
	if err := c.BodyParser(&client); err != nil {
		log.Printf("Error parsing client request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.CreateClient(&client); err != nil {
		log.Printf("Error creating client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create client",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// HandleUpdateClient updates an existing client.
func (h *ClientHandler) HandleUpdateClient(c *fiber.Ctx) error {
	clientID := c.Params("id")

	var client models.Client
	if err := c.BodyParser(&client); err != nil {
		log.Printf("Error parsing client request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	client.ID = clientID

	if err := h.validate.Struct(client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.UpdateClient(&client); err != nil {
		log.Printf("Error updating client %s: %v", clientID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Client with ID %s not found", clientID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update client",
			"error":   err.Error(),
		})
	}
	return c.JSON(client)
}

// HandleDeleteClient deletes a client by its ID.
func (h *ClientHandler) HandleDeleteClient(c *fiber.Ctx) error {
	clientID := c.Params("id")
	if err := h.service.DeleteClient(clientID); err != nil {
		log.Printf("Error deleting client %s: %v", clientID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Client with ID %s not found", clientID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete client",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Client %s deleted successfully", clientID),
	})
}
