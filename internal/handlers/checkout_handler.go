package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"caisse/internal/checkout"
	"caisse/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler exposes the checkout wizard over HTTP. Each session is a
// wizard owned by one caller; the handler only translates requests into
// wizard and service calls.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleStartSession)
	checkoutRoutes.Post("/edit/:orderId", h.HandleStartEditSession)
	checkoutRoutes.Get("/:id", h.HandleGetSession)
	checkoutRoutes.Put("/:id/customer", h.HandleSetCustomer)
	checkoutRoutes.Post("/:id/cart", h.HandleCartCommand)
	checkoutRoutes.Post("/:id/next", h.HandleNext)
	checkoutRoutes.Post("/:id/back", h.HandleBack)
	checkoutRoutes.Post("/:id/confirm", h.HandleConfirm)
	checkoutRoutes.Post("/:id/cancel", h.HandleCancel)
}

// startSessionRequest configures a new checkout session.
type startSessionRequest struct {
	WithPayment bool `json:"with_payment"`
}

// sessionResponse is the wizard state returned after every session call.
type sessionResponse struct {
	SessionID string            `json:"session_id"`
	Step      checkout.Step     `json:"step"`
	Customer  checkout.Customer `json:"customer"`
	Lines     []checkout.Line   `json:"lines"`
	Total     float64           `json:"total"`
	EditingID string            `json:"editing_order_id,omitempty"`
}

func sessionState(session *services.Session) sessionResponse {
	resp := sessionResponse{
		SessionID: session.ID,
		Step:      session.Wizard.Step(),
		Customer:  session.Wizard.Customer(),
		Lines:     session.Wizard.Cart().Lines(),
		Total:     session.Wizard.Cart().Total(),
	}
	if id, ok := session.Wizard.EditingOrderID(); ok {
		resp.EditingID = id
	}
	return resp
}

// HandleStartSession opens a new-order checkout session.
func (h *CheckoutHandler) HandleStartSession(c *fiber.Ctx) error {
	var req startSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	session := h.service.StartSession(req.WithPayment)
	return c.Status(fiber.StatusCreated).JSON(sessionState(session))
}

// HandleStartEditSession opens a session preloaded from a persisted order.
func (h *CheckoutHandler) HandleStartEditSession(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	var req startSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	session, err := h.service.StartEditSession(orderID, req.WithPayment)
	if err != nil {
		log.Printf("Error loading order %s for edit: %v", orderID, err)
		var integrityErr *checkout.IntegrityError
		if errors.As(err, &integrityErr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Order references a product that no longer exists",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load order for editing",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(sessionState(session))
}

// HandleGetSession returns the current wizard state.
func (h *CheckoutHandler) HandleGetSession(c *fiber.Ctx) error {
	session, resp := h.session(c)
	if session == nil {
		return resp
	}
	return c.JSON(sessionState(session))
}

// HandleSetCustomer replaces the session's customer working copy.
func (h *CheckoutHandler) HandleSetCustomer(c *fiber.Ctx) error {
	session, resp := h.session(c)
	if session == nil {
		return resp
	}

	var customer checkout.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := session.Wizard.SetCustomer(customer); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(sessionState(session))
}

// cartCommandRequest is a cart mutation: add, remove or clear.
type cartCommandRequest struct {
	Op        string `json:"op"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleCartCommand applies a cart mutation. Adds go through the catalog so
// the line snapshots the product's current name and price.
func (h *CheckoutHandler) HandleCartCommand(c *fiber.Ctx) error {
	session, resp := h.session(c)
	if session == nil {
		return resp
	}

	var req cartCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	var err error
	switch req.Op {
	case "add":
		err = h.service.AddProduct(session.Wizard, req.ProductID, req.Quantity)
	case "remove":
		err = session.Wizard.Cart().Apply(checkout.RemoveLineCommand{ProductID: req.ProductID, Quantity: req.Quantity})
	case "clear":
		err = session.Wizard.Cart().Apply(checkout.ClearCommand{})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown cart operation %q, expected add, remove or clear", req.Op),
		})
	}
	if err != nil {
		log.Printf("Error applying cart command %q: %v", req.Op, err)
		status := fiber.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Could not apply cart command",
			"error":   err.Error(),
		})
	}
	return c.JSON(sessionState(session))
}

// HandleNext advances the wizard one step.
func (h *CheckoutHandler) HandleNext(c *fiber.Ctx) error {
	session, resp := h.session(c)
	if session == nil {
		return resp
	}
	if err := session.Wizard.Next(); err != nil {
		return h.stepError(c, err)
	}
	return c.JSON(sessionState(session))
}

// HandleBack returns the wizard to the previous step.
func (h *CheckoutHandler) HandleBack(c *fiber.Ctx) error {
	session, resp := h.session(c)
	if session == nil {
		return resp
	}
	if err := session.Wizard.Back(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Could not go back",
			"error":   err.Error(),
		})
	}
	return c.JSON(sessionState(session))
}

// HandleConfirm commits the order. The operator is taken from the JWT
// claims put in the context by the auth middleware.
func (h *CheckoutHandler) HandleConfirm(c *fiber.Ctx) error {
	session, resp := h.session(c)
	if session == nil {
		return resp
	}

	operatorID, _ := c.Locals("user_id").(string)
	orderID, err := h.service.Confirm(session.Wizard, operatorID)
	if err != nil {
		log.Printf("Error confirming checkout session %s: %v", session.ID, err)
		return h.stepError(c, err)
	}

	h.service.EndSession(session.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Order committed successfully",
		"order_id": orderID,
	})
}

// HandleCancel terminates the session, discarding all its state.
func (h *CheckoutHandler) HandleCancel(c *fiber.Ctx) error {
	session, resp := h.session(c)
	if session == nil {
		return resp
	}
	session.Wizard.Cancel()
	h.service.EndSession(session.ID)
	return c.JSON(fiber.Map{
		"message": "Checkout session cancelled",
	})
}

func (h *CheckoutHandler) session(c *fiber.Ctx) (*services.Session, error) {
	sessionID := c.Params("id")
	session, err := h.service.Session(sessionID)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Checkout session %s not found", sessionID),
		})
	}
	return session, nil
}

// stepError maps the checkout error taxonomy onto HTTP statuses: guard
// failures are the caller's to fix, stock shortages are conflicts with the
// catalog, store failures are server errors.
func (h *CheckoutHandler) stepError(c *fiber.Ctx, err error) error {
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"field":   validationErr.Field,
			"error":   validationErr.Reason,
		})
	}

	var stockErr *checkout.StockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":    "Insufficient stock",
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
			"error":      stockErr.Error(),
		})
	}

	var persistenceErr *checkout.PersistenceError
	if errors.As(err, &persistenceErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Commit failed, nothing was persisted",
			"step":    string(persistenceErr.Step),
			"error":   persistenceErr.Error(),
		})
	}

	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"message": "Could not advance checkout",
		"error":   err.Error(),
	})
}
