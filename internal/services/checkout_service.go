package services

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"caisse/internal/checkout"
	"caisse/internal/models"
	"caisse/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher is the fire-and-forget completion signal raised after a
// successful commit. The RabbitMQ client satisfies it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
	PublishOrderCommitted(orderData map[string]interface{}) error
}

// Session is one live checkout wizard, owned by a single caller.
type Session struct {
	ID     string
	Wizard *checkout.Wizard
}

// CheckoutService owns the checkout sessions and drives the order workflow:
// it validates stock, commits carts atomically, and reconstructs wizard
// state from persisted orders for editing.
type CheckoutService struct {
	uow      repositories.UnitOfWork
	mqClient EventPublisher

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(uow repositories.UnitOfWork, mqClient EventPublisher) *CheckoutService {
	return &CheckoutService{
		uow:      uow,
		mqClient: mqClient,
		sessions: make(map[string]*Session),
	}
}

// StartSession opens a new-order checkout session with an empty cart.
func (s *CheckoutService) StartSession(withPayment bool) *Session {
	var opts []checkout.Option
	if withPayment {
		opts = append(opts, checkout.WithPayment())
	}
	session := &Session{
		ID:     uuid.New().String(),
		Wizard: checkout.NewWizard(s, opts...),
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

// StartEditSession opens a session pre-populated from a persisted order.
func (s *CheckoutService) StartEditSession(orderID string, withPayment bool) (*Session, error) {
	customer, cart, err := s.LoadForEdit(orderID)
	if err != nil {
		return nil, err
	}
	var opts []checkout.Option
	if withPayment {
		opts = append(opts, checkout.WithPayment())
	}
	session := &Session{
		ID:     uuid.New().String(),
		Wizard: checkout.NewEditWizard(s, orderID, customer, cart, opts...),
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session, nil
}

// Session returns a live session by its ID.
func (s *CheckoutService) Session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("checkout session %s not found", id)
	}
	return session, nil
}

// EndSession drops a session. Cancelled and completed sessions are removed
// by their handlers once the caller is done with them.
func (s *CheckoutService) EndSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// AddProduct looks a product up in the catalog and adds it to the session
// cart, snapshotting its current name and price. The cart itself never
// checks stock; that happens when the order is committed.
func (s *CheckoutService) AddProduct(w *checkout.Wizard, productID string, quantity int) error {
	product, err := s.uow.Products().GetByID(productID)
	if err != nil {
		return err
	}
	return w.Cart().Apply(checkout.AddLineCommand{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
}

// CheckStocks re-reads every cart line's product and fails with a StockError
// on the first line whose quantity exceeds the available stock. It reads
// live values on purpose: stock may have been consumed between cart assembly
// and commit. When an order is being edited, its persisted line quantities
// count as available: the edit commit restores them before decrementing the
// new lines, so the pre-check must not count that allocation twice.
func (s *CheckoutService) CheckStocks(cart *checkout.Cart, editingOrderID string) error {
	allocated := make(map[string]int)
	if editingOrderID != "" {
		lines, err := s.uow.Orders().GetLines(editingOrderID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			allocated[line.ProductID] += line.Quantity
		}
	}

	for _, line := range cart.Lines() {
		product, err := s.uow.Products().GetByID(line.ProductID)
		if err != nil {
			return err
		}
		available := product.Stock + allocated[line.ProductID]
		if line.Quantity > available {
			return &checkout.StockError{
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Available: available,
			}
		}
	}
	return nil
}

// Confirm commits the wizard's cart and customer data as one transaction.
// On success the wizard is reset for reuse, a completion event is published
// and the new (or edited) order's ID is returned. On failure the wizard
// stays at its current step with cart and customer intact, so the caller
// can fix the problem and retry, or cancel.
func (s *CheckoutService) Confirm(w *checkout.Wizard, operatorID string) (string, error) {
	if err := w.PreCommitCheck(); err != nil {
		return "", err
	}

	editOrderID, editing := w.EditingOrderID()
	cart := w.Cart()
	customer := w.Customer()

	var orderID string
	err := s.uow.WithinTx(func(store repositories.Store) error {
		var txErr error
		if editing {
			orderID, txErr = commitEdit(store, editOrderID, cart, customer, w.HasPaymentStep())
		} else {
			orderID, txErr = commitCreate(store, cart, customer, operatorID, w.HasPaymentStep())
		}
		return txErr
	})
	if err != nil {
		return "", err
	}

	total := cart.Total()
	w.Reset()
	s.publishCommitted(orderID, operatorID, total, editing)
	return orderID, nil
}

// commitCreate inserts client, order header, lines, stock decrements and the
// optional payment. Runs inside the commit transaction; any returned error
// rolls the whole thing back.
func commitCreate(store repositories.Store, cart *checkout.Cart, customer checkout.Customer, operatorID string, withPayment bool) (string, error) {
	client := clientFromCustomer(customer)
	if err := store.Clients().Create(client); err != nil {
		return "", &checkout.PersistenceError{Step: checkout.CommitClient, Err: err}
	}

	lines, total := orderLinesFromCart(cart)
	order := &models.Order{
		ClientID: client.ID,
		UserID:   operatorID,
		Total:    total,
		Status:   models.OrderStatusOpen,
	}
	if err := store.Orders().Create(order); err != nil {
		return "", &checkout.PersistenceError{Step: checkout.CommitOrder, Err: err}
	}

	if err := store.Orders().ReplaceLines(order.ID, lines); err != nil {
		return "", &checkout.PersistenceError{Step: checkout.CommitLines, Err: err}
	}

	for _, line := range lines {
		if err := store.Products().DecrementStock(line.ProductID, line.Quantity); err != nil {
			return "", &checkout.PersistenceError{Step: checkout.CommitStock, Err: err}
		}
	}

	if withPayment {
		payment := &models.Payment{
			OrderID: order.ID,
			Amount:  total,
			Status:  models.PaymentStatusValid,
		}
		if err := store.Payments().Create(payment); err != nil {
			return "", &checkout.PersistenceError{Step: checkout.CommitPayment, Err: err}
		}
		if err := store.Orders().UpdateStatus(order.ID, models.OrderStatusPaid); err != nil {
			return "", &checkout.PersistenceError{Step: checkout.CommitPayment, Err: err}
		}
	}

	return order.ID, nil
}

// commitEdit rewrites an existing order from the current cart. Stock is
// reconciled explicitly: the old lines' quantities are restored first, then
// the new lines are decremented with the guarded update, so the catalog
// never desynchronizes from the actual allocations. When the session ran
// through the payment step and the order is still open, a payment is
// recorded and the order settled; an already paid order is never charged
// twice.
func commitEdit(store repositories.Store, orderID string, cart *checkout.Cart, customer checkout.Customer, withPayment bool) (string, error) {
	order, err := store.Orders().GetByID(orderID)
	if err != nil {
		return "", &checkout.PersistenceError{Step: checkout.CommitOrder, Err: err}
	}

	client, err := store.Clients().GetByID(order.ClientID)
	if err != nil {
		return "", &checkout.PersistenceError{Step: checkout.CommitClient, Err: err}
	}
	applyCustomer(client, customer)
	if err := store.Clients().Update(client); err != nil {
		return "", &checkout.PersistenceError{Step: checkout.CommitClient, Err: err}
	}

	for _, line := range order.Lines {
		if err := store.Products().RestoreStock(line.ProductID, line.Quantity); err != nil {
			return "", &checkout.PersistenceError{Step: checkout.CommitStock, Err: err}
		}
	}

	lines, total := orderLinesFromCart(cart)
	order.Total = total
	if err := store.Orders().Update(order); err != nil {
		return "", &checkout.PersistenceError{Step: checkout.CommitOrder, Err: err}
	}

	if err := store.Orders().ReplaceLines(orderID, lines); err != nil {
		return "", &checkout.PersistenceError{Step: checkout.CommitLines, Err: err}
	}

	for _, line := range lines {
		if err := store.Products().DecrementStock(line.ProductID, line.Quantity); err != nil {
			return "", &checkout.PersistenceError{Step: checkout.CommitStock, Err: err}
		}
	}

	if withPayment && order.Status != models.OrderStatusPaid {
		payment := &models.Payment{
			OrderID: orderID,
			Amount:  total,
			Status:  models.PaymentStatusValid,
		}
		if err := store.Payments().Create(payment); err != nil {
			return "", &checkout.PersistenceError{Step: checkout.CommitPayment, Err: err}
		}
		if err := store.Orders().UpdateStatus(orderID, models.OrderStatusPaid); err != nil {
			return "", &checkout.PersistenceError{Step: checkout.CommitPayment, Err: err}
		}
	}

	return orderID, nil
}

// LoadForEdit rebuilds the customer working copy and cart from a persisted
// order, joining the lines with the catalog for current names and prices.
// A line whose product no longer resolves is surfaced as an IntegrityError
// rather than silently dropped; dropping it would corrupt the displayed
// total versus the persisted one.
func (s *CheckoutService) LoadForEdit(orderID string) (checkout.Customer, *checkout.Cart, error) {
	order, err := s.uow.Orders().GetByID(orderID)
	if err != nil {
		return checkout.Customer{}, nil, err
	}

	client, err := s.uow.Clients().GetByID(order.ClientID)
	if err != nil {
		return checkout.Customer{}, nil, err
	}

	cart := checkout.NewCart()
	for _, line := range order.Lines {
		product, err := s.uow.Products().GetByID(line.ProductID)
		if err != nil {
			return checkout.Customer{}, nil, &checkout.IntegrityError{OrderID: orderID, ProductID: line.ProductID}
		}
		cart.AddLine(product.ID, product.Name, product.Price, line.Quantity)
	}

	customer := checkout.Customer{
		Name:      client.Name,
		GivenName: client.GivenName,
		Phone:     client.Phone,
		Email:     client.Email,
		Address:   client.Address,
	}
	return customer, cart, nil
}

func (s *CheckoutService) publishCommitted(orderID, operatorID string, total float64, edited bool) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	message := map[string]interface{}{
		"orderID": orderID,
		"userID":  operatorID,
		"total":   total,
		"edited":  edited,
	}
	if err := s.mqClient.PublishOrderCommitted(message); err != nil {
		log.Printf("Warning: Failed to publish order committed event for order %s: %v", orderID, err)
	} else {
		log.Printf("Successfully published order committed event for order %s", orderID)
	}
}

func clientFromCustomer(customer checkout.Customer) *models.Client {
	return &models.Client{
		Name:      strings.TrimSpace(customer.Name),
		GivenName: strings.TrimSpace(customer.GivenName),
		Phone:     strings.TrimSpace(customer.Phone),
		Email:     strings.TrimSpace(customer.Email),
		Address:   strings.TrimSpace(customer.Address),
	}
}

func applyCustomer(client *models.Client, customer checkout.Customer) {
	client.Name = strings.TrimSpace(customer.Name)
	client.GivenName = strings.TrimSpace(customer.GivenName)
	client.Phone = strings.TrimSpace(customer.Phone)
	client.Email = strings.TrimSpace(customer.Email)
	client.Address = strings.TrimSpace(customer.Address)
}

// orderLinesFromCart freezes the cart into persistable lines and recomputes
// the order total from those lines, so the stored total always equals the
// sum of the stored line totals.
func orderLinesFromCart(cart *checkout.Cart) ([]models.OrderLine, float64) {
	cartLines := cart.Lines()
	lines := make([]models.OrderLine, 0, len(cartLines))
	var total float64
	for _, line := range cartLines {
		lines = append(lines, models.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
		total += line.LineTotal
	}
	return lines, total
}
