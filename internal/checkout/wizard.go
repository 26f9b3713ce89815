package checkout

import (
	"fmt"
	"strings"
)

// Step is a wizard state.
type Step string

const (
	StepCustomer  Step = "COLLECTING_CUSTOMER"
	StepReview    Step = "REVIEWING_CART"
	StepPayment   Step = "CONFIRMING_PAYMENT"
	StepCancelled Step = "CANCELLED"
)

// Customer is the working copy of the client fields edited during checkout.
// It is written back to the store on commit: inserted for a new order,
// updated in place when editing an existing one.
type Customer struct {
	Name      string `json:"name"`
	GivenName string `json:"given_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

// StockChecker validates a cart against live stock levels. It runs when the
// wizard leaves the review step and again immediately before commit. When
// editingOrderID is non-empty the checker must treat that order's persisted
// line quantities as available: re-committing the order releases them before
// decrementing again.
type StockChecker interface {
	CheckStocks(cart *Cart, editingOrderID string) error
}

// Wizard drives a checkout session through its ordered steps: customer info,
// cart review, then an optional payment confirmation. It owns the session's
// cart and customer working copy exclusively.
type Wizard struct {
	step        Step
	cart        *Cart
	customer    Customer
	stocks      StockChecker
	withPayment bool
	editOrderID string
}

// Option configures a wizard.
type Option func(*Wizard)

// WithPayment enables the explicit payment confirmation step. Commits from
// such a wizard record a payment and mark the order PAID.
func WithPayment() Option {
	return func(w *Wizard) { w.withPayment = true }
}

// NewWizard creates a wizard for a new order with an empty cart, starting at
// the customer step.
func NewWizard(stocks StockChecker, opts ...Option) *Wizard {
	w := &Wizard{
		step:   StepCustomer,
		cart:   NewCart(),
		stocks: stocks,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewEditWizard creates a wizard preloaded from a persisted order. It starts
// directly at the review step since the stored data is assumed valid, but
// stock is still re-validated before a re-commit.
func NewEditWizard(stocks StockChecker, orderID string, customer Customer, cart *Cart, opts ...Option) *Wizard {
	w := NewWizard(stocks, opts...)
	w.step = StepReview
	w.customer = customer
	w.cart = cart
	w.editOrderID = orderID
	return w
}

// Step returns the current wizard step.
func (w *Wizard) Step() Step { return w.step }

// Cart returns the session cart.
func (w *Wizard) Cart() *Cart { return w.cart }

// Customer returns the customer working copy.
func (w *Wizard) Customer() Customer { return w.customer }

// SetCustomer replaces the customer working copy. Field values are kept as
// typed, trimmed on commit; no validation happens until a step transition.
func (w *Wizard) SetCustomer(c Customer) error {
	if w.Terminated() {
		return fmt.Errorf("checkout session is already %s", strings.ToLower(string(w.step)))
	}
	w.customer = c
	return nil
}

// EditingOrderID returns the order being edited, if the wizard was opened in
// edit mode.
func (w *Wizard) EditingOrderID() (string, bool) {
	return w.editOrderID, w.editOrderID != ""
}

// HasPaymentStep reports whether the wizard includes the payment step.
func (w *Wizard) HasPaymentStep() bool { return w.withPayment }

// Terminated reports whether the session has been cancelled.
func (w *Wizard) Terminated() bool { return w.step == StepCancelled }

// Next advances the wizard one step. The transition out of the customer step
// requires a non-empty customer name and a non-empty cart, each reported as
// its own ValidationError. The transition out of the review step requires the
// stock check to pass for every cart line; on failure the wizard stays where
// it is and nothing is persisted.
func (w *Wizard) Next() error {
	switch w.step {
	case StepCustomer:
		if strings.TrimSpace(w.customer.Name) == "" {
			return &ValidationError{Field: "name", Reason: "customer name is required"}
		}
		if w.cart.IsEmpty() {
			return &ValidationError{Field: "cart", Reason: "cart is empty, add products before continuing"}
		}
		w.step = StepReview
		return nil
	case StepReview:
		if !w.withPayment {
			return fmt.Errorf("review is the final step, confirm the order to commit it")
		}
		if err := w.checkStocks(); err != nil {
			return err
		}
		w.step = StepPayment
		return nil
	default:
		return fmt.Errorf("cannot advance from step %s", w.step)
	}
}

// Back returns to the previous step. Cart and customer fields are preserved.
func (w *Wizard) Back() error {
	switch w.step {
	case StepReview:
		w.step = StepCustomer
		return nil
	case StepPayment:
		w.step = StepReview
		return nil
	default:
		return fmt.Errorf("cannot go back from step %s", w.step)
	}
}

// Cancel terminates the session from any step, clearing the cart and
// discarding the customer field edits without persisting anything.
func (w *Wizard) Cancel() {
	w.cart.Clear()
	w.customer = Customer{}
	w.step = StepCancelled
}

// Confirmable reports whether the wizard is at the step from which the order
// can be committed: the payment step when present, the review step otherwise.
func (w *Wizard) Confirmable() bool {
	if w.withPayment {
		return w.step == StepPayment
	}
	return w.step == StepReview
}

// PreCommitCheck re-runs the guards immediately before commit: the wizard
// must be at its confirmable step and every cart line must still be covered
// by current stock. Stock may have been consumed between cart assembly and
// commit, so a cached result is never trusted here.
func (w *Wizard) PreCommitCheck() error {
	if !w.Confirmable() {
		return fmt.Errorf("cannot confirm from step %s", w.step)
	}
	return w.checkStocks()
}

// Reset returns the wizard to its initial empty state, ready for reuse.
// Called after a successful commit, or to restart a cancelled session.
func (w *Wizard) Reset() {
	w.cart.Clear()
	w.customer = Customer{}
	w.editOrderID = ""
	w.step = StepCustomer
}

func (w *Wizard) checkStocks() error {
	if w.stocks == nil {
		return nil
	}
	return w.stocks.CheckStocks(w.cart, w.editOrderID)
}
