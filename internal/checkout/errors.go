package checkout

import "fmt"

// ValidationError reports a failed wizard guard: a required field is empty
// or the cart has no lines. It blocks the step transition without side
// effects.
type ValidationError struct {
	Field  string // "name", "cart"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// StockError reports a cart line whose requested quantity exceeds the
// product's current stock.
type StockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)",
		e.ProductID, e.Requested, e.Available)
}

// CommitStep identifies which write of the commit transaction failed.
type CommitStep string

const (
	CommitClient  CommitStep = "client"
	CommitOrder   CommitStep = "order"
	CommitLines   CommitStep = "lines"
	CommitStock   CommitStep = "stock"
	CommitPayment CommitStep = "payment"
)

// PersistenceError wraps a store failure during commit with the step at
// which it occurred. The whole commit is rolled back when one is returned.
type PersistenceError struct {
	Step CommitStep
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("commit failed at %s write: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IntegrityError reports an order line referencing a product that no longer
// resolves in the catalog. Edit-mode loading surfaces these instead of
// silently dropping the line.
type IntegrityError struct {
	OrderID   string
	ProductID string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("order %s references product %s which no longer exists in the catalog",
		e.OrderID, e.ProductID)
}
