package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubStockChecker returns a canned error for every check.
type stubStockChecker struct {
	err        error
	calls      int
	lastEditID string
}

func (s *stubStockChecker) CheckStocks(cart *Cart, editingOrderID string) error {
	s.calls++
	s.lastEditID = editingOrderID
	return s.err
}

func TestWizard_NextRequiresCustomerName(t *testing.T) {
	w := NewWizard(nil)
	w.Cart().AddLine("p-1", "Widget", 10.00, 1)

	err := w.Next()

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, StepCustomer, w.Step())
}

func TestWizard_NextRequiresNonEmptyCart(t *testing.T) {
	w := NewWizard(nil)
	assert.NoError(t, w.SetCustomer(Customer{Name: "Dupont"}))

	err := w.Next()

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "cart", verr.Field)
	assert.Equal(t, StepCustomer, w.Step())
}

func TestWizard_WhitespaceNameRejected(t *testing.T) {
	w := NewWizard(nil)
	assert.NoError(t, w.SetCustomer(Customer{Name: "   "}))
	w.Cart().AddLine("p-1", "Widget", 10.00, 1)

	err := w.Next()

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
}

func TestWizard_ReviewIsFinalStepWithoutPayment(t *testing.T) {
	w := NewWizard(nil)
	assert.NoError(t, w.SetCustomer(Customer{Name: "Dupont"}))
	w.Cart().AddLine("p-1", "Widget", 10.00, 1)

	assert.NoError(t, w.Next())
	assert.Equal(t, StepReview, w.Step())
	assert.True(t, w.Confirmable())

	// No further step exists; confirming is the only way forward.
	assert.Error(t, w.Next())
	assert.Equal(t, StepReview, w.Step())
}

func TestWizard_PaymentStepTransitions(t *testing.T) {
	stocks := &stubStockChecker{}
	w := NewWizard(stocks, WithPayment())
	assert.NoError(t, w.SetCustomer(Customer{Name: "Dupont"}))
	w.Cart().AddLine("p-1", "Widget", 10.00, 1)

	assert.NoError(t, w.Next())
	assert.Equal(t, StepReview, w.Step())
	assert.False(t, w.Confirmable())

	assert.NoError(t, w.Next())
	assert.Equal(t, StepPayment, w.Step())
	assert.True(t, w.Confirmable())
	assert.Equal(t, 1, stocks.calls)
}

func TestWizard_StockFailureBlocksReviewExit(t *testing.T) {
	stocks := &stubStockChecker{err: &StockError{ProductID: "p-1", Requested: 5, Available: 2}}
	w := NewWizard(stocks, WithPayment())
	assert.NoError(t, w.SetCustomer(Customer{Name: "Dupont"}))
	w.Cart().AddLine("p-1", "Widget", 10.00, 5)
	assert.NoError(t, w.Next())

	err := w.Next()

	var serr *StockError
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, "p-1", serr.ProductID)
	assert.Equal(t, StepReview, w.Step())
	// Cart survives the failed transition so the operator can adjust it.
	assert.Equal(t, 1, w.Cart().Len())
}

func TestWizard_BackPreservesState(t *testing.T) {
	w := NewWizard(&stubStockChecker{}, WithPayment())
	assert.NoError(t, w.SetCustomer(Customer{Name: "Dupont", Phone: "0601020304"}))
	w.Cart().AddLine("p-1", "Widget", 10.00, 2)
	assert.NoError(t, w.Next())
	assert.NoError(t, w.Next())

	assert.NoError(t, w.Back())
	assert.Equal(t, StepReview, w.Step())
	assert.NoError(t, w.Back())
	assert.Equal(t, StepCustomer, w.Step())

	assert.Equal(t, "Dupont", w.Customer().Name)
	assert.Equal(t, "0601020304", w.Customer().Phone)
	line, ok := w.Cart().Line("p-1")
	assert.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestWizard_BackFromFirstStepFails(t *testing.T) {
	w := NewWizard(nil)
	assert.Error(t, w.Back())
}

func TestWizard_CancelClearsEverything(t *testing.T) {
	w := NewWizard(nil)
	assert.NoError(t, w.SetCustomer(Customer{Name: "Dupont"}))
	w.Cart().AddLine("p-1", "Widget", 10.00, 2)

	w.Cancel()

	assert.True(t, w.Terminated())
	assert.Equal(t, StepCancelled, w.Step())
	assert.True(t, w.Cart().IsEmpty())
	assert.Empty(t, w.Customer().Name)
	assert.Error(t, w.SetCustomer(Customer{Name: "Martin"}))
	assert.Error(t, w.Next())
	assert.False(t, w.Confirmable())
}

func TestWizard_EditModeStartsAtReview(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p-1", "Widget", 9.99, 3)
	stocks := &stubStockChecker{}
	w := NewEditWizard(stocks, "order-42", Customer{Name: "Dupont"}, cart)

	assert.Equal(t, StepReview, w.Step())
	orderID, editing := w.EditingOrderID()
	assert.True(t, editing)
	assert.Equal(t, "order-42", orderID)
	assert.True(t, w.Confirmable())

	// The stock check is told which order's allocation to credit back.
	assert.NoError(t, w.PreCommitCheck())
	assert.Equal(t, "order-42", stocks.lastEditID)

	// The operator can still step back to amend customer fields.
	assert.NoError(t, w.Back())
	assert.Equal(t, StepCustomer, w.Step())
	assert.NoError(t, w.Next())
	assert.Equal(t, StepReview, w.Step())
}

func TestWizard_PreCommitCheckRevalidatesStock(t *testing.T) {
	stocks := &stubStockChecker{}
	w := NewWizard(stocks)
	assert.NoError(t, w.SetCustomer(Customer{Name: "Dupont"}))
	w.Cart().AddLine("p-1", "Widget", 10.00, 1)
	assert.NoError(t, w.Next())

	assert.NoError(t, w.PreCommitCheck())
	assert.Equal(t, 1, stocks.calls)

	// Stock consumed by another till between review and confirm.
	stocks.err = &StockError{ProductID: "p-1", Requested: 1, Available: 0}
	err := w.PreCommitCheck()
	var serr *StockError
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, StepReview, w.Step())
}

func TestWizard_PreCommitCheckRejectsWrongStep(t *testing.T) {
	w := NewWizard(nil)
	assert.Error(t, w.PreCommitCheck())
}

func TestWizard_ResetReturnsToInitialState(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p-1", "Widget", 9.99, 1)
	w := NewEditWizard(nil, "order-42", Customer{Name: "Dupont"}, cart)

	w.Reset()

	assert.Equal(t, StepCustomer, w.Step())
	assert.True(t, w.Cart().IsEmpty())
	assert.Empty(t, w.Customer().Name)
	_, editing := w.EditingOrderID()
	assert.False(t, editing)
}
