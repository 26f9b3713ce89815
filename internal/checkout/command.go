package checkout

import "fmt"

// Command is a cart mutation. Routing all mutations through Apply keeps the
// cart's invariants enforced in one place instead of scattered across UI
// event handlers.
type Command interface {
	apply(c *Cart) error
}

// AddLineCommand adds quantity of a product, merging with an existing line.
type AddLineCommand struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

func (cmd AddLineCommand) apply(c *Cart) error {
	if cmd.ProductID == "" {
		return fmt.Errorf("add line: product id is required")
	}
	qty := cmd.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return fmt.Errorf("add line: quantity must be positive, got %d", cmd.Quantity)
	}
	c.AddLine(cmd.ProductID, cmd.Name, cmd.UnitPrice, qty)
	return nil
}

// RemoveLineCommand removes quantity of a product; the line is dropped when
// its quantity reaches zero or below.
type RemoveLineCommand struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (cmd RemoveLineCommand) apply(c *Cart) error {
	if cmd.ProductID == "" {
		return fmt.Errorf("remove line: product id is required")
	}
	qty := cmd.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return fmt.Errorf("remove line: quantity must be positive, got %d", cmd.Quantity)
	}
	c.RemoveLine(cmd.ProductID, qty)
	return nil
}

// ClearCommand empties the cart.
type ClearCommand struct{}

func (ClearCommand) apply(c *Cart) error {
	c.Clear()
	return nil
}

// Apply runs a command against the cart.
func (c *Cart) Apply(cmd Command) error {
	return cmd.apply(c)
}
