package checkout

import "sort"

// Line is a single cart entry. Name and unit price are snapshots taken when
// the product was added; the line total is always unit price times quantity.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Cart is the in-memory tally of a single checkout session, keyed by product
// id. It performs no stock checks; stock is enforced at commit time. A Cart
// is owned by exactly one wizard session and is never shared.
type Cart struct {
	lines map[string]*Line
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// AddLine adds quantity of a product to the cart. Adding a product that is
// already present increases its quantity instead of duplicating the line.
// Requests with quantity <= 0 are ignored.
func (c *Cart) AddLine(productID, name string, unitPrice float64, quantity int) {
	if quantity <= 0 {
		return
	}
	if line, ok := c.lines[productID]; ok {
		line.Quantity += quantity
		line.LineTotal = line.UnitPrice * float64(line.Quantity)
		return
	}
	c.lines[productID] = &Line{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		LineTotal: unitPrice * float64(quantity),
	}
}

// RemoveLine removes quantity of a product from the cart. When the remaining
// quantity reaches zero or below, the line is deleted entirely. Removing a
// product that is not in the cart is a no-op.
func (c *Cart) RemoveLine(productID string, quantity int) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	line.Quantity -= quantity
	if line.Quantity <= 0 {
		delete(c.lines, productID)
		return
	}
	line.LineTotal = line.UnitPrice * float64(line.Quantity)
}

// DeleteLine removes a product's line regardless of its quantity.
func (c *Cart) DeleteLine(productID string) {
	delete(c.lines, productID)
}

// Total returns the sum of all line totals, recomputed on every call so it
// can never drift from the lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.LineTotal
	}
	return total
}

// Lines returns a copy of the cart lines sorted by product id, so display
// and serialization are stable across calls.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// Line returns the line for a product id, if present.
func (c *Cart) Line(productID string) (Line, bool) {
	line, ok := c.lines[productID]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Len returns the number of distinct lines in the cart.
func (c *Cart) Len() int { return len(c.lines) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Clear empties the cart. Used on cancel and after a successful commit.
func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
}
