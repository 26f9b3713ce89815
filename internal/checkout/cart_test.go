package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddLineMergesDuplicates(t *testing.T) {
	cart := NewCart()

	cart.AddLine("p-1", "Widget", 10.00, 2)
	cart.AddLine("p-1", "Widget", 10.00, 3)

	assert.Equal(t, 1, cart.Len())
	line, ok := cart.Line("p-1")
	assert.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
	assert.InDelta(t, 50.00, line.LineTotal, 0.001)
	assert.InDelta(t, 50.00, cart.Total(), 0.001)
}

func TestCart_AddLineIgnoresNonPositiveQuantity(t *testing.T) {
	cart := NewCart()

	cart.AddLine("p-1", "Widget", 10.00, 0)
	cart.AddLine("p-1", "Widget", 10.00, -4)

	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Total())
}

func TestCart_RemoveLineFloorsAtZero(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p-1", "Widget", 10.00, 3)

	// Removing more than present drops the line instead of going negative.
	cart.RemoveLine("p-1", 5)

	_, ok := cart.Line("p-1")
	assert.False(t, ok)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Total())
}

func TestCart_RemoveLinePartial(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p-1", "Widget", 4.50, 4)

	cart.RemoveLine("p-1", 1)

	line, ok := cart.Line("p-1")
	assert.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
	assert.InDelta(t, 13.50, line.LineTotal, 0.001)
}

func TestCart_RemoveLineUnknownProductIsNoOp(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p-1", "Widget", 10.00, 1)

	cart.RemoveLine("p-missing", 2)

	assert.Equal(t, 1, cart.Len())
	assert.InDelta(t, 10.00, cart.Total(), 0.001)
}

func TestCart_TotalRecomputedAfterAnySequence(t *testing.T) {
	cart := NewCart()

	cart.AddLine("p-1", "Widget", 9.99, 3)
	cart.AddLine("p-2", "Gadget", 4.50, 2)
	cart.RemoveLine("p-2", 1)
	cart.AddLine("p-1", "Widget", 9.99, 1)
	cart.DeleteLine("p-2")
	cart.AddLine("p-3", "Gizmo", 2.00, 5)

	// 4 * 9.99 + 5 * 2.00
	assert.InDelta(t, 49.96, cart.Total(), 0.001)

	var sum float64
	for _, line := range cart.Lines() {
		sum += line.LineTotal
	}
	assert.InDelta(t, sum, cart.Total(), 0.001)
}

func TestCart_LinesSortedByProductID(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p-3", "Gizmo", 1.00, 1)
	cart.AddLine("p-1", "Widget", 1.00, 1)
	cart.AddLine("p-2", "Gadget", 1.00, 1)

	lines := cart.Lines()
	assert.Len(t, lines, 3)
	assert.Equal(t, "p-1", lines[0].ProductID)
	assert.Equal(t, "p-2", lines[1].ProductID)
	assert.Equal(t, "p-3", lines[2].ProductID)
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p-1", "Widget", 10.00, 2)
	cart.AddLine("p-2", "Gadget", 4.50, 1)

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Total())
}

func TestCart_ApplyAddCommand(t *testing.T) {
	cart := NewCart()

	err := cart.Apply(AddLineCommand{ProductID: "p-1", Name: "Widget", UnitPrice: 10.00, Quantity: 2})
	assert.NoError(t, err)

	// Quantity zero defaults to one.
	err = cart.Apply(AddLineCommand{ProductID: "p-1", Name: "Widget", UnitPrice: 10.00})
	assert.NoError(t, err)

	line, _ := cart.Line("p-1")
	assert.Equal(t, 3, line.Quantity)
}

func TestCart_ApplyAddCommandRejectsBadInput(t *testing.T) {
	cart := NewCart()

	err := cart.Apply(AddLineCommand{Name: "Widget", UnitPrice: 10.00, Quantity: 1})
	assert.Error(t, err)

	err = cart.Apply(AddLineCommand{ProductID: "p-1", Name: "Widget", UnitPrice: 10.00, Quantity: -2})
	assert.Error(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCart_ApplyRemoveAndClearCommands(t *testing.T) {
	cart := NewCart()
	cart.AddLine("p-1", "Widget", 10.00, 2)
	cart.AddLine("p-2", "Gadget", 4.50, 1)

	err := cart.Apply(RemoveLineCommand{ProductID: "p-1", Quantity: 1})
	assert.NoError(t, err)
	line, _ := cart.Line("p-1")
	assert.Equal(t, 1, line.Quantity)

	err = cart.Apply(RemoveLineCommand{Quantity: 1})
	assert.Error(t, err)

	err = cart.Apply(ClearCommand{})
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
