package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger is the ordered list of line items on a draft invoice. Order is
// insertion order and is significant for display. A Ledger is not safe for
// concurrent use; drafts are single-session by design.
type Ledger struct {
	items  []LineItem
	nextID int
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// AddItem validates and appends a line item, returning the stored item with
// its assigned ID. IDs are monotonic per ledger so a later add can never
// collide with a previously removed item.
func (l *Ledger) AddItem(description string, quantity, unitPrice decimal.Decimal) (LineItem, error) {
	if strings.TrimSpace(description) == "" {
		return LineItem{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if quantity.Sign() <= 0 {
		return LineItem{}, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if unitPrice.Sign() < 0 {
		return LineItem{}, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}

	item := LineItem{
		ID:          l.nextID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
	l.nextID++
	l.items = append(l.items, item)
	return item, nil
}

// RemoveItem removes the item with the given ID. Removing an unknown ID is a
// no-op, not an error.
func (l *Ledger) RemoveItem(id int) {
	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Subtotal returns the sum of line totals, zero for an empty ledger.
func (l *Ledger) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range l.items {
		sum = sum.Add(item.Total())
	}
	return sum
}

// Items returns a copy of the current items in insertion order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Len() int {
	return len(l.items)
}
