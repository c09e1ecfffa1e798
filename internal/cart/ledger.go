// Package cart holds the client-side cart ledger: an ordered list of line
// items with totals that are recomputed from scratch after every mutation, so
// the derived values can never drift from the items they summarize.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shopsphere/storefront-client/internal/models"
)

// LineItem is one cart entry. The product snapshot is taken at add-time and
// stays frozen even if the catalog price changes afterwards.
type LineItem struct {
	ProductID string         `json:"product_id"`
	Product   models.Product `json:"product"`
	Quantity  int            `json:"quantity"`
}

// Ledger keeps at most one line item per product, in insertion order.
type Ledger struct {
	items       []LineItem
	totalItems  int
	totalAmount decimal.Decimal
}

func New() *Ledger {
	return &Ledger{totalAmount: decimal.Zero}
}

// Add merges the quantity into an existing line for the same product, or
// appends a new line. Quantities below one are ignored; the layer above is
// responsible for clamping user input before calling.
func (l *Ledger) Add(product models.Product, quantity int) {
	if quantity < 1 {
		return
	}

	for i := range l.items {
		if l.items[i].ProductID == product.ID {
			l.items[i].Quantity += quantity
			l.recompute()

			return
		}
	}

	l.items = append(l.items, LineItem{
		ProductID: product.ID,
		Product:   product,
		Quantity:  quantity,
	})
	l.recompute()
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op, not an error.
func (l *Ledger) Remove(productID string) {
	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.recompute()

			return
		}
	}
}

// SetQuantity replaces the line's quantity with the exact value. Zero or
// negative removes the line. Unknown products are a no-op.
func (l *Ledger) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		l.Remove(productID)

		return
	}

	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items[i].Quantity = quantity
			l.recompute()

			return
		}
	}
}

// Clear empties the ledger. Clearing an already-empty ledger is a no-op.
func (l *Ledger) Clear() {
	l.items = nil
	l.recompute()
}

func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)

	return out
}

func (l *Ledger) IsEmpty() bool {
	return len(l.items) == 0
}

func (l *Ledger) TotalItems() int {
	return l.totalItems
}

func (l *Ledger) TotalAmount() decimal.Decimal {
	return l.totalAmount
}

// recompute derives both totals from the current items. Totals are never
// patched incrementally.
func (l *Ledger) recompute() {

	totalItems := 0
	totalAmount := decimal.Zero

	for _, item := range l.items {
		totalItems += item.Quantity
		totalAmount = totalAmount.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	l.totalItems = totalItems
	l.totalAmount = totalAmount
}
