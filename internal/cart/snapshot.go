package cart

import (
	"github.com/shopspring/decimal"
)

// Snapshot is the persisted shape of the ledger. Totals are stored alongside
// the items for display before first recompute, but Restore derives them
// again rather than trusting the stored values.
type Snapshot struct {
	Items       []LineItem      `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Items:       l.Items(),
		TotalItems:  l.totalItems,
		TotalAmount: l.totalAmount,
	}
}

func Restore(s Snapshot) *Ledger {
	l := New()
	l.items = make([]LineItem, len(s.Items))
	copy(l.items, s.Items)
	l.recompute()

	return l
}
