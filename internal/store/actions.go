package store

import (
	"github.com/shopsphere/storefront-client/internal/cart"
	"github.com/shopsphere/storefront-client/internal/models"
)

// Action is a named state mutation. The unexported method keeps the action
// set closed to this package's callers.
type Action interface {
	name() string
}

type AddItem struct {
	Product  models.Product
	Quantity int
}

func (AddItem) name() string { return "cart/addItem" }

type RemoveItem struct {
	ProductID string
}

func (RemoveItem) name() string { return "cart/removeItem" }

type SetQuantity struct {
	ProductID string
	Quantity  int
}

func (SetQuantity) name() string { return "cart/setQuantity" }

type ClearCart struct{}

func (ClearCart) name() string { return "cart/clear" }

type SetAuth struct {
	User  models.User
	Token string
}

func (SetAuth) name() string { return "auth/set" }

type ClearAuth struct{}

func (ClearAuth) name() string { return "auth/clear" }

// reduce is the single pure reducer: it maps the previous state and an
// action to the next state without touching anything else. Cart actions go
// through the ledger operations so the derived totals are always recomputed.
func reduce(state State, action Action) State {

	switch a := action.(type) {

	case AddItem:
		ledger := cart.Restore(state.Cart)
		ledger.Add(a.Product, a.Quantity)
		state.Cart = ledger.Snapshot()

	case RemoveItem:
		ledger := cart.Restore(state.Cart)
		ledger.Remove(a.ProductID)
		state.Cart = ledger.Snapshot()

	case SetQuantity:
		ledger := cart.Restore(state.Cart)
		ledger.SetQuantity(a.ProductID, a.Quantity)
		state.Cart = ledger.Snapshot()

	case ClearCart:
		state.Cart = cart.New().Snapshot()

	case SetAuth:
		user := a.User
		state.Auth = AuthState{User: &user, Token: a.Token, Authenticated: true}

	case ClearAuth:
		state.Auth = AuthState{}
	}

	return state
}

// persistKey names the persisted key an action dirties.
func persistKey(action Action) string {
	switch action.(type) {
	case AddItem, RemoveItem, SetQuantity, ClearCart:
		return KeyCart
	case SetAuth, ClearAuth:
		return KeyAuth
	}

	return ""
}
