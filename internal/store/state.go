// Package store owns the client-side application state: the authenticated
// identity and the cart snapshot. State is mutated only through named
// reducers applied by Dispatch, and the affected key is written to the
// persistence collaborator after every reduction so cart and auth survive a
// restart of the session process.
package store

import (
	"github.com/shopsphere/storefront-client/internal/cart"
	"github.com/shopsphere/storefront-client/internal/models"
)

// Persisted key names. The collaborator scopes everything else (prefix,
// encoding) itself.
const (
	KeyCart = "cart"
	KeyAuth = "auth"
)

type AuthState struct {
	User          *models.User `json:"user,omitempty"`
	Token         string       `json:"token,omitempty"`
	Authenticated bool         `json:"authenticated"`
}

type State struct {
	Auth AuthState     `json:"auth"`
	Cart cart.Snapshot `json:"cart"`
}
