package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopsphere/storefront-client/internal/cart"
	apperrors "github.com/shopsphere/storefront-client/internal/errors"
)

// Store applies actions to the state and keeps the persisted keys in sync.
// Mutation is serialized: a dispatch either fully applies or not at all.
type Store struct {
	mu      sync.Mutex
	state   State
	persist Persister
	logger  *slog.Logger
}

func New(persist Persister) *Store {
	return &Store{
		state:   State{Cart: cart.New().Snapshot()},
		persist: persist,
		logger:  slog.Default(),
	}
}

// Dispatch reduces the action into the state and writes the dirtied key to
// the persistence collaborator. A persistence failure leaves the in-memory
// state applied and is reported to the caller.
func (s *Store) Dispatch(ctx context.Context, action Action) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = reduce(s.state, action)
	s.logger.Debug("Action dispatched", slog.String("action", action.name()))

	switch persistKey(action) {

	case KeyCart:
		if err := s.persist.Save(ctx, KeyCart, s.state.Cart); err != nil {
			return apperrors.PersistenceError("Failed to persist cart").WithError(err)
		}

	case KeyAuth:
		if !s.state.Auth.Authenticated {
			if err := s.persist.Delete(ctx, KeyAuth); err != nil {
				return apperrors.PersistenceError("Failed to clear persisted auth").WithError(err)
			}

			return nil
		}

		if err := s.persist.Save(ctx, KeyAuth, s.state.Auth); err != nil {
			return apperrors.PersistenceError("Failed to persist auth").WithError(err)
		}
	}

	return nil
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Ledger restores a working cart ledger from the current snapshot. Mutations
// on it do not feed back; they must go through Dispatch.
func (s *Store) Ledger() *cart.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cart.Restore(s.state.Cart)
}

// Token exposes the bearer token for the API client.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Auth.Token
}

// ClearCart is the convenience used by the order submission flow.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.Dispatch(ctx, ClearCart{})
}

// Restore loads the persisted cart and auth state. It runs once, before
// anything renders. A persisted token that has expired is dropped rather
// than restored; the shopper simply logs in again.
func (s *Store) Restore(ctx context.Context) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	var snap cart.Snapshot

	found, err := s.persist.Load(ctx, KeyCart, &snap)
	if err != nil {
		return apperrors.PersistenceError("Failed to restore cart").WithError(err)
	}

	if found {
		// Normalize through the ledger so totals are recomputed, not trusted.
		s.state.Cart = cart.Restore(snap).Snapshot()
	}

	var auth AuthState

	found, err = s.persist.Load(ctx, KeyAuth, &auth)
	if err != nil {
		return apperrors.PersistenceError("Failed to restore auth").WithError(err)
	}

	if found {
		if auth.Authenticated && tokenUsable(auth.Token) {
			s.state.Auth = auth
		} else {
			s.logger.Info("Dropping expired persisted session")

			if err := s.persist.Delete(ctx, KeyAuth); err != nil {
				s.logger.Warn("Failed to delete stale auth state", slog.Any("error", err))
			}
		}
	}

	return nil
}

// tokenUsable reads the token's registered claims without verifying the
// signature (the backend holds the key) and rejects expired tokens.
func tokenUsable(token string) bool {
	if token == "" {
		return false
	}

	claims := &jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	if claims.ExpiresAt == nil {
		return true
	}

	return claims.ExpiresAt.After(time.Now())
}
