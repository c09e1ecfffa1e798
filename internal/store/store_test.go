package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront-client/internal/cart"
	apperrors "github.com/shopsphere/storefront-client/internal/errors"
	"github.com/shopsphere/storefront-client/internal/models"
	"github.com/shopsphere/storefront-client/internal/store"
)

// memPersister is an in-memory stand-in for the redis collaborator.
type memPersister struct {
	data    map[string][]byte
	saveErr error
}

func newMemPersister() *memPersister {
	return &memPersister{data: map[string][]byte{}}
}

func (m *memPersister) Load(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, dest)
}

func (m *memPersister) Save(_ context.Context, key string, value any) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.data[key] = raw

	return nil
}

func (m *memPersister) Delete(_ context.Context, key string) error {
	delete(m.data, key)

	return nil
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func testProduct(id, price string) models.Product {
	return models.Product{ID: id, Price: decimal.RequireFromString(price)}
}

func TestDispatchCartActions(t *testing.T) {
	ctx := context.Background()

	t.Run("AddItem Persists The Cart Key", func(t *testing.T) {
		persist := newMemPersister()
		st := store.New(persist)

		err := st.Dispatch(ctx, store.AddItem{Product: testProduct("p1", "10.00"), Quantity: 2})

		require.NoError(t, err)
		assert.Contains(t, persist.data, store.KeyCart)
		assert.Equal(t, 2, st.Ledger().TotalItems())
	})

	t.Run("Sequence Of Actions Keeps Totals Consistent", func(t *testing.T) {
		persist := newMemPersister()
		st := store.New(persist)

		require.NoError(t, st.Dispatch(ctx, store.AddItem{Product: testProduct("a", "10.00"), Quantity: 2}))
		require.NoError(t, st.Dispatch(ctx, store.AddItem{Product: testProduct("b", "25.00"), Quantity: 1}))
		require.NoError(t, st.Dispatch(ctx, store.SetQuantity{ProductID: "a", Quantity: 1}))
		require.NoError(t, st.Dispatch(ctx, store.RemoveItem{ProductID: "b"}))

		ledger := st.Ledger()
		assert.Equal(t, 1, ledger.TotalItems())
		assert.True(t, ledger.TotalAmount().Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("ClearCart Resets State And Persists Empty Snapshot", func(t *testing.T) {
		persist := newMemPersister()
		st := store.New(persist)
		require.NoError(t, st.Dispatch(ctx, store.AddItem{Product: testProduct("a", "10.00"), Quantity: 2}))

		err := st.ClearCart(ctx)

		require.NoError(t, err)
		assert.True(t, st.Ledger().IsEmpty())

		restored := store.New(persist)
		require.NoError(t, restored.Restore(ctx))
		assert.True(t, restored.Ledger().IsEmpty())
	})

	t.Run("Persistence Failure Is Reported", func(t *testing.T) {
		persist := newMemPersister()
		persist.saveErr = errors.New("redis down")
		st := store.New(persist)

		err := st.Dispatch(ctx, store.AddItem{Product: testProduct("a", "10.00"), Quantity: 1})

		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodePersistence, appErr.Code)
	})
}

func TestDispatchAuthActions(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAuth Persists Identity", func(t *testing.T) {
		persist := newMemPersister()
		st := store.New(persist)
		token := signedToken(t, time.Now().Add(time.Hour))

		err := st.Dispatch(ctx, store.SetAuth{User: models.User{ID: "user-1"}, Token: token})

		require.NoError(t, err)
		assert.Contains(t, persist.data, store.KeyAuth)
		assert.Equal(t, token, st.Token())
		assert.True(t, st.State().Auth.Authenticated)
	})

	t.Run("ClearAuth Deletes The Persisted Key", func(t *testing.T) {
		persist := newMemPersister()
		st := store.New(persist)
		require.NoError(t, st.Dispatch(ctx, store.SetAuth{User: models.User{ID: "user-1"}, Token: signedToken(t, time.Now().Add(time.Hour))}))

		err := st.Dispatch(ctx, store.ClearAuth{})

		require.NoError(t, err)
		assert.NotContains(t, persist.data, store.KeyAuth)
		assert.Empty(t, st.Token())
	})
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("Restores Cart And Valid Auth", func(t *testing.T) {
		persist := newMemPersister()
		first := store.New(persist)
		token := signedToken(t, time.Now().Add(time.Hour))
		require.NoError(t, first.Dispatch(ctx, store.AddItem{Product: testProduct("a", "10.00"), Quantity: 2}))
		require.NoError(t, first.Dispatch(ctx, store.SetAuth{User: models.User{ID: "user-1"}, Token: token}))

		second := store.New(persist)

		require.NoError(t, second.Restore(ctx))
		assert.Equal(t, 2, second.Ledger().TotalItems())
		assert.Equal(t, token, second.Token())
	})

	t.Run("Expired Token Is Dropped", func(t *testing.T) {
		persist := newMemPersister()
		first := store.New(persist)
		require.NoError(t, first.Dispatch(ctx, store.SetAuth{User: models.User{ID: "user-1"}, Token: signedToken(t, time.Now().Add(-time.Hour))}))

		second := store.New(persist)

		require.NoError(t, second.Restore(ctx))
		assert.False(t, second.State().Auth.Authenticated)
		assert.Empty(t, second.Token())
		assert.NotContains(t, persist.data, store.KeyAuth)
	})

	t.Run("Stored Totals Are Recomputed, Not Trusted", func(t *testing.T) {
		persist := newMemPersister()
		tampered := cart.Snapshot{
			Items: []cart.LineItem{
				{ProductID: "a", Product: testProduct("a", "10.00"), Quantity: 2},
			},
			TotalItems:  50,
			TotalAmount: decimal.RequireFromString("999.00"),
		}
		require.NoError(t, persist.Save(ctx, store.KeyCart, tampered))

		st := store.New(persist)

		require.NoError(t, st.Restore(ctx))
		snap := st.State().Cart
		assert.Equal(t, 2, snap.TotalItems)
		assert.True(t, snap.TotalAmount.Equal(decimal.RequireFromString("20.00")))
	})

	t.Run("Empty Persistence Yields Fresh State", func(t *testing.T) {
		st := store.New(newMemPersister())

		require.NoError(t, st.Restore(ctx))
		assert.True(t, st.Ledger().IsEmpty())
		assert.False(t, st.State().Auth.Authenticated)
	})
}
