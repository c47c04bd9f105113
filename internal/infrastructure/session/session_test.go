package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/bridge/internal/domain/storefront"
)

func TestCartRef(t *testing.T) {
	sess := New()
	sess.CartID = "masked"
	assert.Equal(t, storefront.CartRef{ID: "masked"}, sess.CartRef())

	sess.CustomerToken = "tok"
	sess.CartID = "55"
	assert.Equal(t, storefront.CartRef{ID: "55", CustomerToken: "tok"}, sess.CartRef())
}

func TestSignOutDropsCartAndCheckout(t *testing.T) {
	sess := New()
	sess.CustomerToken = "tok"
	sess.CustomerID = 7
	sess.CartID = "55"
	sess.Checkout.CarrierCode = "flatrate"

	sess.SignOut()

	assert.False(t, sess.IsSignedIn())
	assert.False(t, sess.HasCart())
	assert.Equal(t, CheckoutState{}, sess.Checkout)
}

func TestPinCurrencyInvalidatesCart(t *testing.T) {
	sess := New()
	sess.CartID = "masked"
	sess.Checkout.MethodCode = "standard"

	sess.PinCurrency("EUR")
	assert.Equal(t, "EUR", sess.Currency)
	assert.False(t, sess.HasCart())
	assert.Equal(t, CheckoutState{}, sess.Checkout)

	// Re-pinning the same currency keeps the cart.
	sess.CartID = "next"
	sess.PinCurrency("EUR")
	assert.True(t, sess.HasCart())
}

func TestMemoryStoreRoundtrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := New()
	sess.CartID = "masked"
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "masked", got.CartID)

	// Get hands out a copy; mutations must not leak back into the store.
	got.CartID = "mutated"
	again, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "masked", again.CartID)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, storefront.ErrNoSuchSession)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	sess := New()
	require.NoError(t, store.Save(ctx, sess))

	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, storefront.ErrNoSuchSession)

	// The next write sweeps the expired entry.
	require.NoError(t, store.Save(ctx, New()))
	store.mu.RLock()
	_, still := store.sessions[sess.ID]
	store.mu.RUnlock()
	assert.False(t, still)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := New()
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, storefront.ErrNoSuchSession)

	assert.NoError(t, store.Delete(ctx, sess.ID))
}
