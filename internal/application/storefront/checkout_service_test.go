package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/bridge/internal/domain/storefront"
	"github.com/storefront/bridge/internal/infrastructure/session"
)

func checkoutAddress() storefront.Address {
	return storefront.Address{
		Firstname: "Jane",
		Lastname:  "Doe",
		Street:    []string{"Hauptplatz 1"},
		City:      "Linz",
		Postcode:  "4020",
		CountryID: "AT",
		Telephone: "+43123",
	}
}

func TestEstimateShippingRequiresCart(t *testing.T) {
	svc := NewCheckoutService(&fakePlatform{}, nil)

	_, err := svc.EstimateShipping(context.Background(), session.New(), checkoutAddress())
	assert.ErrorIs(t, err, storefront.ErrNoActiveCart)
}

func TestEstimateShippingRequiresCountry(t *testing.T) {
	svc := NewCheckoutService(&fakePlatform{}, nil)

	sess := session.New()
	sess.CartID = "masked"

	addr := checkoutAddress()
	addr.CountryID = ""
	_, err := svc.EstimateShipping(context.Background(), sess, addr)
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)
}

func TestSetShippingAddressParksAddresses(t *testing.T) {
	platform := &fakePlatform{
		estimateShippingFn: func(_ context.Context, _ storefront.CartRef, addr storefront.Address) ([]storefront.ShippingMethod, error) {
			assert.Equal(t, "Linz", addr.City)
			return []storefront.ShippingMethod{{CarrierCode: "flatrate", MethodCode: "flatrate"}}, nil
		},
	}
	svc := NewCheckoutService(platform, nil)

	sess := session.New()
	sess.CartID = "masked"

	billing := checkoutAddress()
	billing.City = "Vienna"

	methods, err := svc.SetShippingAddress(context.Background(), sess, checkoutAddress(), &billing)
	require.NoError(t, err)
	require.Len(t, methods, 1)

	require.NotNil(t, sess.Checkout.ShippingAddress)
	assert.Equal(t, "Linz", sess.Checkout.ShippingAddress.City)
	require.NotNil(t, sess.Checkout.BillingAddress)
	assert.Equal(t, "Vienna", sess.Checkout.BillingAddress.City)
}

func TestSetShippingMethodSendsParkedAddresses(t *testing.T) {
	platform := &fakePlatform{
		setShippingInfoFn: func(_ context.Context, _ storefront.CartRef, info storefront.ShippingInformation) ([]storefront.PaymentMethod, error) {
			assert.Equal(t, "Linz", info.ShippingAddress.City)
			// No billing address was parked; shipping doubles as billing.
			assert.Equal(t, "Linz", info.BillingAddress.City)
			assert.Equal(t, "flatrate", info.CarrierCode)
			assert.Equal(t, "standard", info.MethodCode)
			return []storefront.PaymentMethod{{Code: "checkmo"}}, nil
		},
	}
	svc := NewCheckoutService(platform, nil)

	sess := session.New()
	sess.CartID = "masked"
	addr := checkoutAddress()
	sess.Checkout.ShippingAddress = &addr

	methods, err := svc.SetShippingMethod(context.Background(), sess, "flatrate", "standard")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "flatrate", sess.Checkout.CarrierCode)
	assert.Equal(t, "standard", sess.Checkout.MethodCode)
}

func TestSetShippingMethodRequiresAddressFirst(t *testing.T) {
	svc := NewCheckoutService(&fakePlatform{}, nil)

	sess := session.New()
	sess.CartID = "masked"

	_, err := svc.SetShippingMethod(context.Background(), sess, "flatrate", "standard")
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)
}

func TestSetPaymentMethodGuestNeedsEmail(t *testing.T) {
	svc := NewCheckoutService(&fakePlatform{}, nil)

	sess := session.New()
	sess.CartID = "masked"

	err := svc.SetPaymentMethod(context.Background(), sess, storefront.PaymentInput{Method: "checkmo"})
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)

	err = svc.SetPaymentMethod(context.Background(), sess, storefront.PaymentInput{
		Method: "checkmo",
		Email:  "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "checkmo", sess.Checkout.PaymentMethod)
	assert.Equal(t, "jane@example.com", sess.Checkout.Email)
}

func TestSetPaymentMethodSignedInSkipsEmail(t *testing.T) {
	svc := NewCheckoutService(&fakePlatform{}, nil)

	sess := session.New()
	sess.CartID = "314"
	sess.CustomerToken = "tok"

	err := svc.SetPaymentMethod(context.Background(), sess, storefront.PaymentInput{Method: "checkmo"})
	assert.NoError(t, err)
}

func TestPlaceOrderDetachesCart(t *testing.T) {
	platform := &fakePlatform{
		placeOrderFn: func(_ context.Context, ref storefront.CartRef, payment storefront.PaymentInput) (string, error) {
			assert.Equal(t, "masked", ref.ID)
			assert.Equal(t, "checkmo", payment.Method)
			assert.Equal(t, "jane@example.com", payment.Email)
			return "000000042", nil
		},
	}
	svc := NewCheckoutService(platform, nil)

	sess := session.New()
	sess.CartID = "masked"
	sess.Checkout.PaymentMethod = "checkmo"
	sess.Checkout.Email = "jane@example.com"

	orderID, err := svc.PlaceOrder(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "000000042", orderID)
	assert.False(t, sess.HasCart())
	assert.Equal(t, session.CheckoutState{}, sess.Checkout)
}

func TestPlaceOrderRequiresPaymentMethod(t *testing.T) {
	svc := NewCheckoutService(&fakePlatform{}, nil)

	sess := session.New()
	sess.CartID = "masked"

	_, err := svc.PlaceOrder(context.Background(), sess)
	assert.ErrorIs(t, err, storefront.ErrInvalidInput)
}

func TestPlaceOrderKeepsCartOnFailure(t *testing.T) {
	platform := &fakePlatform{
		placeOrderFn: func(_ context.Context, _ storefront.CartRef, _ storefront.PaymentInput) (string, error) {
			return "", storefront.ErrBackendUnavailable
		},
	}
	svc := NewCheckoutService(platform, nil)

	sess := session.New()
	sess.CartID = "masked"
	sess.Checkout.PaymentMethod = "checkmo"
	sess.Checkout.Email = "jane@example.com"

	_, err := svc.PlaceOrder(context.Background(), sess)
	assert.ErrorIs(t, err, storefront.ErrBackendUnavailable)
	assert.True(t, sess.HasCart(), "a failed order leaves the cart for retry")
}
