package magento

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/bridge/internal/domain/storefront"
)

func f64(v float64) *float64 { return &v }

func TestNormalizeSegments(t *testing.T) {
	// Magento emits the discount segment in a version-dependent position.
	segments := []restTotalSegment{
		{Code: "subtotal", Title: "Subtotal", Value: f64(100)},
		{Code: "discount", Title: "Discount", Value: f64(-10)},
		{Code: "shipping", Title: "Shipping", Value: f64(5)},
		{Code: "tax", Title: "Tax", Value: nil},
		{Code: "grand_total", Title: "Grand Total", Value: f64(95)},
	}

	out := normalizeSegments(segments, "USD")

	codes := make([]string, 0, len(out))
	for _, s := range out {
		codes = append(codes, string(s.Code))
	}
	// Null-valued tax segment dropped; discount sorted after shipping.
	assert.Equal(t, []string{"subtotal", "shipping", "discount", "grand_total"}, codes)
}

func TestNormalizeSegmentsUnknownBeforeGrandTotal(t *testing.T) {
	segments := []restTotalSegment{
		{Code: "grand_total", Value: f64(120)},
		{Code: "giftwrapping", Value: f64(3)},
		{Code: "customerbalance", Value: f64(-5)},
		{Code: "subtotal", Value: f64(122)},
	}

	out := normalizeSegments(segments, "USD")

	codes := make([]string, 0, len(out))
	for _, s := range out {
		codes = append(codes, string(s.Code))
	}
	// Unknown segments keep their relative order, before grand_total.
	assert.Equal(t, []string{"subtotal", "giftwrapping", "customerbalance", "grand_total"}, codes)
}

func TestMergeCart(t *testing.T) {
	body := restCart{
		ID:         77,
		IsActive:   true,
		ItemsCount: 2,
		Items: []restCartItem{
			{ItemID: 1, SKU: "a", Name: "Item A", Qty: 2, Price: 10.5, ProductType: "simple"},
			{ItemID: 2, SKU: "b", Name: "Item B", Qty: 1, Price: 5, ProductType: "simple"},
		},
	}
	totals := restTotals{
		GrandTotal:        26,
		Subtotal:          26,
		QuoteCurrencyCode: "USD",
	}

	cart := mergeCart(storefront.CartRef{ID: "masked-id"}, body, totals)

	assert.Equal(t, "masked-id", cart.ID)
	assert.Equal(t, 77, cart.QuoteID)
	assert.True(t, cart.Active)
	assert.Equal(t, "USD", cart.Currency)
	require.Len(t, cart.Items, 2)
	assert.True(t, cart.Items[0].RowTotal.Value.Equal(decimal.NewFromFloat(21)))
	assert.Equal(t, "USD", cart.Items[0].Price.Currency)
}

func TestMergeCartCurrencyFallsBackToBody(t *testing.T) {
	body := restCart{Currency: &restCartCurrency{QuoteCurrencyCode: "EUR"}}
	cart := mergeCart(storefront.CartRef{ID: "x"}, body, restTotals{})
	assert.Equal(t, "EUR", cart.Currency)
}

func TestCartFetchesBodyAndTotals(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/default/V1/guest-carts/abc123", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(restCart{
			ID:         9,
			IsActive:   true,
			ItemsCount: 1,
			Items:      []restCartItem{{ItemID: 3, SKU: "a", Qty: 1, Price: 10}},
		})
	})
	mux.HandleFunc("/rest/default/V1/guest-carts/abc123/totals", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(restTotals{
			GrandTotal:        10,
			Subtotal:          10,
			QuoteCurrencyCode: "USD",
			TotalSegments: []restTotalSegment{
				{Code: "subtotal", Value: f64(10)},
				{Code: "grand_total", Value: f64(10)},
			},
		})
	})

	client, _ := newTestClient(t, mux)

	cart, err := client.Cart(context.Background(), storefront.CartRef{ID: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", cart.ID)
	assert.True(t, cart.Totals.GrandTotal.Value.Equal(decimal.NewFromInt(10)))
	require.Len(t, cart.Totals.Segments, 2)
}

func TestCartExpiredDetection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":    "No such entity with %fieldName = %fieldValue",
			"parameters": map[string]string{"fieldName": "cartId", "fieldValue": "abc123"},
		})
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Cart(context.Background(), storefront.CartRef{ID: "abc123"})
	assert.ErrorIs(t, err, storefront.ErrCartExpired)
}

func TestAddItemRoutesGuestAndCustomer(t *testing.T) {
	var guestPath, customerPath, customerAuth string
	var guestBody restCartItemEnvelope

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/default/V1/guest-carts/masked/items", func(w http.ResponseWriter, r *http.Request) {
		guestPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&guestBody)
		_ = json.NewEncoder(w).Encode(restCartItem{ItemID: 1})
	})
	mux.HandleFunc("/rest/default/V1/guest-carts/masked", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(restCart{})
	})
	mux.HandleFunc("/rest/default/V1/guest-carts/masked/totals", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(restTotals{})
	})
	mux.HandleFunc("/rest/default/V1/carts/mine/items", func(w http.ResponseWriter, r *http.Request) {
		customerPath = r.URL.Path
		customerAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(restCartItem{ItemID: 2})
	})
	mux.HandleFunc("/rest/default/V1/carts/mine", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(restCart{})
	})
	mux.HandleFunc("/rest/default/V1/carts/mine/totals", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(restTotals{})
	})

	client, _ := newTestClient(t, mux)
	input := storefront.CartItemInput{SKU: "a", Qty: decimal.NewFromInt(2)}

	_, err := client.AddItem(context.Background(), storefront.CartRef{ID: "masked"}, input)
	require.NoError(t, err)
	assert.Equal(t, "/rest/default/V1/guest-carts/masked/items", guestPath)
	assert.Equal(t, "masked", guestBody.CartItem.QuoteID)
	assert.InDelta(t, 2.0, guestBody.CartItem.Qty, 0.001)

	_, err = client.AddItem(context.Background(), storefront.CartRef{ID: "55", CustomerToken: "cust-token"}, input)
	require.NoError(t, err)
	assert.Equal(t, "/rest/default/V1/carts/mine/items", customerPath)
	assert.Equal(t, "Bearer cust-token", customerAuth)
}

func TestCreateGuestCart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/default/V1/guest-carts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode("masked-cart-id")
	})

	client, _ := newTestClient(t, mux)

	id, err := client.CreateGuestCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "masked-cart-id", id)
}

func TestCreateCustomerCart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/default/V1/carts/mine", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(314)
	})

	client, _ := newTestClient(t, mux)

	id, err := client.CreateCustomerCart(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "314", id)
}
