package magento

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// newTestClient builds a client pointed at a test server. The integration
// token keeps admin calls from hitting the token endpoint.
func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{
		BaseURL:          srv.URL,
		StoreCode:        "default",
		IntegrationToken: "test-integration-token",
		AdminTokenTTL:    time.Hour,
		Timeout:          5 * time.Second,
	}, nil)
	require.NoError(t, err)
	return client, srv
}

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	regular := decimal.NewFromInt(100)

	tests := []struct {
		name      string
		attrs     map[string]string
		wantFinal string
		wantSale  bool
		wantTo    bool
	}{
		{
			name:      "no special price",
			attrs:     map[string]string{},
			wantFinal: "100",
		},
		{
			name:      "special price below regular",
			attrs:     map[string]string{"specialPrice": "75"},
			wantFinal: "75",
			wantSale:  true,
		},
		{
			name:      "special price equal to regular is ignored",
			attrs:     map[string]string{"specialPrice": "100"},
			wantFinal: "100",
		},
		{
			name:      "special price above regular is ignored",
			attrs:     map[string]string{"specialPrice": "120"},
			wantFinal: "100",
		},
		{
			name:      "non-positive special price is ignored",
			attrs:     map[string]string{"specialPrice": "0"},
			wantFinal: "100",
		},
		{
			name:      "unparseable special price is ignored",
			attrs:     map[string]string{"specialPrice": "soon"},
			wantFinal: "100",
		},
		{
			name: "window not yet started",
			attrs: map[string]string{
				"specialPrice":    "75",
				"specialFromDate": "2026-07-01 00:00:00",
			},
			wantFinal: "100",
		},
		{
			name: "window already ended",
			attrs: map[string]string{
				"specialPrice":  "75",
				"specialToDate": "2026-06-01 00:00:00",
			},
			wantFinal: "100",
		},
		{
			name: "inside window",
			attrs: map[string]string{
				"specialPrice":    "75",
				"specialFromDate": "2026-06-01 00:00:00",
				"specialToDate":   "2026-06-30 00:00:00",
			},
			wantFinal: "75",
			wantSale:  true,
			wantTo:    true,
		},
		{
			name: "open-ended window",
			attrs: map[string]string{
				"specialPrice":    "75",
				"specialFromDate": "2026-06-01 00:00:00",
			},
			wantFinal: "75",
			wantSale:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, to, onSale := effectivePrice(regular, tt.attrs, now)
			assert.True(t, final.Equal(decimal.RequireFromString(tt.wantFinal)),
				"final = %s, want %s", final, tt.wantFinal)
			assert.Equal(t, tt.wantSale, onSale)
			if tt.wantTo {
				require.NotNil(t, to)
				assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), *to)
			} else {
				assert.Nil(t, to)
			}
		})
	}
}

func TestConvertProduct(t *testing.T) {
	rp := restProduct{
		ID:         42,
		SKU:        "blue-shirt",
		Name:       "Blue Shirt",
		Price:      49.99,
		Status:     productStatusEnabled,
		Visibility: 4,
		TypeID:     "simple",
		CreatedAt:  "2025-01-02 03:04:05",
		ExtensionAttributes: &restProductExtension{
			StockItem: &restStockItem{
				Qty:        25,
				IsInStock:  true,
				MinSaleQty: 1,
				MaxSaleQty: 10,
			},
			CategoryLinks: []restCategoryLink{
				{CategoryID: "3"},
				{CategoryID: "7"},
				{CategoryID: "not-a-number"},
			},
		},
		CustomAttributes: []restAttribute{
			{AttributeCode: "url_key", Value: json.RawMessage(`"blue-shirt"`)},
			{AttributeCode: "description", Value: json.RawMessage(`"A blue shirt."`)},
			{AttributeCode: "image", Value: json.RawMessage(`"/b/l/blue.jpg"`)},
		},
	}

	p := convertProduct(rp, "USD")

	assert.Equal(t, 42, p.ID)
	assert.Equal(t, "blue-shirt", p.SKU)
	assert.Equal(t, "blue-shirt", p.URLKey)
	assert.Equal(t, "A blue shirt.", p.Description)
	assert.True(t, p.Visible)
	assert.Equal(t, "USD", p.Price.Regular.Currency)
	assert.True(t, p.Price.Regular.Value.Equal(decimal.NewFromFloat(49.99)))
	assert.True(t, p.Price.Final.Value.Equal(p.Price.Regular.Value))
	assert.False(t, p.Price.OnSale)
	assert.True(t, p.Stock.InStock)
	assert.True(t, p.Stock.Qty.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, []int{3, 7}, p.CategoryIDs)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), p.CreatedAt)
}

func TestConvertProductHidden(t *testing.T) {
	disabled := convertProduct(restProduct{Status: 2, Visibility: 4}, "USD")
	assert.False(t, disabled.Visible)

	hidden := convertProduct(restProduct{Status: productStatusEnabled, Visibility: productVisibilityHidden}, "USD")
	assert.False(t, hidden.Visible)
}

func TestConvertCategoryFlattensAttributes(t *testing.T) {
	rc := restCategory{
		ID:       5,
		ParentID: 2,
		Name:     "Shirts",
		IsActive: true,
		Level:    2,
		CustomAttributes: []restAttribute{
			{AttributeCode: "url_key", Value: json.RawMessage(`"shirts"`)},
			{AttributeCode: "url_path", Value: json.RawMessage(`"men/shirts"`)},
		},
		ChildrenData: []restCategory{
			{ID: 9, ParentID: 5, Name: "T-Shirts"},
		},
	}

	cat := convertCategory(rc)

	assert.Equal(t, "shirts", cat.URLKey)
	assert.Equal(t, "men/shirts", cat.URLPath)
	require.Len(t, cat.Children, 1)
	assert.Equal(t, 9, cat.Children[0].ID)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0, 20))
	assert.Equal(t, 1, totalPages(20, 20))
	assert.Equal(t, 2, totalPages(21, 20))
	assert.Equal(t, 5, totalPages(100, 20))
}

func TestSearchProductsBuildsCriteria(t *testing.T) {
	var gotQuery map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/default/V1/products", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(restProductSearchResult{
			Items:      []restProduct{{ID: 1, SKU: "a", Status: productStatusEnabled, Visibility: 4}},
			TotalCount: 41,
		})
	})
	mux.HandleFunc("/rest/default/V1/store/storeConfigs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]restStoreConfig{{Code: "default", DefaultDisplayCurrencyCode: "EUR"}})
	})

	client, _ := newTestClient(t, mux)

	list, err := client.SearchProducts(context.Background(), storefront.ProductQuery{
		Search:      "shirt",
		Filters:     []storefront.ProductFilter{{Field: "price", Value: "50", Condition: "lteq"}},
		Sort:        []storefront.ProductSort{{Field: "name", Direction: storefront.SortAsc}},
		CurrentPage: 2,
		PageSize:    20,
	})
	require.NoError(t, err)

	assert.Equal(t, "name", gotQuery["searchCriteria[filter_groups][0][filters][0][field]"][0])
	assert.Equal(t, "%shirt%", gotQuery["searchCriteria[filter_groups][0][filters][0][value]"][0])
	assert.Equal(t, "like", gotQuery["searchCriteria[filter_groups][0][filters][0][condition_type]"][0])
	assert.Equal(t, "price", gotQuery["searchCriteria[filter_groups][1][filters][0][field]"][0])
	assert.Equal(t, "lteq", gotQuery["searchCriteria[filter_groups][1][filters][0][condition_type]"][0])
	assert.Equal(t, "name", gotQuery["searchCriteria[sortOrders][0][field]"][0])
	assert.Equal(t, "2", gotQuery["searchCriteria[currentPage]"][0])
	assert.Equal(t, "20", gotQuery["searchCriteria[pageSize]"][0])

	assert.Equal(t, 41, list.TotalCount)
	assert.Equal(t, 3, list.PageInfo.TotalPages)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "EUR", list.Items[0].Price.Regular.Currency)
}

func TestProductByURLKeyNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/default/V1/products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(restProductSearchResult{})
	})
	mux.HandleFunc("/rest/default/V1/store/storeConfigs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]restStoreConfig{})
	})

	client, _ := newTestClient(t, mux)

	_, err := client.ProductByURLKey(context.Background(), "missing")
	assert.ErrorIs(t, err, storefront.ErrNotFound)
}
