package graphql

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/bridge/internal/domain/storefront"
)

func TestDecodeProductQuery(t *testing.T) {
	q := decodeProductQuery(map[string]interface{}{
		"search": "shirt",
		"filters": []interface{}{
			map[string]interface{}{"field": "price", "value": "50", "condition": "lteq"},
		},
		"sort": []interface{}{
			map[string]interface{}{"field": "name", "direction": "ASC"},
		},
		"currentPage": 2,
		"pageSize":    10,
	})

	assert.Equal(t, "shirt", q.Search)
	require.Len(t, q.Filters, 1)
	assert.Equal(t, storefront.ProductFilter{Field: "price", Value: "50", Condition: "lteq"}, q.Filters[0])
	require.Len(t, q.Sort, 1)
	assert.Equal(t, storefront.SortAsc, q.Sort[0].Direction)
	assert.Equal(t, 2, q.CurrentPage)
	assert.Equal(t, 10, q.PageSize)
}

func TestDecodeProductQueryDefaults(t *testing.T) {
	q := decodeProductQuery(map[string]interface{}{})
	assert.Equal(t, 1, q.CurrentPage)
	assert.Equal(t, 20, q.PageSize)
	assert.Empty(t, q.Filters)
}

func TestDecodeAddress(t *testing.T) {
	addr := decodeAddress(map[string]interface{}{
		"firstname":      "Jane",
		"lastname":       "Doe",
		"street":         []interface{}{"Hauptplatz 1", "Stiege 2"},
		"city":           "Linz",
		"regionCode":     "OO",
		"postcode":       "4020",
		"countryId":      "AT",
		"telephone":      "+43123",
		"defaultBilling": true,
	})

	assert.Equal(t, "Jane", addr.Firstname)
	assert.Equal(t, []string{"Hauptplatz 1", "Stiege 2"}, addr.Street)
	assert.Equal(t, "OO", addr.RegionCode)
	assert.True(t, addr.DefaultBilling)
	assert.False(t, addr.DefaultShipping)
}

func TestDecodeCartItem(t *testing.T) {
	in := decodeCartItem(map[string]interface{}{"sku": "blue-shirt", "qty": 2.5})
	assert.Equal(t, "blue-shirt", in.SKU)
	assert.True(t, in.Qty.Equal(decimal.NewFromFloat(2.5)))

	// graphql-go hands over whole numbers as int.
	whole := decodeCartItem(map[string]interface{}{"sku": "blue-shirt", "qty": 3})
	assert.True(t, whole.Qty.Equal(decimal.NewFromInt(3)))
}
