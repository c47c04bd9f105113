package graphql

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// Argument extraction helpers. graphql-go has already coerced values to the
// declared scalar types by the time resolvers run; these helpers only deal
// with optional arguments and nested input objects.

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]interface{}, key string) int {
	if v, ok := args[key].(int); ok {
		return v
	}
	return 0
}

func argIntDefault(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(int); ok {
		return v
	}
	return def
}

func argFloat(args map[string]interface{}, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func argObject(args map[string]interface{}, key string) map[string]interface{} {
	if v, ok := args[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func argList(args map[string]interface{}, key string) []interface{} {
	if v, ok := args[key].([]interface{}); ok {
		return v
	}
	return nil
}

// decodeAddress maps an AddressInput object onto the domain address.
func decodeAddress(in map[string]interface{}) storefront.Address {
	addr := storefront.Address{
		ID:         argInt(in, "id"),
		Firstname:  argString(in, "firstname"),
		Lastname:   argString(in, "lastname"),
		Company:    argString(in, "company"),
		City:       argString(in, "city"),
		Region:     argString(in, "region"),
		RegionID:   argInt(in, "regionId"),
		RegionCode: argString(in, "regionCode"),
		Postcode:   argString(in, "postcode"),
		CountryID:  argString(in, "countryId"),
		Telephone:  argString(in, "telephone"),
		Email:      argString(in, "email"),
	}
	for _, line := range argList(in, "street") {
		if s, ok := line.(string); ok {
			addr.Street = append(addr.Street, s)
		}
	}
	addr.DefaultBilling, _ = in["defaultBilling"].(bool)
	addr.DefaultShipping, _ = in["defaultShipping"].(bool)
	return addr
}

// decodeCartItem maps a CartItemInput object onto the domain input.
func decodeCartItem(in map[string]interface{}) storefront.CartItemInput {
	return storefront.CartItemInput{
		SKU: argString(in, "sku"),
		Qty: decimal.NewFromFloat(argFloat(in, "qty")),
	}
}

// decodeProductQuery maps the products() arguments onto a domain query.
func decodeProductQuery(args map[string]interface{}) storefront.ProductQuery {
	q := storefront.ProductQuery{
		Search:      argString(args, "search"),
		CurrentPage: argIntDefault(args, "currentPage", 1),
		PageSize:    argIntDefault(args, "pageSize", 20),
	}
	for _, raw := range argList(args, "filters") {
		if f, ok := raw.(map[string]interface{}); ok {
			q.Filters = append(q.Filters, storefront.ProductFilter{
				Field:     argString(f, "field"),
				Value:     argString(f, "value"),
				Condition: argString(f, "condition"),
			})
		}
	}
	for _, raw := range argList(args, "sort") {
		if s, ok := raw.(map[string]interface{}); ok {
			q.Sort = append(q.Sort, storefront.ProductSort{
				Field:     argString(s, "field"),
				Direction: storefront.SortDirection(argString(s, "direction")),
			})
		}
	}
	return q
}
