package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// schemaTypes holds the GraphQL type definitions. Most fields resolve
// through the default resolver via json tags; custom resolvers appear only
// where the Go representation (decimal amounts, formatted money) needs
// converting.
type schemaTypes struct {
	money          *graphql.Object
	pageInfo       *graphql.Object
	category       *graphql.Object
	stock          *graphql.Object
	productPrice   *graphql.Object
	attribute      *graphql.Object
	product        *graphql.Object
	productList    *graphql.Object
	cartItem       *graphql.Object
	totalSegment   *graphql.Object
	totals         *graphql.Object
	cart           *graphql.Object
	shippingMethod *graphql.Object
	paymentMethod  *graphql.Object
	address        *graphql.Object
	customer       *graphql.Object
	orderItem      *graphql.Object
	order          *graphql.Object
	orderList      *graphql.Object
	region         *graphql.Object
	country        *graphql.Object
	storeConfig    *graphql.Object

	sortDirection *graphql.Enum

	productFilterInput  *graphql.InputObject
	productSortInput    *graphql.InputObject
	cartItemInput       *graphql.InputObject
	cartItemUpdateInput *graphql.InputObject
	addressInput        *graphql.InputObject
}

// productAttribute is the wire shape of one flattened custom attribute.
type productAttribute struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

func newSchemaTypes(r *Resolver) *schemaTypes {
	t := &schemaTypes{}

	t.money = graphql.NewObject(graphql.ObjectConfig{
		Name: "Money",
		Fields: graphql.Fields{
			"value": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, _ := p.Source.(storefront.Money)
					return m.Value.InexactFloat64(), nil
				},
			},
			"currency": &graphql.Field{Type: graphql.String},
			"formatted": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, _ := p.Source.(storefront.Money)
					if m.Currency == "" {
						return "", nil
					}
					return r.formatMoney(p.Context, m), nil
				},
			},
		},
	})

	t.pageInfo = graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"currentPage": &graphql.Field{Type: graphql.Int},
			"pageSize":    &graphql.Field{Type: graphql.Int},
			"totalPages":  &graphql.Field{Type: graphql.Int},
		},
	})

	t.category = graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: (graphql.FieldsThunk)(func() graphql.Fields {
			return graphql.Fields{
				"id":           &graphql.Field{Type: graphql.Int},
				"parentId":     &graphql.Field{Type: graphql.Int},
				"name":         &graphql.Field{Type: graphql.String},
				"urlKey":       &graphql.Field{Type: graphql.String},
				"urlPath":      &graphql.Field{Type: graphql.String},
				"description":  &graphql.Field{Type: graphql.String},
				"level":        &graphql.Field{Type: graphql.Int},
				"position":     &graphql.Field{Type: graphql.Int},
				"isActive":     &graphql.Field{Type: graphql.Boolean},
				"productCount": &graphql.Field{Type: graphql.Int},
				"children":     &graphql.Field{Type: graphql.NewList(t.category)},
			}
		}),
	})

	t.stock = graphql.NewObject(graphql.ObjectConfig{
		Name: "StockInfo",
		Fields: graphql.Fields{
			"qty":        decimalField(func(src interface{}) float64 { return src.(storefront.StockInfo).Qty.InexactFloat64() }),
			"inStock":    &graphql.Field{Type: graphql.Boolean},
			"minSaleQty": decimalField(func(src interface{}) float64 { return src.(storefront.StockInfo).MinSaleQty.InexactFloat64() }),
			"maxSaleQty": decimalField(func(src interface{}) float64 { return src.(storefront.StockInfo).MaxSaleQty.InexactFloat64() }),
		},
	})

	t.productPrice = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductPrice",
		Fields: graphql.Fields{
			"regular":   &graphql.Field{Type: t.money},
			"final":     &graphql.Field{Type: t.money},
			"specialTo": &graphql.Field{Type: graphql.DateTime},
			"onSale":    &graphql.Field{Type: graphql.Boolean},
		},
	})

	t.attribute = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductAttribute",
		Fields: graphql.Fields{
			"code":  &graphql.Field{Type: graphql.String},
			"value": &graphql.Field{Type: graphql.String},
		},
	})

	t.product = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.Int},
			"sku":              &graphql.Field{Type: graphql.String},
			"name":             &graphql.Field{Type: graphql.String},
			"typeId":           &graphql.Field{Type: graphql.String},
			"urlKey":           &graphql.Field{Type: graphql.String},
			"description":      &graphql.Field{Type: graphql.String},
			"shortDescription": &graphql.Field{Type: graphql.String},
			"image":            &graphql.Field{Type: graphql.String},
			"thumbnail":        &graphql.Field{Type: graphql.String},
			"price":            &graphql.Field{Type: t.productPrice},
			"stock":            &graphql.Field{Type: t.stock},
			"categoryIds":      &graphql.Field{Type: graphql.NewList(graphql.Int)},
			"visible":          &graphql.Field{Type: graphql.Boolean},
			"createdAt":        &graphql.Field{Type: graphql.DateTime},
			"updatedAt":        &graphql.Field{Type: graphql.DateTime},
			"attributes": &graphql.Field{
				Type: graphql.NewList(t.attribute),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := p.Source.(storefront.Product)
					if !ok {
						return nil, nil
					}
					attrs := make([]productAttribute, 0, len(product.Attributes))
					for code, value := range product.Attributes {
						attrs = append(attrs, productAttribute{Code: code, Value: value})
					}
					return attrs, nil
				},
			},
		},
	})

	t.productList = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductList",
		Fields: graphql.Fields{
			"items":      &graphql.Field{Type: graphql.NewList(t.product)},
			"totalCount": &graphql.Field{Type: graphql.Int},
			"pageInfo":   &graphql.Field{Type: t.pageInfo},
		},
	})

	t.cartItem = graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItem",
		Fields: graphql.Fields{
			"itemId":      &graphql.Field{Type: graphql.Int},
			"sku":         &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"qty":         decimalField(func(src interface{}) float64 { return src.(storefront.CartItem).Qty.InexactFloat64() }),
			"price":       &graphql.Field{Type: t.money},
			"rowTotal":    &graphql.Field{Type: t.money},
			"productType": &graphql.Field{Type: graphql.String},
		},
	})

	t.totalSegment = graphql.NewObject(graphql.ObjectConfig{
		Name: "TotalSegment",
		Fields: graphql.Fields{
			"code":  &graphql.Field{Type: graphql.String},
			"title": &graphql.Field{Type: graphql.String},
			"value": &graphql.Field{Type: t.money},
		},
	})

	t.totals = graphql.NewObject(graphql.ObjectConfig{
		Name: "CartTotals",
		Fields: graphql.Fields{
			"subtotal":        &graphql.Field{Type: t.money},
			"subtotalInclTax": &graphql.Field{Type: t.money},
			"shipping":        &graphql.Field{Type: t.money},
			"discount":        &graphql.Field{Type: t.money},
			"tax":             &graphql.Field{Type: t.money},
			"grandTotal":      &graphql.Field{Type: t.money},
			"couponCode":      &graphql.Field{Type: graphql.String},
			"segments":        &graphql.Field{Type: graphql.NewList(t.totalSegment)},
		},
	})

	t.cart = graphql.NewObject(graphql.ObjectConfig{
		Name: "Cart",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.String},
			"active":    &graphql.Field{Type: graphql.Boolean},
			"virtual":   &graphql.Field{Type: graphql.Boolean},
			"itemCount": &graphql.Field{Type: graphql.Int},
			"currency":  &graphql.Field{Type: graphql.String},
			"items":     &graphql.Field{Type: graphql.NewList(t.cartItem)},
			"totals":    &graphql.Field{Type: t.totals},
		},
	})

	t.shippingMethod = graphql.NewObject(graphql.ObjectConfig{
		Name: "ShippingMethod",
		Fields: graphql.Fields{
			"carrierCode":  &graphql.Field{Type: graphql.String},
			"carrierTitle": &graphql.Field{Type: graphql.String},
			"methodCode":   &graphql.Field{Type: graphql.String},
			"methodTitle":  &graphql.Field{Type: graphql.String},
			"amount":       &graphql.Field{Type: t.money},
			"available":    &graphql.Field{Type: graphql.Boolean},
		},
	})

	t.paymentMethod = graphql.NewObject(graphql.ObjectConfig{
		Name: "PaymentMethod",
		Fields: graphql.Fields{
			"code":  &graphql.Field{Type: graphql.String},
			"title": &graphql.Field{Type: graphql.String},
		},
	})

	t.address = graphql.NewObject(graphql.ObjectConfig{
		Name: "Address",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.Int},
			"firstname":       &graphql.Field{Type: graphql.String},
			"lastname":        &graphql.Field{Type: graphql.String},
			"company":         &graphql.Field{Type: graphql.String},
			"street":          &graphql.Field{Type: graphql.NewList(graphql.String)},
			"city":            &graphql.Field{Type: graphql.String},
			"region":          &graphql.Field{Type: graphql.String},
			"regionId":        &graphql.Field{Type: graphql.Int},
			"regionCode":      &graphql.Field{Type: graphql.String},
			"postcode":        &graphql.Field{Type: graphql.String},
			"countryId":       &graphql.Field{Type: graphql.String},
			"telephone":       &graphql.Field{Type: graphql.String},
			"defaultBilling":  &graphql.Field{Type: graphql.Boolean},
			"defaultShipping": &graphql.Field{Type: graphql.Boolean},
		},
	})

	t.customer = graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":                &graphql.Field{Type: graphql.Int},
			"email":             &graphql.Field{Type: graphql.String},
			"firstname":         &graphql.Field{Type: graphql.String},
			"lastname":          &graphql.Field{Type: graphql.String},
			"addresses":         &graphql.Field{Type: graphql.NewList(t.address)},
			"defaultBillingId":  &graphql.Field{Type: graphql.Int},
			"defaultShippingId": &graphql.Field{Type: graphql.Int},
			"createdAt":         &graphql.Field{Type: graphql.DateTime},
		},
	})

	t.orderItem = graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"sku":        &graphql.Field{Type: graphql.String},
			"name":       &graphql.Field{Type: graphql.String},
			"qtyOrdered": decimalField(func(src interface{}) float64 { return src.(storefront.OrderItem).QtyOrdered.InexactFloat64() }),
			"price":      &graphql.Field{Type: t.money},
			"rowTotal":   &graphql.Field{Type: t.money},
		},
	})

	t.order = graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"entityId":        &graphql.Field{Type: graphql.Int},
			"incrementId":     &graphql.Field{Type: graphql.String},
			"status":          &graphql.Field{Type: graphql.String},
			"state":           &graphql.Field{Type: graphql.String},
			"customerEmail":   &graphql.Field{Type: graphql.String},
			"currency":        &graphql.Field{Type: graphql.String},
			"subtotal":        &graphql.Field{Type: t.money},
			"shippingAmount":  &graphql.Field{Type: t.money},
			"discountAmount":  &graphql.Field{Type: t.money},
			"taxAmount":       &graphql.Field{Type: t.money},
			"grandTotal":      &graphql.Field{Type: t.money},
			"shippingAddress": &graphql.Field{Type: t.address},
			"billingAddress":  &graphql.Field{Type: t.address},
			"items":           &graphql.Field{Type: graphql.NewList(t.orderItem)},
			"createdAt":       &graphql.Field{Type: graphql.DateTime},
		},
	})

	t.orderList = graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderList",
		Fields: graphql.Fields{
			"items":      &graphql.Field{Type: graphql.NewList(t.order)},
			"totalCount": &graphql.Field{Type: graphql.Int},
			"pageInfo":   &graphql.Field{Type: t.pageInfo},
		},
	})

	t.region = graphql.NewObject(graphql.ObjectConfig{
		Name: "Region",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.Int},
			"code": &graphql.Field{Type: graphql.String},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	t.country = graphql.NewObject(graphql.ObjectConfig{
		Name: "Country",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.String},
			"twoLetterCode":   &graphql.Field{Type: graphql.String},
			"threeLetterCode": &graphql.Field{Type: graphql.String},
			"name":            &graphql.Field{Type: graphql.String},
			"regions":         &graphql.Field{Type: graphql.NewList(t.region)},
		},
	})

	t.storeConfig = graphql.NewObject(graphql.ObjectConfig{
		Name: "StoreConfig",
		Fields: graphql.Fields{
			"storeCode":              &graphql.Field{Type: graphql.String},
			"locale":                 &graphql.Field{Type: graphql.String},
			"baseCurrency":           &graphql.Field{Type: graphql.String},
			"defaultDisplayCurrency": &graphql.Field{Type: graphql.String},
			"timezone":               &graphql.Field{Type: graphql.String},
			"weightUnit":             &graphql.Field{Type: graphql.String},
			"baseMediaUrl":           &graphql.Field{Type: graphql.String},
			"secureBaseUrl":          &graphql.Field{Type: graphql.String},
		},
	})

	t.sortDirection = graphql.NewEnum(graphql.EnumConfig{
		Name: "SortDirection",
		Values: graphql.EnumValueConfigMap{
			"ASC":  &graphql.EnumValueConfig{Value: "ASC"},
			"DESC": &graphql.EnumValueConfig{Value: "DESC"},
		},
	})

	t.productFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"field":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"value":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"condition": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	t.productSortInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductSortInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"field":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"direction": &graphql.InputObjectFieldConfig{Type: t.sortDirection},
		},
	})

	t.cartItemInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CartItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"sku": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"qty": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	t.cartItemUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CartItemUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"itemId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"sku":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"qty":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	t.addressInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddressInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":              &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"firstname":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lastname":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"company":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"street":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"city":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"region":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"regionId":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"regionCode":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"postcode":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"countryId":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"telephone":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":           &graphql.InputObjectFieldConfig{Type: graphql.String},
			"defaultBilling":  &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
			"defaultShipping": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	return t
}

// decimalField builds a Float field backed by a decimal amount.
func decimalField(get func(src interface{}) float64) *graphql.Field {
	return &graphql.Field{
		Type: graphql.Float,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return get(p.Source), nil
		},
	}
}
