package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// NewSchema builds the executable storefront schema over the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := newSchemaTypes(r)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type: t.category,
				Args: graphql.FieldConfigArgument{
					"rootId": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					tree, err := r.catalog.CategoryTree(p.Context, argInt(p.Args, "rootId"))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return tree, nil
				},
			},
			"category": &graphql.Field{
				Type: t.category,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cat, err := r.catalog.Category(p.Context, argInt(p.Args, "id"))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return cat, nil
				},
			},
			"products": &graphql.Field{
				Type: t.productList,
				Args: graphql.FieldConfigArgument{
					"search":      &graphql.ArgumentConfig{Type: graphql.String},
					"filters":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(t.productFilterInput))},
					"sort":        &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(t.productSortInput))},
					"currentPage": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"pageSize":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.catalog.Products(p.Context, decodeProductQuery(p.Args))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return list, nil
				},
			},
			"product": &graphql.Field{
				Type: t.product,
				Args: graphql.FieldConfigArgument{
					"sku":    &graphql.ArgumentConfig{Type: graphql.String},
					"urlKey": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					sku := argString(p.Args, "sku")
					urlKey := argString(p.Args, "urlKey")

					var (
						product *storefront.Product
						err     error
					)
					switch {
					case sku != "":
						product, err = r.catalog.ProductBySKU(p.Context, sku)
					case urlKey != "":
						product, err = r.catalog.ProductByURLKey(p.Context, urlKey)
					default:
						err = fmt.Errorf("%w: sku or urlKey is required", storefront.ErrInvalidInput)
					}
					if err != nil {
						return nil, present(r.logger, err)
					}
					return product, nil
				},
			},
			"cart": &graphql.Field{
				Type: t.cart,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cart, err := r.cart.Cart(p.Context, sessionFrom(p.Context))
					if err != nil {
						return nil, present(r.logger, err)
					}
					if cart == nil {
						return nil, nil
					}
					return cart, nil
				},
			},
			"customer": &graphql.Field{
				Type: t.customer,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customer, err := r.customer.Me(p.Context, sessionFrom(p.Context))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return customer, nil
				},
			},
			"customerOrders": &graphql.Field{
				Type: t.orderList,
				Args: graphql.FieldConfigArgument{
					"currentPage": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"pageSize":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.order.Orders(p.Context, sessionFrom(p.Context),
						argIntDefault(p.Args, "currentPage", 1),
						argIntDefault(p.Args, "pageSize", 20),
					)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return list, nil
				},
			},
			"order": &graphql.Field{
				Type: t.order,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					order, err := r.order.Order(p.Context, sessionFrom(p.Context), argInt(p.Args, "id"))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return order, nil
				},
			},
			"countries": &graphql.Field{
				Type: graphql.NewList(t.country),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					countries, err := r.catalog.Countries(p.Context)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return countries, nil
				},
			},
			"storeConfig": &graphql.Field{
				Type: t.storeConfig,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cfg, err := r.catalog.StoreConfig(p.Context)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return cfg, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createEmptyCart": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := r.cart.CreateCart(p.Context, sessionFrom(p.Context))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return id, nil
				},
			},
			"addProductsToCart": &graphql.Field{
				Type: t.cart,
				Args: graphql.FieldConfigArgument{
					"items": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.cartItemInput)))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					items := argList(p.Args, "items")
					if len(items) == 0 {
						return nil, present(r.logger, fmt.Errorf("%w: items must not be empty", storefront.ErrInvalidInput))
					}
					sess := sessionFrom(p.Context)

					var cart *storefront.Cart
					for _, raw := range items {
						in, ok := raw.(map[string]interface{})
						if !ok {
							continue
						}
						var err error
						cart, err = r.cart.AddItem(p.Context, sess, decodeCartItem(in))
						if err != nil {
							return nil, present(r.logger, err)
						}
					}
					return cart, nil
				},
			},
			"updateCartItems": &graphql.Field{
				Type: t.cart,
				Args: graphql.FieldConfigArgument{
					"items": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.cartItemUpdateInput)))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					items := argList(p.Args, "items")
					if len(items) == 0 {
						return nil, present(r.logger, fmt.Errorf("%w: items must not be empty", storefront.ErrInvalidInput))
					}
					sess := sessionFrom(p.Context)

					var cart *storefront.Cart
					for _, raw := range items {
						in, ok := raw.(map[string]interface{})
						if !ok {
							continue
						}
						var err error
						cart, err = r.cart.UpdateItem(p.Context, sess, argInt(in, "itemId"), decodeCartItem(in))
						if err != nil {
							return nil, present(r.logger, err)
						}
					}
					return cart, nil
				},
			},
			"removeItemFromCart": &graphql.Field{
				Type: t.cart,
				Args: graphql.FieldConfigArgument{
					"itemId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cart, err := r.cart.RemoveItem(p.Context, sessionFrom(p.Context), argInt(p.Args, "itemId"))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return cart, nil
				},
			},
			"applyCoupon": &graphql.Field{
				Type: t.cart,
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cart, err := r.cart.ApplyCoupon(p.Context, sessionFrom(p.Context), argString(p.Args, "code"))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return cart, nil
				},
			},
			"removeCoupon": &graphql.Field{
				Type: t.cart,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cart, err := r.cart.RemoveCoupon(p.Context, sessionFrom(p.Context))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return cart, nil
				},
			},
			"setCurrency": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"currency": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					currency := argString(p.Args, "currency")
					if len(currency) != 3 {
						return nil, present(r.logger, fmt.Errorf("%w: currency must be a 3-letter ISO code", storefront.ErrInvalidInput))
					}
					r.cart.PinCurrency(sessionFrom(p.Context), currency)
					return true, nil
				},
			},
			"estimateShippingMethods": &graphql.Field{
				Type: graphql.NewList(t.shippingMethod),
				Args: graphql.FieldConfigArgument{
					"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.addressInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					addr := decodeAddress(argObject(p.Args, "address"))
					methods, err := r.checkout.EstimateShipping(p.Context, sessionFrom(p.Context), addr)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return methods, nil
				},
			},
			"setShippingAddress": &graphql.Field{
				Type: graphql.NewList(t.shippingMethod),
				Args: graphql.FieldConfigArgument{
					"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.addressInput)},
					"billing": &graphql.ArgumentConfig{Type: t.addressInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					shipping := decodeAddress(argObject(p.Args, "address"))
					var billing *storefront.Address
					if in := argObject(p.Args, "billing"); in != nil {
						addr := decodeAddress(in)
						billing = &addr
					}
					methods, err := r.checkout.SetShippingAddress(p.Context, sessionFrom(p.Context), shipping, billing)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return methods, nil
				},
			},
			"setShippingMethod": &graphql.Field{
				Type: graphql.NewList(t.paymentMethod),
				Args: graphql.FieldConfigArgument{
					"carrierCode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"methodCode":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					methods, err := r.checkout.SetShippingMethod(p.Context, sessionFrom(p.Context),
						argString(p.Args, "carrierCode"),
						argString(p.Args, "methodCode"),
					)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return methods, nil
				},
			},
			"setPaymentMethod": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"method":              &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"purchaseOrderNumber": &graphql.ArgumentConfig{Type: graphql.String},
					"email":               &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					payment := storefront.PaymentInput{
						Method:              argString(p.Args, "method"),
						PurchaseOrderNumber: argString(p.Args, "purchaseOrderNumber"),
						Email:               argString(p.Args, "email"),
					}
					if err := r.checkout.SetPaymentMethod(p.Context, sessionFrom(p.Context), payment); err != nil {
						return nil, present(r.logger, err)
					}
					return true, nil
				},
			},
			"placeOrder": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					orderID, err := r.checkout.PlaceOrder(p.Context, sessionFrom(p.Context))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return orderID, nil
				},
			},
			"createCustomer": &graphql.Field{
				Type: t.customer,
				Args: graphql.FieldConfigArgument{
					"email":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"firstname": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"lastname":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customer, err := r.customer.Register(p.Context, storefront.NewCustomer{
						Email:     argString(p.Args, "email"),
						Firstname: argString(p.Args, "firstname"),
						Lastname:  argString(p.Args, "lastname"),
						Password:  argString(p.Args, "password"),
					})
					if err != nil {
						return nil, present(r.logger, err)
					}
					return customer, nil
				},
			},
			"generateCustomerToken": &graphql.Field{
				Type: t.customer,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customer, err := r.customer.SignIn(p.Context, sessionFrom(p.Context),
						argString(p.Args, "email"),
						argString(p.Args, "password"),
					)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return customer, nil
				},
			},
			"revokeCustomerToken": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r.customer.SignOut(p.Context, sessionFrom(p.Context))
					return true, nil
				},
			},
			"updateCustomer": &graphql.Field{
				Type: t.customer,
				Args: graphql.FieldConfigArgument{
					"email":     &graphql.ArgumentConfig{Type: graphql.String},
					"firstname": &graphql.ArgumentConfig{Type: graphql.String},
					"lastname":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var update storefront.CustomerUpdate
					if v, ok := p.Args["email"].(string); ok {
						update.Email = &v
					}
					if v, ok := p.Args["firstname"].(string); ok {
						update.Firstname = &v
					}
					if v, ok := p.Args["lastname"].(string); ok {
						update.Lastname = &v
					}
					customer, err := r.customer.Update(p.Context, sessionFrom(p.Context), update)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return customer, nil
				},
			},
			"changeCustomerPassword": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"currentPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"newPassword":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					err := r.customer.ChangePassword(p.Context, sessionFrom(p.Context),
						argString(p.Args, "currentPassword"),
						argString(p.Args, "newPassword"),
					)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return true, nil
				},
			},
			"requestPasswordReset": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.customer.RequestPasswordReset(p.Context, argString(p.Args, "email")); err != nil {
						return nil, present(r.logger, err)
					}
					return true, nil
				},
			},
			"createCustomerAddress": &graphql.Field{
				Type: t.customer,
				Args: graphql.FieldConfigArgument{
					"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.addressInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					addr := decodeAddress(argObject(p.Args, "address"))
					customer, err := r.customer.CreateAddress(p.Context, sessionFrom(p.Context), addr)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return customer, nil
				},
			},
			"updateCustomerAddress": &graphql.Field{
				Type: t.customer,
				Args: graphql.FieldConfigArgument{
					"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.addressInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					addr := decodeAddress(argObject(p.Args, "address"))
					customer, err := r.customer.UpdateAddress(p.Context, sessionFrom(p.Context), addr)
					if err != nil {
						return nil, present(r.logger, err)
					}
					return customer, nil
				},
			},
			"deleteCustomerAddress": &graphql.Field{
				Type: t.customer,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customer, err := r.customer.DeleteAddress(p.Context, sessionFrom(p.Context), argInt(p.Args, "id"))
					if err != nil {
						return nil, present(r.logger, err)
					}
					return customer, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
