package storefront

import (
	"context"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// fakePlatform is a programmable CommercePlatform for service tests. Only the
// function fields a test sets are exercised; calling an unset one panics and
// points at the missing expectation.
type fakePlatform struct {
	categoryTreeFn      func(ctx context.Context, rootID int) (*storefront.Category, error)
	categoryFn          func(ctx context.Context, id int) (*storefront.Category, error)
	searchProductsFn    func(ctx context.Context, q storefront.ProductQuery) (*storefront.ProductList, error)
	productBySKUFn      func(ctx context.Context, sku string) (*storefront.Product, error)
	productByURLKeyFn   func(ctx context.Context, urlKey string) (*storefront.Product, error)
	createGuestCartFn   func(ctx context.Context) (string, error)
	createCustomerCart  func(ctx context.Context, token string) (string, error)
	cartFn              func(ctx context.Context, ref storefront.CartRef) (*storefront.Cart, error)
	addItemFn           func(ctx context.Context, ref storefront.CartRef, input storefront.CartItemInput) (*storefront.Cart, error)
	updateItemFn        func(ctx context.Context, ref storefront.CartRef, itemID int, input storefront.CartItemInput) (*storefront.Cart, error)
	removeItemFn        func(ctx context.Context, ref storefront.CartRef, itemID int) (*storefront.Cart, error)
	applyCouponFn       func(ctx context.Context, ref storefront.CartRef, code string) (*storefront.Cart, error)
	removeCouponFn      func(ctx context.Context, ref storefront.CartRef) (*storefront.Cart, error)
	mergeGuestCartFn    func(ctx context.Context, maskedID, token string) (string, error)
	estimateShippingFn  func(ctx context.Context, ref storefront.CartRef, addr storefront.Address) ([]storefront.ShippingMethod, error)
	setShippingInfoFn   func(ctx context.Context, ref storefront.CartRef, info storefront.ShippingInformation) ([]storefront.PaymentMethod, error)
	paymentMethodsFn    func(ctx context.Context, ref storefront.CartRef) ([]storefront.PaymentMethod, error)
	placeOrderFn        func(ctx context.Context, ref storefront.CartRef, payment storefront.PaymentInput) (string, error)
	createCustomerFn    func(ctx context.Context, input storefront.NewCustomer) (*storefront.Customer, error)
	customerTokenFn     func(ctx context.Context, email, password string) (string, error)
	customerFn          func(ctx context.Context, token string) (*storefront.Customer, error)
	updateCustomerFn    func(ctx context.Context, token string, update storefront.CustomerUpdate) (*storefront.Customer, error)
	changePasswordFn    func(ctx context.Context, token, current, next string) error
	requestPwdResetFn   func(ctx context.Context, email string) error
	createAddressFn     func(ctx context.Context, token string, addr storefront.Address) (*storefront.Customer, error)
	updateAddressFn     func(ctx context.Context, token string, addr storefront.Address) (*storefront.Customer, error)
	deleteAddressFn     func(ctx context.Context, token string, addressID int) (*storefront.Customer, error)
	customerOrdersFn    func(ctx context.Context, customerID, currentPage, pageSize int) (*storefront.OrderList, error)
	orderFn             func(ctx context.Context, entityID int) (*storefront.Order, error)
	countriesFn         func(ctx context.Context) ([]storefront.Country, error)
	storeConfigFn       func(ctx context.Context) (*storefront.StoreConfig, error)
}

var _ storefront.CommercePlatform = (*fakePlatform)(nil)

func (f *fakePlatform) CategoryTree(ctx context.Context, rootID int) (*storefront.Category, error) {
	return f.categoryTreeFn(ctx, rootID)
}

func (f *fakePlatform) Category(ctx context.Context, id int) (*storefront.Category, error) {
	return f.categoryFn(ctx, id)
}

func (f *fakePlatform) SearchProducts(ctx context.Context, q storefront.ProductQuery) (*storefront.ProductList, error) {
	return f.searchProductsFn(ctx, q)
}

func (f *fakePlatform) ProductBySKU(ctx context.Context, sku string) (*storefront.Product, error) {
	return f.productBySKUFn(ctx, sku)
}

func (f *fakePlatform) ProductByURLKey(ctx context.Context, urlKey string) (*storefront.Product, error) {
	return f.productByURLKeyFn(ctx, urlKey)
}

func (f *fakePlatform) CreateGuestCart(ctx context.Context) (string, error) {
	return f.createGuestCartFn(ctx)
}

func (f *fakePlatform) CreateCustomerCart(ctx context.Context, token string) (string, error) {
	return f.createCustomerCart(ctx, token)
}

func (f *fakePlatform) Cart(ctx context.Context, ref storefront.CartRef) (*storefront.Cart, error) {
	return f.cartFn(ctx, ref)
}

func (f *fakePlatform) AddItem(ctx context.Context, ref storefront.CartRef, input storefront.CartItemInput) (*storefront.Cart, error) {
	return f.addItemFn(ctx, ref, input)
}

func (f *fakePlatform) UpdateItem(ctx context.Context, ref storefront.CartRef, itemID int, input storefront.CartItemInput) (*storefront.Cart, error) {
	return f.updateItemFn(ctx, ref, itemID, input)
}

func (f *fakePlatform) RemoveItem(ctx context.Context, ref storefront.CartRef, itemID int) (*storefront.Cart, error) {
	return f.removeItemFn(ctx, ref, itemID)
}

func (f *fakePlatform) ApplyCoupon(ctx context.Context, ref storefront.CartRef, code string) (*storefront.Cart, error) {
	return f.applyCouponFn(ctx, ref, code)
}

func (f *fakePlatform) RemoveCoupon(ctx context.Context, ref storefront.CartRef) (*storefront.Cart, error) {
	return f.removeCouponFn(ctx, ref)
}

func (f *fakePlatform) MergeGuestCart(ctx context.Context, maskedID, token string) (string, error) {
	return f.mergeGuestCartFn(ctx, maskedID, token)
}

func (f *fakePlatform) EstimateShippingMethods(ctx context.Context, ref storefront.CartRef, addr storefront.Address) ([]storefront.ShippingMethod, error) {
	return f.estimateShippingFn(ctx, ref, addr)
}

func (f *fakePlatform) SetShippingInformation(ctx context.Context, ref storefront.CartRef, info storefront.ShippingInformation) ([]storefront.PaymentMethod, error) {
	return f.setShippingInfoFn(ctx, ref, info)
}

func (f *fakePlatform) PaymentMethods(ctx context.Context, ref storefront.CartRef) ([]storefront.PaymentMethod, error) {
	return f.paymentMethodsFn(ctx, ref)
}

func (f *fakePlatform) PlaceOrder(ctx context.Context, ref storefront.CartRef, payment storefront.PaymentInput) (string, error) {
	return f.placeOrderFn(ctx, ref, payment)
}

func (f *fakePlatform) CreateCustomer(ctx context.Context, input storefront.NewCustomer) (*storefront.Customer, error) {
	return f.createCustomerFn(ctx, input)
}

func (f *fakePlatform) CustomerToken(ctx context.Context, email, password string) (string, error) {
	return f.customerTokenFn(ctx, email, password)
}

func (f *fakePlatform) Customer(ctx context.Context, token string) (*storefront.Customer, error) {
	return f.customerFn(ctx, token)
}

func (f *fakePlatform) UpdateCustomer(ctx context.Context, token string, update storefront.CustomerUpdate) (*storefront.Customer, error) {
	return f.updateCustomerFn(ctx, token, update)
}

func (f *fakePlatform) ChangePassword(ctx context.Context, token, current, next string) error {
	return f.changePasswordFn(ctx, token, current, next)
}

func (f *fakePlatform) RequestPasswordReset(ctx context.Context, email string) error {
	return f.requestPwdResetFn(ctx, email)
}

func (f *fakePlatform) CreateAddress(ctx context.Context, token string, addr storefront.Address) (*storefront.Customer, error) {
	return f.createAddressFn(ctx, token, addr)
}

func (f *fakePlatform) UpdateAddress(ctx context.Context, token string, addr storefront.Address) (*storefront.Customer, error) {
	return f.updateAddressFn(ctx, token, addr)
}

func (f *fakePlatform) DeleteAddress(ctx context.Context, token string, addressID int) (*storefront.Customer, error) {
	return f.deleteAddressFn(ctx, token, addressID)
}

func (f *fakePlatform) CustomerOrders(ctx context.Context, customerID, currentPage, pageSize int) (*storefront.OrderList, error) {
	return f.customerOrdersFn(ctx, customerID, currentPage, pageSize)
}

func (f *fakePlatform) Order(ctx context.Context, entityID int) (*storefront.Order, error) {
	return f.orderFn(ctx, entityID)
}

func (f *fakePlatform) Countries(ctx context.Context) ([]storefront.Country, error) {
	return f.countriesFn(ctx)
}

func (f *fakePlatform) StoreConfig(ctx context.Context) (*storefront.StoreConfig, error) {
	return f.storeConfigFn(ctx)
}
