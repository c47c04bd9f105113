package storefront

import "context"

// CommercePlatform is the port to the remote commerce backend. It is defined
// here in the domain layer; the Magento implementation lives in the
// infrastructure layer (ports & adapters).
//
// Implementations are stateless per call: all cart operations are addressed
// through a CartRef and all customer operations through the customer token,
// so that the server-side session remains the only carrier of per-shopper
// state.
type CommercePlatform interface {
	// ---------------------------------------------------------------------------
	// Catalog
	// ---------------------------------------------------------------------------

	// CategoryTree returns the category tree rooted at rootID (0 = store root).
	CategoryTree(ctx context.Context, rootID int) (*Category, error)

	// Category returns a single category without children.
	Category(ctx context.Context, id int) (*Category, error)

	// SearchProducts runs a paginated, filtered product search.
	SearchProducts(ctx context.Context, q ProductQuery) (*ProductList, error)

	// ProductBySKU returns a single product by SKU.
	ProductBySKU(ctx context.Context, sku string) (*Product, error)

	// ProductByURLKey returns a single product by its url_key attribute.
	ProductByURLKey(ctx context.Context, urlKey string) (*Product, error)

	// ---------------------------------------------------------------------------
	// Cart
	// ---------------------------------------------------------------------------

	// CreateGuestCart creates an anonymous cart and returns its masked id.
	CreateGuestCart(ctx context.Context) (string, error)

	// CreateCustomerCart creates (or returns) the active cart of the customer
	// identified by token and returns its quote id.
	CreateCustomerCart(ctx context.Context, token string) (string, error)

	// Cart returns the cart with its totals. Cart body and totals are fetched
	// concurrently and merged after both complete.
	Cart(ctx context.Context, ref CartRef) (*Cart, error)

	// AddItem adds a line to the cart and returns the refreshed cart.
	AddItem(ctx context.Context, ref CartRef, input CartItemInput) (*Cart, error)

	// UpdateItem changes the quantity of an existing line.
	UpdateItem(ctx context.Context, ref CartRef, itemID int, input CartItemInput) (*Cart, error)

	// RemoveItem deletes a line from the cart.
	RemoveItem(ctx context.Context, ref CartRef, itemID int) (*Cart, error)

	// ApplyCoupon applies a coupon code to the cart.
	ApplyCoupon(ctx context.Context, ref CartRef, code string) (*Cart, error)

	// RemoveCoupon removes the coupon from the cart.
	RemoveCoupon(ctx context.Context, ref CartRef) (*Cart, error)

	// MergeGuestCart assigns the guest cart identified by maskedID to the
	// customer identified by token and returns the resulting customer cart id.
	MergeGuestCart(ctx context.Context, maskedID, token string) (string, error)

	// ---------------------------------------------------------------------------
	// Checkout
	// ---------------------------------------------------------------------------

	// EstimateShippingMethods quotes delivery options for an address.
	EstimateShippingMethods(ctx context.Context, ref CartRef, addr Address) ([]ShippingMethod, error)

	// SetShippingInformation stores addresses and shipping method on the cart
	// and returns the payment methods available afterwards.
	SetShippingInformation(ctx context.Context, ref CartRef, info ShippingInformation) ([]PaymentMethod, error)

	// PaymentMethods lists the payment options for the cart.
	PaymentMethods(ctx context.Context, ref CartRef) ([]PaymentMethod, error)

	// PlaceOrder converts the cart into an order and returns the order
	// increment id.
	PlaceOrder(ctx context.Context, ref CartRef, payment PaymentInput) (string, error)

	// ---------------------------------------------------------------------------
	// Customer
	// ---------------------------------------------------------------------------

	// CreateCustomer registers a new account.
	CreateCustomer(ctx context.Context, input NewCustomer) (*Customer, error)

	// CustomerToken exchanges credentials for a customer token.
	CustomerToken(ctx context.Context, email, password string) (string, error)

	// Customer returns the account owning the token.
	Customer(ctx context.Context, token string) (*Customer, error)

	// UpdateCustomer updates profile fields of the token's account.
	UpdateCustomer(ctx context.Context, token string, update CustomerUpdate) (*Customer, error)

	// ChangePassword changes the account password.
	ChangePassword(ctx context.Context, token, current, next string) error

	// RequestPasswordReset triggers the backend's reset email flow.
	RequestPasswordReset(ctx context.Context, email string) error

	// CreateAddress adds an address to the token's address book.
	CreateAddress(ctx context.Context, token string, addr Address) (*Customer, error)

	// UpdateAddress replaces an address in the token's address book.
	UpdateAddress(ctx context.Context, token string, addr Address) (*Customer, error)

	// DeleteAddress removes an address from the token's address book.
	DeleteAddress(ctx context.Context, token string, addressID int) (*Customer, error)

	// ---------------------------------------------------------------------------
	// Orders
	// ---------------------------------------------------------------------------

	// CustomerOrders lists orders of a customer, newest first.
	CustomerOrders(ctx context.Context, customerID, currentPage, pageSize int) (*OrderList, error)

	// Order returns a single order by backend entity id.
	Order(ctx context.Context, entityID int) (*Order, error)

	// ---------------------------------------------------------------------------
	// Directory
	// ---------------------------------------------------------------------------

	// Countries lists shippable countries with regions.
	Countries(ctx context.Context) ([]Country, error)

	// StoreConfig returns the active store configuration.
	StoreConfig(ctx context.Context) (*StoreConfig, error)
}
