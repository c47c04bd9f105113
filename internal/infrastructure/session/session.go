package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// Session is the server-side state kept per shopper. It carries only what the
// bridge needs between calls: which backend cart to talk to, the customer
// token once signed in, checkout progress and the pinned display preferences.
type Session struct {
	ID            string        `json:"id"`
	CartID        string        `json:"cartId,omitempty"`
	CustomerToken string        `json:"customerToken,omitempty"`
	CustomerID    int           `json:"customerId,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	Timezone      string        `json:"timezone,omitempty"`
	Checkout      CheckoutState `json:"checkout,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CheckoutState is the checkout progress of the session's cart. The backend
// wants address and shipping method in one call, while the storefront sets
// them in separate steps; the intermediate picks live here.
type CheckoutState struct {
	ShippingAddress     *storefront.Address `json:"shippingAddress,omitempty"`
	BillingAddress      *storefront.Address `json:"billingAddress,omitempty"`
	CarrierCode         string              `json:"carrierCode,omitempty"`
	MethodCode          string              `json:"methodCode,omitempty"`
	PaymentMethod       string              `json:"paymentMethod,omitempty"`
	PurchaseOrderNumber string              `json:"purchaseOrderNumber,omitempty"`
	Email               string              `json:"email,omitempty"`
}

// New creates an empty session with a fresh id.
func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSignedIn reports whether the session holds a customer token.
func (s *Session) IsSignedIn() bool {
	return s.CustomerToken != ""
}

// HasCart reports whether a backend cart is attached.
func (s *Session) HasCart() bool {
	return s.CartID != ""
}

// CartRef builds the backend cart reference for this session. Signed-in
// sessions address the cart through the customer token; guests through the
// masked id.
func (s *Session) CartRef() storefront.CartRef {
	if s.IsSignedIn() {
		return storefront.CartRef{ID: s.CartID, CustomerToken: s.CustomerToken}
	}
	return storefront.CartRef{ID: s.CartID}
}

// DetachCart drops the cart and any checkout progress made on it.
func (s *Session) DetachCart() {
	s.CartID = ""
	s.Checkout = CheckoutState{}
}

// SignOut drops the customer identity. A customer cart is unreachable
// without the token, so the cart goes with it.
func (s *Session) SignOut() {
	s.CustomerToken = ""
	s.CustomerID = 0
	s.DetachCart()
}

// ExpireToken drops a customer token the backend no longer accepts. The
// guest cart (if any) would have been merged away at sign-in, so the cart id
// is cleared with it.
func (s *Session) ExpireToken() {
	s.CustomerToken = ""
	s.CustomerID = 0
	s.DetachCart()
}

// PinCurrency records the shopper's display currency. Changing currency
// invalidates the cart: backend totals are computed in the quote currency
// fixed at cart creation.
func (s *Session) PinCurrency(currency string) {
	if s.Currency == currency {
		return
	}
	s.Currency = currency
	s.DetachCart()
}

// Store persists sessions between requests.
type Store interface {
	// Get returns the session with the given id, or storefront.ErrNoSuchSession.
	Get(ctx context.Context, id string) (*Session, error)
	// Save writes the session, refreshing its TTL.
	Save(ctx context.Context, s *Session) error
	// Delete removes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error
}
