package storefront

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/domain/storefront"
	"github.com/storefront/bridge/internal/infrastructure/session"
	"github.com/storefront/bridge/internal/infrastructure/telemetry"
)

// CartService orchestrates cart operations over the backend and the shopper
// session. Carts are created lazily: a session gets a backend cart on the
// first operation that needs one, not on session creation.
type CartService struct {
	platform storefront.CommercePlatform
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCartService creates a CartService.
func NewCartService(platform storefront.CommercePlatform, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		platform: platform,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.Named("cart"),
	}
}

// Cart returns the session's cart, or nil when the session has none yet.
// A cart the backend reports as expired is detached from the session.
func (s *CartService) Cart(ctx context.Context, sess *session.Session) (*storefront.Cart, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "get")
	defer span.End()

	if !sess.HasCart() {
		return nil, nil
	}

	cart, err := s.platform.Cart(ctx, sess.CartRef())
	if err != nil {
		return nil, s.handleCartError(sess, span, err)
	}
	return cart, nil
}

// CreateCart attaches a cart to the session, creating one on the backend if
// needed, and returns its id.
func (s *CartService) CreateCart(ctx context.Context, sess *session.Session) (string, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "create")
	defer span.End()

	if sess.HasCart() {
		return sess.CartID, nil
	}
	if err := s.ensureCart(ctx, sess); err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}
	return sess.CartID, nil
}

// AddItem adds a product to the session's cart, creating the cart first if
// the session has none.
func (s *CartService) AddItem(ctx context.Context, sess *session.Session, input storefront.CartItemInput) (*storefront.Cart, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "add_item")
	defer span.End()

	if err := s.validate.Struct(input); err != nil {
		return nil, invalidInput(err)
	}
	if !input.Qty.IsPositive() {
		return nil, invalidInputMessage("quantity must be positive")
	}
	if err := s.ensureCart(ctx, sess); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	cart, err := s.platform.AddItem(ctx, sess.CartRef(), input)
	if err != nil {
		return nil, s.handleCartError(sess, span, err)
	}
	return cart, nil
}

// UpdateItem changes the quantity of an existing cart line.
func (s *CartService) UpdateItem(ctx context.Context, sess *session.Session, itemID int, input storefront.CartItemInput) (*storefront.Cart, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "update_item")
	defer span.End()

	if err := s.validate.Struct(input); err != nil {
		return nil, invalidInput(err)
	}
	if !input.Qty.IsPositive() {
		return nil, invalidInputMessage("quantity must be positive")
	}
	if !sess.HasCart() {
		return nil, storefront.ErrNoActiveCart
	}

	cart, err := s.platform.UpdateItem(ctx, sess.CartRef(), itemID, input)
	if err != nil {
		return nil, s.handleCartError(sess, span, err)
	}
	return cart, nil
}

// RemoveItem deletes a line from the session's cart.
func (s *CartService) RemoveItem(ctx context.Context, sess *session.Session, itemID int) (*storefront.Cart, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "remove_item")
	defer span.End()

	if !sess.HasCart() {
		return nil, storefront.ErrNoActiveCart
	}

	cart, err := s.platform.RemoveItem(ctx, sess.CartRef(), itemID)
	if err != nil {
		return nil, s.handleCartError(sess, span, err)
	}
	return cart, nil
}

// ApplyCoupon applies a coupon code to the session's cart.
func (s *CartService) ApplyCoupon(ctx context.Context, sess *session.Session, code string) (*storefront.Cart, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "apply_coupon")
	defer span.End()

	if code == "" {
		return nil, invalidInputMessage("coupon code must not be empty")
	}
	if !sess.HasCart() {
		return nil, storefront.ErrNoActiveCart
	}

	cart, err := s.platform.ApplyCoupon(ctx, sess.CartRef(), code)
	if err != nil {
		return nil, s.handleCartError(sess, span, err)
	}
	return cart, nil
}

// RemoveCoupon removes the applied coupon from the session's cart.
func (s *CartService) RemoveCoupon(ctx context.Context, sess *session.Session) (*storefront.Cart, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "remove_coupon")
	defer span.End()

	if !sess.HasCart() {
		return nil, storefront.ErrNoActiveCart
	}

	cart, err := s.platform.RemoveCoupon(ctx, sess.CartRef())
	if err != nil {
		return nil, s.handleCartError(sess, span, err)
	}
	return cart, nil
}

// PinCurrency records the shopper's display currency on the session. A
// currency change detaches the cart: backend totals are computed in the quote
// currency fixed at cart creation, so the old cart cannot be re-priced.
func (s *CartService) PinCurrency(sess *session.Session, currency string) {
	if sess.Currency != currency && sess.HasCart() {
		s.logger.Info("currency changed, detaching cart",
			zap.String("from", sess.Currency),
			zap.String("to", currency),
		)
	}
	sess.PinCurrency(currency)
}

// ensureCart creates a backend cart for the session if it has none.
func (s *CartService) ensureCart(ctx context.Context, sess *session.Session) error {
	if sess.HasCart() {
		return nil
	}

	var (
		cartID string
		err    error
	)
	if sess.IsSignedIn() {
		cartID, err = s.platform.CreateCustomerCart(ctx, sess.CustomerToken)
	} else {
		cartID, err = s.platform.CreateGuestCart(ctx)
	}
	if err != nil {
		return err
	}
	sess.CartID = cartID
	return nil
}

// handleCartError detaches carts the backend no longer serves. The next
// operation will create a fresh one.
func (s *CartService) handleCartError(sess *session.Session, span trace.Span, err error) error {
	telemetry.RecordError(span, err)
	if errors.Is(err, storefront.ErrCartExpired) || errors.Is(err, storefront.ErrCartNotActive) {
		s.logger.Info("cart no longer usable, detaching from session",
			zap.String("cart_id", sess.CartID),
			zap.Error(err),
		)
		sess.DetachCart()
	}
	return err
}
