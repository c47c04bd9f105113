package storefront

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/domain/storefront"
	"github.com/storefront/bridge/internal/infrastructure/session"
	"github.com/storefront/bridge/internal/infrastructure/telemetry"
)

// CheckoutService orchestrates the checkout steps over the session's cart.
// The storefront sets address, shipping method and payment in separate
// steps while the backend wants address and method in a single call, so the
// intermediate picks are parked on the session until the step that needs
// them.
type CheckoutService struct {
	platform storefront.CommercePlatform
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(platform storefront.CommercePlatform, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		platform: platform,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.Named("checkout"),
	}
}

// EstimateShipping quotes delivery options for an address against the
// session's cart.
func (s *CheckoutService) EstimateShipping(ctx context.Context, sess *session.Session, addr storefront.Address) ([]storefront.ShippingMethod, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "estimate_shipping")
	defer span.End()

	if !sess.HasCart() {
		return nil, storefront.ErrNoActiveCart
	}
	if addr.CountryID == "" {
		return nil, invalidInputMessage("country is required to estimate shipping")
	}

	methods, err := s.platform.EstimateShippingMethods(ctx, sess.CartRef(), addr)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return methods, nil
}

// SetShippingAddress stores the shipping (and optionally billing) address on
// the session and returns the delivery options available for it. The
// addresses reach the backend in the SetShippingMethod step.
func (s *CheckoutService) SetShippingAddress(ctx context.Context, sess *session.Session, shipping storefront.Address, billing *storefront.Address) ([]storefront.ShippingMethod, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "set_shipping_address")
	defer span.End()

	if !sess.HasCart() {
		return nil, storefront.ErrNoActiveCart
	}
	if err := s.validate.Struct(shipping); err != nil {
		return nil, invalidInput(err)
	}
	if billing != nil {
		if err := s.validate.Struct(*billing); err != nil {
			return nil, invalidInput(err)
		}
	}

	methods, err := s.platform.EstimateShippingMethods(ctx, sess.CartRef(), shipping)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	sess.Checkout.ShippingAddress = &shipping
	sess.Checkout.BillingAddress = billing
	return methods, nil
}

// SetShippingMethod pushes the stored addresses plus the chosen method to
// the backend and returns the payment methods available afterwards.
func (s *CheckoutService) SetShippingMethod(ctx context.Context, sess *session.Session, carrierCode, methodCode string) ([]storefront.PaymentMethod, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "set_shipping_method")
	defer span.End()

	if !sess.HasCart() {
		return nil, storefront.ErrNoActiveCart
	}
	if sess.Checkout.ShippingAddress == nil {
		return nil, invalidInputMessage("set a shipping address before choosing a method")
	}
	if carrierCode == "" || methodCode == "" {
		return nil, invalidInputMessage("carrier and method codes are required")
	}

	billing := sess.Checkout.BillingAddress
	if billing == nil {
		billing = sess.Checkout.ShippingAddress
	}
	info := storefront.ShippingInformation{
		ShippingAddress: *sess.Checkout.ShippingAddress,
		BillingAddress:  *billing,
		CarrierCode:     carrierCode,
		MethodCode:      methodCode,
	}

	methods, err := s.platform.SetShippingInformation(ctx, sess.CartRef(), info)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	sess.Checkout.CarrierCode = carrierCode
	sess.Checkout.MethodCode = methodCode
	return methods, nil
}

// PaymentMethods lists the payment options for the session's cart.
func (s *CheckoutService) PaymentMethods(ctx context.Context, sess *session.Session) ([]storefront.PaymentMethod, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "payment_methods")
	defer span.End()

	if !sess.HasCart() {
		return nil, storefront.ErrNoActiveCart
	}

	methods, err := s.platform.PaymentMethods(ctx, sess.CartRef())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return methods, nil
}

// SetPaymentMethod parks the payment selection on the session. Guest
// checkouts carry the shopper's email here.
func (s *CheckoutService) SetPaymentMethod(_ context.Context, sess *session.Session, payment storefront.PaymentInput) error {
	if !sess.HasCart() {
		return storefront.ErrNoActiveCart
	}
	if err := s.validate.Struct(payment); err != nil {
		return invalidInput(err)
	}
	if !sess.IsSignedIn() && payment.Email == "" {
		return invalidInputMessage("email is required for guest checkout")
	}

	sess.Checkout.PaymentMethod = payment.Method
	sess.Checkout.PurchaseOrderNumber = payment.PurchaseOrderNumber
	sess.Checkout.Email = payment.Email
	return nil
}

// PlaceOrder converts the session's cart into an order using the parked
// payment selection, then detaches the cart from the session.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sess *session.Session) (string, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place_order")
	defer span.End()

	if !sess.HasCart() {
		return "", storefront.ErrNoActiveCart
	}
	if sess.Checkout.PaymentMethod == "" {
		return "", invalidInputMessage("set a payment method before placing the order")
	}

	payment := storefront.PaymentInput{
		Method:              sess.Checkout.PaymentMethod,
		PurchaseOrderNumber: sess.Checkout.PurchaseOrderNumber,
		Email:               sess.Checkout.Email,
	}
	orderID, err := s.platform.PlaceOrder(ctx, sess.CartRef(), payment)
	if err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}

	// The backend consumed the quote; the session starts fresh.
	sess.DetachCart()

	s.logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.Bool("guest", !sess.IsSignedIn()),
	)
	return orderID, nil
}
