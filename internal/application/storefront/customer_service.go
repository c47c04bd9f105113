package storefront

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/domain/storefront"
	"github.com/storefront/bridge/internal/infrastructure/session"
	"github.com/storefront/bridge/internal/infrastructure/telemetry"
)

// CustomerService orchestrates account operations and the session side of the
// customer token lifecycle.
type CustomerService struct {
	platform storefront.CommercePlatform
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(platform storefront.CommercePlatform, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		platform: platform,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.Named("customer"),
	}
}

// Register creates a new account. The shopper is not signed in afterwards;
// the storefront follows up with a SignIn.
func (s *CustomerService) Register(ctx context.Context, input storefront.NewCustomer) (*storefront.Customer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "register")
	defer span.End()

	if err := s.validate.Struct(input); err != nil {
		return nil, invalidInput(err)
	}

	customer, err := s.platform.CreateCustomer(ctx, input)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.logger.Info("customer registered", zap.Int("customer_id", customer.ID))
	return customer, nil
}

// SignIn exchanges credentials for a customer token and binds it to the
// session. A guest cart attached to the session is merged into the
// customer's cart; if the merge fails the sign-in still succeeds and the
// guest cart is abandoned.
func (s *CustomerService) SignIn(ctx context.Context, sess *session.Session, email, password string) (*storefront.Customer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "sign_in")
	defer span.End()

	token, err := s.platform.CustomerToken(ctx, email, password)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	guestCartID := ""
	if sess.HasCart() && !sess.IsSignedIn() {
		guestCartID = sess.CartID
	}

	sess.DetachCart()
	sess.CustomerToken = token

	customer, err := s.platform.Customer(ctx, token)
	if err != nil {
		telemetry.RecordError(span, err)
		sess.ExpireToken()
		return nil, err
	}
	sess.CustomerID = customer.ID

	if guestCartID != "" {
		cartID, err := s.platform.MergeGuestCart(ctx, guestCartID, token)
		if err != nil {
			s.logger.Warn("guest cart merge failed, abandoning guest cart",
				zap.String("guest_cart_id", guestCartID),
				zap.Error(err),
			)
		} else {
			sess.CartID = cartID
		}
	}

	s.logger.Info("customer signed in", zap.Int("customer_id", customer.ID))
	return customer, nil
}

// SignOut drops the customer identity from the session. The backend token is
// simply forgotten; Magento customer tokens cannot be revoked by the holder.
func (s *CustomerService) SignOut(_ context.Context, sess *session.Session) {
	sess.SignOut()
}

// Me returns the signed-in customer. A token the backend no longer accepts
// clears the session's identity and surfaces ErrUnauthorized.
func (s *CustomerService) Me(ctx context.Context, sess *session.Session) (*storefront.Customer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "me")
	defer span.End()

	if !sess.IsSignedIn() {
		return nil, storefront.ErrUnauthorized
	}

	customer, err := s.platform.Customer(ctx, sess.CustomerToken)
	if err != nil {
		return nil, s.handleTokenError(sess, err)
	}
	return customer, nil
}

// Update changes profile fields of the signed-in customer.
func (s *CustomerService) Update(ctx context.Context, sess *session.Session, update storefront.CustomerUpdate) (*storefront.Customer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "update")
	defer span.End()

	if !sess.IsSignedIn() {
		return nil, storefront.ErrUnauthorized
	}
	if err := s.validate.Struct(update); err != nil {
		return nil, invalidInput(err)
	}

	customer, err := s.platform.UpdateCustomer(ctx, sess.CustomerToken, update)
	if err != nil {
		return nil, s.handleTokenError(sess, err)
	}
	return customer, nil
}

// ChangePassword changes the signed-in customer's password. The backend
// invalidates all tokens for the account, so the session token is refreshed
// with the new credentials.
func (s *CustomerService) ChangePassword(ctx context.Context, sess *session.Session, current, next string) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "change_password")
	defer span.End()

	if !sess.IsSignedIn() {
		return storefront.ErrUnauthorized
	}
	if len(next) < 8 {
		return invalidInputMessage("password must be at least 8 characters")
	}

	customer, err := s.platform.Customer(ctx, sess.CustomerToken)
	if err != nil {
		return s.handleTokenError(sess, err)
	}
	if err := s.platform.ChangePassword(ctx, sess.CustomerToken, current, next); err != nil {
		return s.handleTokenError(sess, err)
	}

	token, err := s.platform.CustomerToken(ctx, customer.Email, next)
	if err != nil {
		sess.ExpireToken()
		return err
	}
	sess.CustomerToken = token
	return nil
}

// RequestPasswordReset triggers the backend's reset email flow for the given
// address. It succeeds regardless of whether the account exists.
func (s *CustomerService) RequestPasswordReset(ctx context.Context, email string) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "request_password_reset")
	defer span.End()

	if email == "" {
		return invalidInputMessage("email must not be empty")
	}
	return s.platform.RequestPasswordReset(ctx, email)
}

// CreateAddress adds an address to the signed-in customer's address book.
func (s *CustomerService) CreateAddress(ctx context.Context, sess *session.Session, addr storefront.Address) (*storefront.Customer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "create_address")
	defer span.End()

	if !sess.IsSignedIn() {
		return nil, storefront.ErrUnauthorized
	}
	if err := s.validate.Struct(addr); err != nil {
		return nil, invalidInput(err)
	}

	customer, err := s.platform.CreateAddress(ctx, sess.CustomerToken, addr)
	if err != nil {
		return nil, s.handleTokenError(sess, err)
	}
	return customer, nil
}

// UpdateAddress replaces an address in the signed-in customer's address book.
func (s *CustomerService) UpdateAddress(ctx context.Context, sess *session.Session, addr storefront.Address) (*storefront.Customer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "update_address")
	defer span.End()

	if !sess.IsSignedIn() {
		return nil, storefront.ErrUnauthorized
	}
	if addr.ID == 0 {
		return nil, invalidInputMessage("address id is required")
	}
	if err := s.validate.Struct(addr); err != nil {
		return nil, invalidInput(err)
	}

	customer, err := s.platform.UpdateAddress(ctx, sess.CustomerToken, addr)
	if err != nil {
		return nil, s.handleTokenError(sess, err)
	}
	return customer, nil
}

// DeleteAddress removes an address from the signed-in customer's address book.
func (s *CustomerService) DeleteAddress(ctx context.Context, sess *session.Session, addressID int) (*storefront.Customer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "delete_address")
	defer span.End()

	if !sess.IsSignedIn() {
		return nil, storefront.ErrUnauthorized
	}

	customer, err := s.platform.DeleteAddress(ctx, sess.CustomerToken, addressID)
	if err != nil {
		return nil, s.handleTokenError(sess, err)
	}
	return customer, nil
}

// handleTokenError clears an expired customer identity from the session so
// the storefront can prompt a fresh sign-in.
func (s *CustomerService) handleTokenError(sess *session.Session, err error) error {
	if errors.Is(err, storefront.ErrUnauthorized) {
		s.logger.Info("customer token no longer accepted, clearing session identity",
			zap.Int("customer_id", sess.CustomerID),
		)
		sess.ExpireToken()
	}
	return err
}
