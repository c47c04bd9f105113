package storefront

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/domain/storefront"
	"github.com/storefront/bridge/internal/infrastructure/session"
	"github.com/storefront/bridge/internal/infrastructure/telemetry"
)

// OrderService serves order history for signed-in shoppers. Order search on
// the backend is admin-scoped, so ownership is enforced here: a session only
// ever sees orders of its own customer id.
type OrderService struct {
	platform storefront.CommercePlatform
	logger   *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(platform storefront.CommercePlatform, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		platform: platform,
		logger:   logger.Named("order"),
	}
}

// Orders lists the signed-in customer's orders, newest first.
func (s *OrderService) Orders(ctx context.Context, sess *session.Session, currentPage, pageSize int) (*storefront.OrderList, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "list")
	defer span.End()

	if !sess.IsSignedIn() || sess.CustomerID == 0 {
		return nil, storefront.ErrUnauthorized
	}

	list, err := s.platform.CustomerOrders(ctx, sess.CustomerID, currentPage, pageSize)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return list, nil
}

// Order returns one of the signed-in customer's orders. An order belonging
// to another account is reported as not found, not as forbidden, to avoid
// confirming its existence.
func (s *OrderService) Order(ctx context.Context, sess *session.Session, entityID int) (*storefront.Order, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "get")
	defer span.End()

	if !sess.IsSignedIn() || sess.CustomerID == 0 {
		return nil, storefront.ErrUnauthorized
	}

	order, err := s.platform.Order(ctx, entityID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if order.CustomerID != sess.CustomerID {
		s.logger.Warn("order ownership mismatch",
			zap.Int("order_id", entityID),
			zap.Int("session_customer_id", sess.CustomerID),
		)
		return nil, storefront.ErrNotFound
	}
	return order, nil
}
