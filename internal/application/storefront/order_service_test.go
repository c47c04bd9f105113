package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/bridge/internal/domain/storefront"
	"github.com/storefront/bridge/internal/infrastructure/session"
)

func signedInSession() *session.Session {
	sess := session.New()
	sess.CustomerToken = "tok"
	sess.CustomerID = 7
	return sess
}

func TestOrdersRequireSignIn(t *testing.T) {
	svc := NewOrderService(&fakePlatform{}, nil)

	_, err := svc.Orders(context.Background(), session.New(), 1, 20)
	assert.ErrorIs(t, err, storefront.ErrUnauthorized)
}

func TestOrdersScopedToSessionCustomer(t *testing.T) {
	platform := &fakePlatform{
		customerOrdersFn: func(_ context.Context, customerID, currentPage, pageSize int) (*storefront.OrderList, error) {
			assert.Equal(t, 7, customerID)
			return &storefront.OrderList{TotalCount: 2}, nil
		},
	}
	svc := NewOrderService(platform, nil)

	list, err := svc.Orders(context.Background(), signedInSession(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalCount)
}

func TestOrderOwnershipEnforced(t *testing.T) {
	platform := &fakePlatform{
		orderFn: func(_ context.Context, entityID int) (*storefront.Order, error) {
			return &storefront.Order{EntityID: entityID, CustomerID: 99}, nil
		},
	}
	svc := NewOrderService(platform, nil)

	// Another customer's order is reported as not found, not forbidden.
	_, err := svc.Order(context.Background(), signedInSession(), 5)
	assert.ErrorIs(t, err, storefront.ErrNotFound)
}

func TestOrderOwnedBySession(t *testing.T) {
	platform := &fakePlatform{
		orderFn: func(_ context.Context, entityID int) (*storefront.Order, error) {
			return &storefront.Order{EntityID: entityID, CustomerID: 7, IncrementID: "000000005"}, nil
		},
	}
	svc := NewOrderService(platform, nil)

	order, err := svc.Order(context.Background(), signedInSession(), 5)
	require.NoError(t, err)
	assert.Equal(t, "000000005", order.IncrementID)
}
