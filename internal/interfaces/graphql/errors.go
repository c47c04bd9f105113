package graphql

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// Error categories surfaced in GraphQL error extensions. The storefront
// switches UI behavior on the category, not on the message.
const (
	categoryInput         = "graphql-input"
	categoryAuthorization = "graphql-authorization"
	categoryNoSuchEntity  = "graphql-no-such-entity"
	categoryAlreadyExists = "graphql-already-exists"
	categoryUnavailable   = "graphql-service-unavailable"
	categoryInternal      = "graphql-internal"
)

// presentedError is an error with a GraphQL extensions payload. graphql-go
// picks up Extensions() when formatting resolver errors.
type presentedError struct {
	message  string
	category string
}

func (e *presentedError) Error() string { return e.message }

func (e *presentedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"category": e.category}
}

// present maps a service error onto the wire shape. User-facing errors keep
// their message; everything else is logged and replaced with a generic one.
func present(logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, storefront.ErrInvalidInput),
		errors.Is(err, storefront.ErrInvalidCoupon),
		errors.Is(err, storefront.ErrInsufficientStock),
		errors.Is(err, storefront.ErrNoActiveCart),
		errors.Is(err, storefront.ErrCartNotActive):
		return &presentedError{message: shopperMessage(err), category: categoryInput}

	case errors.Is(err, storefront.ErrInvalidCredentials),
		errors.Is(err, storefront.ErrUnauthorized),
		errors.Is(err, storefront.ErrNoSuchSession):
		return &presentedError{message: shopperMessage(err), category: categoryAuthorization}

	case errors.Is(err, storefront.ErrNotFound),
		errors.Is(err, storefront.ErrCartExpired):
		return &presentedError{message: shopperMessage(err), category: categoryNoSuchEntity}

	case errors.Is(err, storefront.ErrCustomerExists):
		return &presentedError{message: shopperMessage(err), category: categoryAlreadyExists}

	case errors.Is(err, storefront.ErrBackendUnavailable):
		logger.Warn("backend unavailable", zap.Error(err))
		return &presentedError{
			message:  "The store is temporarily unavailable. Please try again shortly.",
			category: categoryUnavailable,
		}

	default:
		logger.Error("internal error", zap.Error(err))
		return &presentedError{
			message:  "An internal error occurred.",
			category: categoryInternal,
		}
	}
}

// shopperMessage strips the package prefix from a sentinel-based message.
func shopperMessage(err error) string {
	return strings.TrimPrefix(err.Error(), "storefront: ")
}
