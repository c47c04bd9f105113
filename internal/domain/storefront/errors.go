package storefront

import "errors"

// ---------------------------------------------------------------------------
// Backend errors
// ---------------------------------------------------------------------------

var (
	// ErrBackendUnavailable indicates the commerce backend could not be reached
	// or answered with a 5xx status.
	ErrBackendUnavailable = errors.New("storefront: backend temporarily unavailable")
	// ErrBackendRequestFailed indicates the backend rejected the request for a
	// reason that is not actionable by the shopper.
	ErrBackendRequestFailed = errors.New("storefront: backend request failed")
	// ErrBackendInvalidResponse indicates the backend returned a payload that
	// could not be decoded.
	ErrBackendInvalidResponse = errors.New("storefront: invalid backend response")
	// ErrUnauthorized indicates a missing, expired or revoked token.
	ErrUnauthorized = errors.New("storefront: unauthorized")
	// ErrNotFound indicates the requested entity does not exist on the backend.
	ErrNotFound = errors.New("storefront: entity not found")
)

// ---------------------------------------------------------------------------
// Shopper-facing errors
// ---------------------------------------------------------------------------

var (
	// ErrInvalidCoupon indicates the coupon code was rejected by the backend.
	ErrInvalidCoupon = errors.New("storefront: coupon code is not valid")
	// ErrInsufficientStock indicates the requested quantity is not available.
	ErrInsufficientStock = errors.New("storefront: requested quantity is not available")
	// ErrCartExpired indicates the cart quote no longer exists on the backend.
	ErrCartExpired = errors.New("storefront: cart is no longer active")
	// ErrCartNotActive is returned for operations on a cart the backend has
	// already converted to an order.
	ErrCartNotActive = errors.New("storefront: cart has already been ordered")
	// ErrInvalidCredentials indicates a failed sign-in attempt.
	ErrInvalidCredentials = errors.New("storefront: invalid email or password")
	// ErrCustomerExists indicates a registration with an email that is already
	// taken.
	ErrCustomerExists = errors.New("storefront: customer account already exists")
	// ErrNoSuchSession indicates the session id is unknown or expired.
	ErrNoSuchSession = errors.New("storefront: session not found")
	// ErrNoActiveCart indicates an operation that requires a cart was issued on
	// a session without one.
	ErrNoActiveCart = errors.New("storefront: no active cart in session")
	// ErrInvalidInput indicates a request that failed input validation before
	// reaching the backend.
	ErrInvalidInput = errors.New("storefront: invalid input")
)

// userFacing is the set of errors whose message may be shown to the shopper
// verbatim. Everything else is logged and replaced with a generic message at
// the API boundary.
var userFacing = []error{
	ErrInvalidCoupon,
	ErrInsufficientStock,
	ErrCartExpired,
	ErrCartNotActive,
	ErrInvalidCredentials,
	ErrCustomerExists,
	ErrNoActiveCart,
	ErrInvalidInput,
	ErrNotFound,
	ErrUnauthorized,
}

// UserFacing reports whether err (or anything it wraps) is safe to present to
// the shopper.
func UserFacing(err error) bool {
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
