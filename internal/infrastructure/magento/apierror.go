package magento

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// restErrorBody is the error envelope returned by the Magento REST API.
// Parameters is either a positional array ("The maximum qty allowed is %1")
// or a name/value object ("No such entity with %fieldName = %fieldValue"),
// depending on the backend code path that produced the error.
type restErrorBody struct {
	Message    string          `json:"message"`
	Parameters json.RawMessage `json:"parameters"`
	Trace      string          `json:"trace"`
}

// expandMessage substitutes Magento message-template placeholders with the
// supplied parameters. Positional placeholders are 1-indexed (%1, %2, ...);
// named placeholders use the parameter key (%fieldName). Placeholders with no
// matching parameter are left intact.
func expandMessage(message string, rawParams json.RawMessage) string {
	if len(rawParams) == 0 || message == "" {
		return message
	}

	var positional []any
	if err := json.Unmarshal(rawParams, &positional); err == nil {
		for i, p := range positional {
			placeholder := "%" + strconv.Itoa(i+1)
			message = strings.ReplaceAll(message, placeholder, paramString(p))
		}
		return message
	}

	var named map[string]any
	if err := json.Unmarshal(rawParams, &named); err == nil {
		for name, p := range named {
			message = strings.ReplaceAll(message, "%"+name, paramString(p))
		}
	}
	return message
}

func paramString(p any) string {
	switch v := p.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// translateError maps a Magento REST error response onto the storefront error
// taxonomy. Magento has no machine-readable error codes on these endpoints,
// so 400-level classification falls back to matching well-known message
// fragments, which is backend-version dependent by necessity.
func translateError(status int, body []byte) error {
	var rest restErrorBody
	_ = json.Unmarshal(body, &rest)
	message := expandMessage(rest.Message, rest.Parameters)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}

	switch {
	case status >= 500:
		return fmt.Errorf("%w: %s", storefront.ErrBackendUnavailable, message)
	case status == 401 || status == 403:
		return fmt.Errorf("%w: %s", storefront.ErrUnauthorized, message)
	case status == 404:
		if matchesAny(message, "cartid", "quoteid", "cart") {
			return fmt.Errorf("%w: %s", storefront.ErrCartExpired, message)
		}
		return fmt.Errorf("%w: %s", storefront.ErrNotFound, message)
	case status == 400:
		return translateBadRequest(message)
	default:
		return fmt.Errorf("%w: %s", storefront.ErrBackendRequestFailed, message)
	}
}

// translateBadRequest classifies Magento 400 responses by message fragment.
func translateBadRequest(message string) error {
	switch {
	case matchesAny(message, "coupon"):
		return fmt.Errorf("%w: %s", storefront.ErrInvalidCoupon, message)
	case matchesAny(message, "requested qty", "qty is not available", "product is out of stock", "stock"):
		return fmt.Errorf("%w: %s", storefront.ErrInsufficientStock, message)
	case matchesAny(message, "same email", "already exists"):
		return fmt.Errorf("%w: %s", storefront.ErrCustomerExists, message)
	case matchesAny(message, "cart isn't active", "cart is not active"):
		return fmt.Errorf("%w: %s", storefront.ErrCartNotActive, message)
	case matchesAny(message, "no such entity"):
		return fmt.Errorf("%w: %s", storefront.ErrNotFound, message)
	default:
		return fmt.Errorf("%w: %s", storefront.ErrBackendRequestFailed, message)
	}
}

func matchesAny(message string, fragments ...string) bool {
	lower := strings.ToLower(message)
	for _, f := range fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
