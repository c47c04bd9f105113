package storefront

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// invalidInput wraps a validation failure into the input error of the domain
// taxonomy, keeping the offending fields in the message.
func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", storefront.ErrInvalidInput, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", storefront.ErrInvalidInput, err)
}

// invalidInputMessage builds an input error with a fixed message.
func invalidInputMessage(msg string) error {
	return fmt.Errorf("%w: %s", storefront.ErrInvalidInput, msg)
}
