package get_month_view

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: propertyID is required", ErrInvalidInput)
	}

	if req.Month != nil && (req.Month.Month < 1 || req.Month.Month > 12) {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	return nil
}
