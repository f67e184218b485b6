package set_day_override

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: propertyID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.DayStatus(req.Status).IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.PriceOverride != nil && !req.PriceOverride.IsPositive() {
		return fmt.Errorf("%w: priceOverride must be a positive number", ErrInvalidInput)
	}

	return nil
}
