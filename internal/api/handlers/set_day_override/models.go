package set_day_override

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	setDayOverride "github.com/MutasemKharma/reva-chalets/internal/usecase/set_day_override"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// SetDayOverrideRequest HTTP request model
type SetDayOverrideRequest struct {
	Status        string           `json:"status"`                  // available, booked, maintenance, blocked
	PriceOverride *decimal.Decimal `json:"priceOverride,omitempty"` // null возвращает цену объекта
}

// DayResponse HTTP response model
type DayResponse struct {
	PropertyID     string           `json:"propertyId"`
	Date           types.Date       `json:"date"`
	Status         string           `json:"status"`
	PriceOverride  *decimal.Decimal `json:"priceOverride"`
	EffectivePrice decimal.Decimal  `json:"effectivePrice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetDayOverrideRequest) ToUseCaseRequest(userID, propertyID uuid.UUID, date types.Date) *setDayOverride.Request {
	return &setDayOverride.Request{
		UserID:        userID,
		PropertyID:    propertyID,
		Date:          date,
		Status:        r.Status,
		PriceOverride: r.PriceOverride,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *setDayOverride.Response) *DayResponse {
	return &DayResponse{
		PropertyID:     resp.PropertyID.String(),
		Date:           resp.Date,
		Status:         string(resp.Status),
		PriceOverride:  resp.PriceOverride,
		EffectivePrice: resp.EffectivePrice,
	}
}
