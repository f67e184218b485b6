package get_month_view

import (
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	getMonthView "github.com/MutasemKharma/reva-chalets/internal/usecase/get_month_view"
)

// MonthViewResponse HTTP response model
type MonthViewResponse struct {
	PropertyID   string                      `json:"propertyId"`
	PropertyName string                      `json:"propertyName"`
	DefaultPrice decimal.Decimal             `json:"defaultPrice"`
	Calendar     *handlers.MonthViewResponse `json:"calendar"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getMonthView.Response) *MonthViewResponse {
	return &MonthViewResponse{
		PropertyID:   resp.Property.ID.String(),
		PropertyName: resp.Property.Name,
		DefaultPrice: resp.Property.PricePerNight,
		Calendar:     handlers.FromMonthView(resp.View),
	}
}
