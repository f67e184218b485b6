package supabase

import (
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

const (
	getAvailabilityRPC    = "get_property_availability"
	updateAvailabilityRPC = "update_property_availability"
)

// GetAvailabilityRequest аргументы функции get_property_availability
type GetAvailabilityRequest struct {
	PropertyUUID string     `json:"property_uuid"`
	StartDate    types.Date `json:"start_date"`
	EndDate      types.Date `json:"end_date"`
}

// AvailabilityRow строка результата get_property_availability
type AvailabilityRow struct {
	Date   types.Date       `json:"date"`
	Status string           `json:"status"`
	Price  *decimal.Decimal `json:"price"`
}

// UpdateAvailabilityRequest аргументы функции update_property_availability.
// PriceOverride передается как null, чтобы сбросить цену.
type UpdateAvailabilityRequest struct {
	PropertyUUID  string           `json:"property_uuid"`
	DateToUpdate  types.Date       `json:"date_to_update"`
	NewStatus     string           `json:"new_status"`
	PriceOverride *decimal.Decimal `json:"price_override"`
}

// ErrorResponse модель ошибки PostgREST
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}
