package get_availability_range

import (
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// RecordResponse запись о дне, отличном от значения по умолчанию
type RecordResponse struct {
	Date          types.Date       `json:"date"`
	Status        string           `json:"status"`
	PriceOverride *decimal.Decimal `json:"priceOverride"`
}

// RangeResponse HTTP response model
type RangeResponse struct {
	PropertyID string           `json:"propertyId"`
	Start      types.Date       `json:"start"`
	End        types.Date       `json:"end"`
	Records    []RecordResponse `json:"records"`
}

func newRangeResponse(propertyID string, start, end types.Date, records []domain.DayAvailabilityRecord) *RangeResponse {
	resp := &RangeResponse{
		PropertyID: propertyID,
		Start:      start,
		End:        end,
		Records:    make([]RecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, RecordResponse{
			Date:          rec.Date,
			Status:        string(rec.Status),
			PriceOverride: rec.PriceOverride,
		})
	}
	return resp
}
