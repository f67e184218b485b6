package availability

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// cachedRecord формат записи дня в Redis
type cachedRecord struct {
	Date          types.Date       `json:"date"`
	Status        string           `json:"status"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

func toCached(records []domain.DayAvailabilityRecord) []cachedRecord {
	out := make([]cachedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, cachedRecord{
			Date:          rec.Date,
			Status:        string(rec.Status),
			PriceOverride: rec.PriceOverride,
		})
	}
	return out
}

func fromCached(propertyID uuid.UUID, cached []cachedRecord) []domain.DayAvailabilityRecord {
	out := make([]domain.DayAvailabilityRecord, 0, len(cached))
	for _, c := range cached {
		out = append(out, domain.DayAvailabilityRecord{
			PropertyID:    propertyID,
			Date:          c.Date,
			Status:        domain.DayStatus(c.Status),
			PriceOverride: c.PriceOverride,
		})
	}
	return out
}
