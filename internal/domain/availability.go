package domain

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// DayStatus represents the status of a single calendar day
type DayStatus string

const (
	DayStatusAvailable   DayStatus = "available"
	DayStatusBooked      DayStatus = "booked"
	DayStatusMaintenance DayStatus = "maintenance"
	DayStatusBlocked     DayStatus = "blocked"
)

// IsValid returns true for a status an owner may set
func (s DayStatus) IsValid() bool {
	return slices.Contains(EditableStatuses, s)
}

// DayAvailabilityRecord is a point record keyed by (PropertyID, Date).
// A date without a record is available at the default price.
type DayAvailabilityRecord struct {
	PropertyID    uuid.UUID
	Date          types.Date
	Status        DayStatus
	PriceOverride *decimal.Decimal
}

// IsDefault returns true if the record carries no information beyond the defaults
func (r *DayAvailabilityRecord) IsDefault() bool {
	return r.Status == DayStatusAvailable && r.PriceOverride == nil
}

// EffectivePrice returns the override if present, otherwise the default price
func (r *DayAvailabilityRecord) EffectivePrice(defaultPrice decimal.Decimal) decimal.Decimal {
	if r.PriceOverride != nil {
		return *r.PriceOverride
	}
	return defaultPrice
}
