package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property represents a rentable chalet or farm.
// The calendar reads it only for its owner and default nightly price.
type Property struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	City          string
	PricePerNight decimal.Decimal
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the given user owns the property
func (p *Property) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

// PropertyFilter filter for the property list
type PropertyFilter struct {
	OwnerID    *uuid.UUID
	City       *string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	ActiveOnly bool
	Limit      uint64
}

// PropertyUpdate partial update of a property made by its owner.
// Nil fields are left unchanged.
type PropertyUpdate struct {
	Name          *string
	City          *string
	PricePerNight *decimal.Decimal
	IsActive      *bool
}

// IsEmpty returns true if the update changes nothing
func (u PropertyUpdate) IsEmpty() bool {
	return u.Name == nil && u.City == nil && u.PricePerNight == nil && u.IsActive == nil
}
