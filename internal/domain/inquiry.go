package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// InquiryStatus represents the status of a guest inquiry
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusResponded InquiryStatus = "responded"
	InquiryStatusConfirmed InquiryStatus = "confirmed"
	InquiryStatusDeclined  InquiryStatus = "declined"
)

// IsValid returns true for one of the known statuses
func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusConfirmed, InquiryStatusDeclined:
		return true
	}
	return false
}

// Inquiry is a guest request for a stay at a property
type Inquiry struct {
	ID            uuid.UUID
	PropertyID    uuid.UUID
	OwnerID       uuid.UUID
	GuestID       *uuid.UUID
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	Message       *string
	CheckIn       types.Date
	CheckOut      types.Date
	GuestsCount   int
	Status        InquiryStatus
	OwnerResponse *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nights returns the number of nights between check-in and check-out
func (i *Inquiry) Nights() int {
	return i.CheckIn.DaysUntil(i.CheckOut)
}

// EstimatedTotal returns nights multiplied by the nightly price
func (i *Inquiry) EstimatedTotal(pricePerNight decimal.Decimal) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(i.Nights())))
}

// InquiryFilter filter for the owner's inquiry list
type InquiryFilter struct {
	OwnerID uuid.UUID
	Status  *InquiryStatus
	Limit   uint64
}
