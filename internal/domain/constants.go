package domain

// Inquiry validation constants
const (
	MaxInquiryMessageLength = 2000
	MaxOwnerResponseLength  = 2000
	MinInquiryGuests        = 1
	MaxInquiryGuests        = 100
	OwnerInquiriesLimit     = 50
)

// EditableStatuses statuses an owner may set on a single day.
var EditableStatuses = []DayStatus{
	DayStatusAvailable,
	DayStatusBooked,
	DayStatusMaintenance,
	DayStatusBlocked,
}

// ResponseStatuses statuses an owner may move an inquiry to when responding.
var ResponseStatuses = []InquiryStatus{
	InquiryStatusResponded,
	InquiryStatusConfirmed,
	InquiryStatusDeclined,
}

// Property list constants
const (
	DefaultPropertiesLimit = 50
	MaxPropertiesLimit     = 200
)

// MaxRangeDays longest period served by a raw availability range query
const MaxRangeDays = 366
