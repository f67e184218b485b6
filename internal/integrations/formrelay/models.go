package formrelay

import (
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// Submission копия запроса гостя для уведомления владельца
type Submission struct {
	PropertyID     string          `json:"property_id"`
	PropertyName   string          `json:"property_name"`
	GuestName      string          `json:"guest_name"`
	GuestEmail     string          `json:"guest_email"`
	GuestPhone     string          `json:"guest_phone"`
	CheckIn        types.Date      `json:"check_in"`
	CheckOut       types.Date      `json:"check_out"`
	Guests         int             `json:"guests"`
	Message        string          `json:"message"`
	Nights         int             `json:"nights"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`
}
