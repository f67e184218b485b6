package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// DayView is one rendered calendar cell after merging defaults with overrides
type DayView struct {
	Date           types.Date
	Status         DayStatus
	EffectivePrice decimal.Decimal
	HasOverride    bool
	IsPast         bool
	IsToday        bool
}

// IsEditable returns true if the owner may change the day
func (d *DayView) IsEditable() bool {
	return !d.IsPast
}

// MonthView is the full grid of one month.
// Days starts with LeadingBlanks nil placeholders followed by one entry per day.
type MonthView struct {
	Month         types.YearMonth
	WeekStart     time.Weekday
	LeadingBlanks int
	Days          []*DayView
}

// Day returns the view of the given date, or nil if it is outside the month
func (m *MonthView) Day(date types.Date) *DayView {
	if !m.Month.Contains(date) {
		return nil
	}
	idx := m.LeadingBlanks + date.Day() - 1
	if idx < 0 || idx >= len(m.Days) {
		return nil
	}
	return m.Days[idx]
}

// PendingEdit is the single open edit of an engine session
type PendingEdit struct {
	Date                  types.Date
	ProposedStatus        DayStatus
	ProposedPriceOverride *decimal.Decimal
}
