package calendar

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// LeadingBlanks number of empty cells before the first day of the month
func LeadingBlanks(month types.YearMonth, weekStart time.Weekday) int {
	return (int(month.FirstDay().Weekday()) - int(weekStart) + 7) % 7
}

// BuildMonthView merges sparse records onto the full grid of the month.
// Dates without a record are available at defaultPrice. Records outside the
// month are ignored; for duplicate dates the last record wins.
func BuildMonthView(
	month types.YearMonth,
	weekStart time.Weekday,
	defaultPrice decimal.Decimal,
	records []domain.DayAvailabilityRecord,
	today types.Date,
) *domain.MonthView {
	byDate := make(map[types.Date]domain.DayAvailabilityRecord, len(records))
	for _, rec := range records {
		if month.Contains(rec.Date) {
			byDate[rec.Date] = rec
		}
	}

	blanks := LeadingBlanks(month, weekStart)
	daysIn := month.DaysIn()
	first := month.FirstDay()

	days := make([]*domain.DayView, blanks, blanks+daysIn)
	for i := 0; i < daysIn; i++ {
		date := first.AddDays(i)

		day := &domain.DayView{
			Date:           date,
			Status:         domain.DayStatusAvailable,
			EffectivePrice: defaultPrice,
			IsPast:         date.Before(today),
			IsToday:        date == today,
		}

		if rec, ok := byDate[date]; ok {
			if rec.Status.IsValid() {
				day.Status = rec.Status
			}
			if rec.PriceOverride != nil {
				day.EffectivePrice = *rec.PriceOverride
				day.HasOverride = true
			}
		}

		days = append(days, day)
	}

	return &domain.MonthView{
		Month:         month,
		WeekStart:     weekStart,
		LeadingBlanks: blanks,
		Days:          days,
	}
}
