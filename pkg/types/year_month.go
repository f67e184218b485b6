package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidYearMonth is returned for a month outside 1..12 or a non-positive year
	ErrInvalidYearMonth = errors.New("invalid year/month")
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth validates and builds a YearMonth.
func NewYearMonth(year int, month int) (YearMonth, error) {
	if year <= 0 || month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w: %d-%d", ErrInvalidYearMonth, year, month)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// AddMonths shifts (year, month) by delta months, rolling the year over in
// both directions. month is 1-based (January = 1).
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	// 0-based month index keeps the arithmetic free of off-by-one corrections
	idx := year*12 + int(month) - 1 + delta
	y := idx / 12
	m := idx % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, time.Month(m + 1)
}

// AddMonths returns ym shifted by delta months.
func (ym YearMonth) AddMonths(delta int) YearMonth {
	y, m := AddMonths(ym.Year, ym.Month, delta)
	return YearMonth{Year: y, Month: m}
}

// FirstDay returns the first calendar day of the month.
func (ym YearMonth) FirstDay() Date {
	return NewDate(ym.Year, ym.Month, 1)
}

// LastDay returns the last calendar day of the month.
func (ym YearMonth) LastDay() Date {
	return NewDate(ym.Year, ym.Month+1, 0)
}

// DaysIn returns the number of days in the month.
func (ym YearMonth) DaysIn() int {
	return ym.LastDay().Day()
}

// Contains reports whether d falls inside the month.
func (ym YearMonth) Contains(d Date) bool {
	return d.Year() == ym.Year && d.Month() == ym.Month
}

// String formats ym as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}
