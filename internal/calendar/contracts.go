package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// Store persistence boundary of the engine
type Store interface {
	FetchRange(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, error)
	SetDayOverride(ctx context.Context, propertyID uuid.UUID, date types.Date, status domain.DayStatus, priceOverride *decimal.Decimal) error
}

// Clock returns the current calendar date
type Clock interface {
	Today() types.Date
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SystemClock reads the wall clock in a fixed location
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock whose "today" is the date observed in loc
func NewSystemClock(loc *time.Location) *SystemClock {
	return &SystemClock{loc: loc}
}

// Today returns the current date in the clock's location
func (c *SystemClock) Today() types.Date {
	return types.DateIn(time.Now(), c.loc)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
