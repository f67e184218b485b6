package set_day_override

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

// AvailabilityStore интерфейс записи доступности (адаптер хранилища)
type AvailabilityStore interface {
	SetDayOverride(ctx context.Context, propertyID uuid.UUID, date types.Date, status domain.DayStatus, priceOverride *decimal.Decimal) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
