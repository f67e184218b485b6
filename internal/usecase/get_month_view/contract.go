package get_month_view

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

// AvailabilityStore интерфейс чтения доступности (адаптер хранилища)
type AvailabilityStore interface {
	FetchRange(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, error)
}

// Clock источник текущей даты
type Clock interface {
	Today() types.Date
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
