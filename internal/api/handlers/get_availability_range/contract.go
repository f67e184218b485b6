package get_availability_range

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// PropertyLookup возвращает только активные объекты
type PropertyLookup interface {
	LookupActive(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

type AvailabilityStore interface {
	FetchRange(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
