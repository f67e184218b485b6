package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// Backend хранилище доступности: репозиторий PostgreSQL или RPC Supabase
type Backend interface {
	GetRange(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, error)
	SetDay(ctx context.Context, record domain.DayAvailabilityRecord) error
}

// RangeCache кеш диапазонов доступности.
// Get возвращает версию объекта; Set пишет под ней же.
type RangeCache interface {
	Get(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, int64, bool, error)
	Set(ctx context.Context, propertyID uuid.UUID, version int64, start, end types.Date, records []domain.DayAvailabilityRecord) error
	Invalidate(ctx context.Context, propertyID uuid.UUID) error
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
