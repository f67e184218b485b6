package properties

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
)

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error)
	Update(ctx context.Context, id uuid.UUID, update domain.PropertyUpdate) (*domain.Property, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityInvalidator сбрасывает закешированную доступность объекта.
// Цена за ночь используется календарем как цена по умолчанию.
type AvailabilityInvalidator interface {
	InvalidateProperty(ctx context.Context, propertyID uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
