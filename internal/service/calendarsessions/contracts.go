package calendarsessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/calendar"
	"github.com/MutasemKharma/reva-chalets/internal/domain"
)

// PropertyProvider источник объектов с проверкой владельца
type PropertyProvider interface {
	LookupOwned(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Property, error)
}

// Store хранилище доступности, с которым работает движок календаря
type Store = calendar.Store

// Clock источник текущей даты
type Clock = calendar.Clock

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
