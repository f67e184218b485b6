package supabase

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
)

// PropertyReader источник цены по умолчанию
type PropertyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
