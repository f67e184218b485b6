package inquiries

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/internal/integrations/formrelay"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// InquiryRepository интерфейс репозитория запросов гостей
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) (*domain.Inquiry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error)
	ListByOwner(ctx context.Context, filter domain.InquiryFilter) ([]*domain.Inquiry, error)
	Respond(ctx context.Context, id uuid.UUID, status domain.InquiryStatus, response string) (*domain.Inquiry, error)
}

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

// RelayClient интерфейс клиента пересылки форм
type RelayClient interface {
	Send(ctx context.Context, submission formrelay.Submission) error
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
