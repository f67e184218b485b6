package get_property

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/service/properties/models"
)

type PropertyService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
