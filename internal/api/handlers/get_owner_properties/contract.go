package get_owner_properties

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/service/properties/models"
)

type PropertyService interface {
	ListOwned(ctx context.Context, ownerID uuid.UUID) (*models.PropertyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
