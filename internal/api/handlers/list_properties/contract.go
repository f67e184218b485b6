package list_properties

import (
	"context"

	"github.com/MutasemKharma/reva-chalets/internal/service/properties/models"
)

type PropertyService interface {
	List(ctx context.Context, req *models.ListPropertiesRequest) (*models.PropertyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
