package create_inquiry

import (
	"context"

	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries/models"
)

type InquiryService interface {
	Create(ctx context.Context, req *models.CreateInquiryRequest) (*models.InquiryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
