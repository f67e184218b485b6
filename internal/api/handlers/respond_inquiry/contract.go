package respond_inquiry

import (
	"context"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries/models"
)

type InquiryService interface {
	Respond(ctx context.Context, inquiryID uuid.UUID, req *models.RespondInquiryRequest) (*models.InquiryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
