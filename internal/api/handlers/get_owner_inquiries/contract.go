package get_owner_inquiries

import (
	"context"

	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries/models"
)

type InquiryService interface {
	ListForOwner(ctx context.Context, req *models.ListOwnerInquiriesRequest) (*models.InquiryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
