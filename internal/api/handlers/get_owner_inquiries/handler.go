package get_owner_inquiries

import (
	"errors"
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/api/middleware"
	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries"
	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries/models"
)

const (
	msgInvalidStatus = "حالة الطلب غير صحيحة"
)

type Handler struct {
	service InquiryService
	logger  Logger
}

func NewHandler(service InquiryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/me/inquiries?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	// status опционален
	req := &models.ListOwnerInquiriesRequest{OwnerID: userID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.ListForOwner(r.Context(), req)
	if err != nil {
		if errors.Is(err, inquiries.ErrInvalidInput) {
			h.logger.Warn("GET /owners/me/inquiries - Invalid status: owner_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /owners/me/inquiries - Failed to list inquiries: owner_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/me/inquiries - Inquiries retrieved: owner_id=%s, count=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
