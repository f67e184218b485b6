package respond_inquiry

import (
	"errors"
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/api/middleware"
	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries"
	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries/models"
)

const (
	msgInvalidRequestBody = "طلب غير صحيح"
	msgInvalidInquiryID   = "معرّف الطلب غير صحيح"
	msgInvalidResponse    = "يجب كتابة الرد واختيار حالة صحيحة"
	msgInquiryNotFound    = "الطلب غير موجود"
	msgAccessDenied       = "لا تملك صلاحية الرد على هذا الطلب"
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

// Handle PATCH /api/v1/inquiries/{inquiryId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	inquiryID, err := handlers.PathUUID(r, "inquiryId")
	if err != nil {
		h.logger.Warn("PATCH /inquiries/{inquiryId}/respond - Invalid inquiry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInquiryID)
		return
	}

	var req models.RespondInquiryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /inquiries/{inquiryId}/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Respond(r.Context(), inquiryID, &req)
	if err != nil {
		switch {
		case errors.Is(err, inquiries.ErrInvalidInput):
			h.logger.Warn("PATCH /inquiries/{inquiryId}/respond - Invalid input: inquiry_id=%s, error=%v", inquiryID, err)
			handlers.RespondBadRequest(w, msgInvalidResponse)

		case errors.Is(err, inquiries.ErrInquiryNotFound):
			h.logger.Warn("PATCH /inquiries/{inquiryId}/respond - Inquiry not found: inquiry_id=%s", inquiryID)
			handlers.RespondNotFound(w, msgInquiryNotFound)

		case errors.Is(err, inquiries.ErrAccessDenied):
			h.logger.Warn("PATCH /inquiries/{inquiryId}/respond - Access denied: inquiry_id=%s, user_id=%s", inquiryID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PATCH /inquiries/{inquiryId}/respond - Failed to respond: inquiry_id=%s, error=%v", inquiryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /inquiries/{inquiryId}/respond - Inquiry answered: inquiry_id=%s, status=%s", inquiryID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
