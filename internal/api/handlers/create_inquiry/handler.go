package create_inquiry

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
	msgInvalidPropertyID  = "معرّف الشاليه غير صحيح"
	msgInvalidInquiry     = "يرجى التحقق من البيانات: الاسم والبريد والهاتف مطلوبة، وتاريخ المغادرة بعد تاريخ الوصول"
	msgPropertyNotFound   = "الشاليه غير موجود"
	msgPropertyInactive   = "هذا الشاليه لا يستقبل طلبات حالياً"
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

// Handle POST /api/v1/properties/{propertyId}/inquiries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathUUID(r, "propertyId")
	if err != nil {
		h.logger.Warn("POST /properties/{propertyId}/inquiries - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req models.CreateInquiryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{propertyId}/inquiries - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.PropertyID = propertyID
	if guestID, ok := middleware.GetUserID(r.Context()); ok {
		req.GuestID = &guestID
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, inquiries.ErrInvalidInput):
			h.logger.Warn("POST /properties/{propertyId}/inquiries - Invalid inquiry: property_id=%s, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInquiry)

		case errors.Is(err, inquiries.ErrPropertyNotFound):
			h.logger.Warn("POST /properties/{propertyId}/inquiries - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, inquiries.ErrPropertyInactive):
			h.logger.Warn("POST /properties/{propertyId}/inquiries - Property inactive: property_id=%s", propertyID)
			handlers.RespondConflict(w, msgPropertyInactive)

		default:
			h.logger.Error("POST /properties/{propertyId}/inquiries - Failed to create inquiry: property_id=%s, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties/{propertyId}/inquiries - Inquiry created: inquiry_id=%s, property_id=%s",
		result.ID, propertyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
