package update_property

import (
	"errors"
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/api/middleware"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties/models"
)

const (
	msgInvalidRequestBody = "طلب غير صحيح"
	msgInvalidPropertyID  = "معرّف الشاليه غير صحيح"
	msgInvalidUpdate      = "بيانات الشاليه غير صحيحة"
	msgPropertyNotFound   = "الشاليه غير موجود"
	msgAccessDenied       = "لا تملك صلاحية تعديل هذا الشاليه"
)

type Handler struct {
	service PropertyService
	logger  Logger
}

func NewHandler(service PropertyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	propertyID, err := handlers.PathUUID(r, "propertyId")
	if err != nil {
		h.logger.Warn("PATCH /properties/{propertyId} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req models.UpdatePropertyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /properties/{propertyId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.PropertyID = propertyID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrInvalidInput):
			h.logger.Warn("PATCH /properties/{propertyId} - Invalid input: property_id=%s, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidUpdate)

		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("PATCH /properties/{propertyId} - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, properties.ErrAccessDenied):
			h.logger.Warn("PATCH /properties/{propertyId} - Access denied: property_id=%s, user_id=%s", propertyID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PATCH /properties/{propertyId} - Failed to update property: property_id=%s, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /properties/{propertyId} - Property updated: property_id=%s, active=%t", propertyID, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}
