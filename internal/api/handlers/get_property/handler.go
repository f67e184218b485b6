package get_property

import (
	"errors"
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties"
)

const (
	msgInvalidPropertyID = "معرّف الشاليه غير صحيح"
	msgPropertyNotFound  = "الشاليه غير موجود"
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

// Handle GET /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathUUID(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{propertyId} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	result, err := h.service.GetByID(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			h.logger.Warn("GET /properties/{propertyId} - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)
			return
		}
		h.logger.Error("GET /properties/{propertyId} - Failed to get property: property_id=%s, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /properties/{propertyId} - Property retrieved: property_id=%s", propertyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
