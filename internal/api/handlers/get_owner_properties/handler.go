package get_owner_properties

import (
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/api/middleware"
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

// Handle GET /api/v1/owners/me/properties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.ListOwned(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /owners/me/properties - Failed to list properties: owner_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/me/properties - Properties retrieved: owner_id=%s, count=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
