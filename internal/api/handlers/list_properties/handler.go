package list_properties

import (
	"errors"
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties"
)

const (
	msgInvalidQuery      = "معايير البحث غير صحيحة"
	msgInvalidPriceRange = "الحد الأدنى للسعر أكبر من الحد الأعلى"
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

// Handle GET /api/v1/properties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /properties - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, properties.ErrInvalidInput) {
			h.logger.Warn("GET /properties - Invalid price range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPriceRange)
			return
		}
		h.logger.Error("GET /properties - Failed to list properties: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /properties - Properties listed: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
