package get_month_view

import (
	"errors"
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	getMonthView "github.com/MutasemKharma/reva-chalets/internal/usecase/get_month_view"
)

const (
	msgInvalidPropertyID = "معرّف الشاليه غير صحيح"
	msgInvalidMonth      = "الشهر غير صحيح، يجب تمرير year و month معاً"
	msgPropertyNotFound  = "الشاليه غير موجود"
	msgFetchFailed       = "تعذر تحميل التقويم، حاول مرة أخرى"
)

type Handler struct {
	useCase GetMonthViewUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthViewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/availability?year=2025&month=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathUUID(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{propertyId}/availability - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	month, err := handlers.QueryYearMonth(r)
	if err != nil {
		h.logger.Warn("GET /properties/{propertyId}/availability - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getMonthView.Request{
		PropertyID: propertyID,
		Month:      month,
	})
	if err != nil {
		switch {
		case errors.Is(err, getMonthView.ErrInvalidInput):
			h.logger.Warn("GET /properties/{propertyId}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, getMonthView.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{propertyId}/availability - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, getMonthView.ErrFetchFailed):
			h.logger.Warn("GET /properties/{propertyId}/availability - Fetch failed: property_id=%s, error=%v", propertyID, err)
			handlers.RespondBadGateway(w, msgFetchFailed)

		default:
			h.logger.Error("GET /properties/{propertyId}/availability - Failed to build month: property_id=%s, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{propertyId}/availability - Month built: property_id=%s, month=%s",
		propertyID, result.View.Month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
