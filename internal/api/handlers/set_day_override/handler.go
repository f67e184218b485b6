package set_day_override

import (
	"errors"
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/api/middleware"
	setDayOverride "github.com/MutasemKharma/reva-chalets/internal/usecase/set_day_override"
)

const (
	msgInvalidRequestBody = "طلب غير صحيح"
	msgInvalidPropertyID  = "معرّف الشاليه غير صحيح"
	msgInvalidDate        = "التاريخ غير صحيح، الصيغة المطلوبة YYYY-MM-DD"
	msgInvalidDay         = "لا يمكن حفظ هذا اليوم: تحقق من الحالة والسعر والتاريخ"
	msgPropertyNotFound   = "الشاليه غير موجود"
	msgAccessDenied       = "لا تملك صلاحية تعديل هذا الشاليه"
	msgPersistFailed      = "تعذر حفظ التغييرات، حاول مرة أخرى"
)

type Handler struct {
	useCase SetDayOverrideUseCase
	logger  Logger
}

func NewHandler(useCase SetDayOverrideUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/properties/{propertyId}/availability/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	propertyID, err := handlers.PathUUID(r, "propertyId")
	if err != nil {
		h.logger.Warn("PUT /properties/{propertyId}/availability/{date} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	date, err := handlers.PathDate(r, "date")
	if err != nil {
		h.logger.Warn("PUT /properties/{propertyId}/availability/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req SetDayOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /properties/{propertyId}/availability/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, propertyID, date))
	if err != nil {
		switch {
		case errors.Is(err, setDayOverride.ErrInvalidInput):
			h.logger.Warn("PUT /properties/{propertyId}/availability/{date} - Invalid day: property_id=%s, date=%s, error=%v",
				propertyID, date, err)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, setDayOverride.ErrPropertyNotFound):
			h.logger.Warn("PUT /properties/{propertyId}/availability/{date} - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, setDayOverride.ErrAccessDenied):
			h.logger.Warn("PUT /properties/{propertyId}/availability/{date} - Access denied: property_id=%s, user_id=%s",
				propertyID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, setDayOverride.ErrPersistFailed):
			h.logger.Warn("PUT /properties/{propertyId}/availability/{date} - Persist failed: property_id=%s, date=%s, error=%v",
				propertyID, date, err)
			handlers.RespondBadGateway(w, msgPersistFailed)

		default:
			h.logger.Error("PUT /properties/{propertyId}/availability/{date} - Failed to save day: property_id=%s, date=%s, error=%v",
				propertyID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /properties/{propertyId}/availability/{date} - Day saved: property_id=%s, date=%s, status=%s",
		propertyID, date, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
