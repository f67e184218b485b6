package get_availability_range

import (
	"errors"
	"net/http"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

const (
	msgInvalidPropertyID = "معرّف الشاليه غير صحيح"
	msgPropertyNotFound  = "الشاليه غير موجود"
	msgInvalidRange      = "الفترة غير صحيحة، يجب تمرير start و end بصيغة YYYY-MM-DD"
	msgRangeTooLong      = "الفترة المطلوبة أطول من المسموح"
	msgFetchFailed       = "تعذر تحميل التوفر، حاول مرة أخرى"
)

type Handler struct {
	properties PropertyLookup
	store      AvailabilityStore
	logger     Logger
}

func NewHandler(lookup PropertyLookup, store AvailabilityStore, logger Logger) *Handler {
	return &Handler{
		properties: lookup,
		store:      store,
		logger:     logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/availability/range?start=2025-03-01&end=2025-03-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathUUID(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{propertyId}/availability/range - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	q := r.URL.Query()
	start, errStart := types.ParseDate(q.Get("start"))
	end, errEnd := types.ParseDate(q.Get("end"))
	if errStart != nil || errEnd != nil || start.After(end) {
		h.logger.Warn("GET /properties/{propertyId}/availability/range - Invalid range: start=%q, end=%q",
			q.Get("start"), q.Get("end"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	if start.DaysUntil(end)+1 > domain.MaxRangeDays {
		h.logger.Warn("GET /properties/{propertyId}/availability/range - Range too long: start=%s, end=%s", start, end)
		handlers.RespondBadRequest(w, msgRangeTooLong)
		return
	}

	if _, err := h.properties.LookupActive(r.Context(), propertyID); err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			h.logger.Warn("GET /properties/{propertyId}/availability/range - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)
			return
		}
		h.logger.Error("GET /properties/{propertyId}/availability/range - Failed to get property: property_id=%s, error=%v",
			propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	records, err := h.store.FetchRange(r.Context(), propertyID, start, end)
	if err != nil {
		var (
			validationErr *domain.ValidationError
			fetchErr      *domain.FetchError
		)
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("GET /properties/{propertyId}/availability/range - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.As(err, &fetchErr):
			h.logger.Warn("GET /properties/{propertyId}/availability/range - Fetch failed: property_id=%s, error=%v",
				propertyID, err)
			handlers.RespondBadGateway(w, msgFetchFailed)

		default:
			h.logger.Error("GET /properties/{propertyId}/availability/range - Failed to fetch range: property_id=%s, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{propertyId}/availability/range - Range fetched: property_id=%s, records=%d",
		propertyID, len(records))
	handlers.RespondJSON(w, http.StatusOK, newRangeResponse(propertyID.String(), start, end, records))
}
