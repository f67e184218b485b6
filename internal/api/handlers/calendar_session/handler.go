package calendar_session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/api/middleware"
	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/internal/service/calendarsessions"
)

const (
	msgInvalidRequestBody = "طلب غير صحيح"
	msgInvalidPropertyID  = "معرّف الشاليه غير صحيح"
	msgInvalidSessionID   = "معرّف الجلسة غير صحيح"
	msgInvalidMonth       = "الشهر غير صحيح"
	msgInvalidInput       = "البيانات المدخلة غير صحيحة"
	msgSessionNotFound    = "الجلسة غير موجودة أو انتهت صلاحيتها"
	msgPropertyNotFound   = "الشاليه غير موجود"
	msgAccessDenied       = "لا تملك صلاحية تعديل هذا الشاليه"
	msgConflict           = "لا يمكن تنفيذ العملية في الحالة الحالية للتقويم"
)

// Handler обслуживает все эндпоинты сессии календаря владельца
type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Start POST /api/v1/properties/{propertyId}/calendar-sessions
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	const op = "POST /properties/{propertyId}/calendar-sessions"

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	propertyID, err := handlers.PathUUID(r, "propertyId")
	if err != nil {
		h.logger.Warn("%s - Invalid property ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req StartSessionRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	month, err := req.month()
	if err != nil {
		h.logger.Warn("%s - Invalid month: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	view, err := h.service.Start(r.Context(), userID, propertyID, month)
	if err != nil {
		h.respondServiceError(w, op, err)
		return
	}

	h.logger.Info("%s - Session started: session_id=%s, property_id=%s, state=%s", op, view.SessionID, propertyID, view.State)
	handlers.RespondJSON(w, http.StatusCreated, FromView(view))
}

// Get GET /api/v1/calendar-sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "GET /calendar-sessions/{sessionId}"

	userID, sessionID, ok := h.sessionParams(w, r, op)
	if !ok {
		return
	}

	view, err := h.service.Get(userID, sessionID)
	if err != nil {
		h.respondServiceError(w, op, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Reload POST /api/v1/calendar-sessions/{sessionId}/reload
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	const op = "POST /calendar-sessions/{sessionId}/reload"

	userID, sessionID, ok := h.sessionParams(w, r, op)
	if !ok {
		return
	}

	view, err := h.service.Reload(r.Context(), userID, sessionID)
	if err != nil {
		h.respondServiceError(w, op, err)
		return
	}

	h.logger.Info("%s - Month reloaded: session_id=%s, state=%s", op, sessionID, view.State)
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Navigate POST /api/v1/calendar-sessions/{sessionId}/navigate
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	const op = "POST /calendar-sessions/{sessionId}/navigate"

	userID, sessionID, ok := h.sessionParams(w, r, op)
	if !ok {
		return
	}

	var req NavigateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.service.Navigate(r.Context(), userID, sessionID, req.Direction)
	if err != nil {
		h.respondServiceError(w, op, err)
		return
	}

	h.logger.Info("%s - Navigated: session_id=%s, month=%s, state=%s", op, sessionID, view.Month, view.State)
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// OpenEdit POST /api/v1/calendar-sessions/{sessionId}/edit
func (h *Handler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	const op = "POST /calendar-sessions/{sessionId}/edit"

	userID, sessionID, ok := h.sessionParams(w, r, op)
	if !ok {
		return
	}

	var req OpenEditRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.service.OpenEdit(userID, sessionID, req.Date)
	if err != nil {
		h.respondServiceError(w, op, err)
		return
	}

	h.logger.Info("%s - Edit opened: session_id=%s, date=%s", op, sessionID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// SubmitEdit POST /api/v1/calendar-sessions/{sessionId}/edit/submit
func (h *Handler) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	const op = "POST /calendar-sessions/{sessionId}/edit/submit"

	userID, sessionID, ok := h.sessionParams(w, r, op)
	if !ok {
		return
	}

	var req SubmitEditRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.service.SubmitEdit(r.Context(), userID, sessionID, domain.DayStatus(req.Status), req.PriceOverride)
	if err != nil {
		h.respondServiceError(w, op, err)
		return
	}

	h.logger.Info("%s - Edit saved: session_id=%s, status=%s", op, sessionID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// CancelEdit DELETE /api/v1/calendar-sessions/{sessionId}/edit
func (h *Handler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /calendar-sessions/{sessionId}/edit"

	userID, sessionID, ok := h.sessionParams(w, r, op)
	if !ok {
		return
	}

	view, err := h.service.CancelEdit(userID, sessionID)
	if err != nil {
		h.respondServiceError(w, op, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Close DELETE /api/v1/calendar-sessions/{sessionId}
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /calendar-sessions/{sessionId}"

	userID, sessionID, ok := h.sessionParams(w, r, op)
	if !ok {
		return
	}

	if err := h.service.Close(userID, sessionID); err != nil {
		h.respondServiceError(w, op, err)
		return
	}

	h.logger.Info("%s - Session closed: session_id=%s", op, sessionID)
	handlers.RespondNoContent(w)
}

func (h *Handler) sessionParams(w http.ResponseWriter, r *http.Request, op string) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := handlers.PathUUID(r, "sessionId")
	if err != nil {
		h.logger.Warn("%s - Invalid session ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, sessionID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, calendarsessions.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found", op)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, calendarsessions.ErrPropertyNotFound):
		h.logger.Warn("%s - Property not found", op)
		handlers.RespondNotFound(w, msgPropertyNotFound)

	case errors.Is(err, calendarsessions.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", op)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, calendarsessions.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, calendarsessions.ErrConflict):
		h.logger.Warn("%s - Conflict: %v", op, err)
		handlers.RespondConflict(w, msgConflict)

	case errors.Is(err, calendarsessions.ErrPersistFailed):
		h.logger.Warn("%s - Persist failed: %v", op, err)
		handlers.RespondBadGateway(w, msgSaveFailed)

	default:
		h.logger.Error("%s - Unexpected error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
