package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
)

// UserIDHeader заголовок с ID пользователя, проставляемый API gateway
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth требует валидный X-User-ID и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.Header.Get(UserIDHeader))
		if err != nil || userID == uuid.Nil {
			handlers.RespondUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// OptionalAuth кладет X-User-ID в контекст, если он передан и валиден.
// Запрос без заголовка пропускается как анонимный.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, err := uuid.Parse(r.Header.Get(UserIDHeader)); err == nil && userID != uuid.Nil {
			r = r.WithContext(WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

// WithUserID возвращает контекст с ID пользователя
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
