package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/MutasemKharma/reva-chalets/pkg/logger"
	"github.com/MutasemKharma/reva-chalets/pkg/metrics"
)

func TestAuth(t *testing.T) {
	userID := uuid.New()

	var got uuid.UUID
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"валидный uuid", userID.String(), http.StatusOK},
		{"нет заголовка", "", http.StatusUnauthorized},
		{"не uuid", "42", http.StatusUnauthorized},
		{"нулевой uuid", uuid.Nil.String(), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
	assert.Equal(t, userID, got)
}

func TestOptionalAuth(t *testing.T) {
	var (
		got uuid.UUID
		ok  bool
	)
	handler := OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetUserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(UserIDHeader, "garbage")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, ok)

	userID := uuid.New()
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(UserIDHeader, userID.String())
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.New("test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Use(RequestLogger(logger.Nop()))
	r.HandleFunc("/properties/{propertyId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/properties/"+uuid.NewString(), nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/properties/{propertyId}", "404")
	assert.Equal(t, float64(2), testutil.ToFloat64(counter))
}
