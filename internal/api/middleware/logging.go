package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestLogger пишет метод, путь, код ответа и длительность каждого запроса
func RequestLogger(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start).Milliseconds()
			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("%s %s - status=%d duration_ms=%d", r.Method, r.URL.Path, rec.status, elapsed)
			case rec.status >= http.StatusBadRequest:
				log.Warn("%s %s - status=%d duration_ms=%d", r.Method, r.URL.Path, rec.status, elapsed)
			default:
				log.Info("%s %s - status=%d duration_ms=%d", r.Method, r.URL.Path, rec.status, elapsed)
			}
		})
	}
}
