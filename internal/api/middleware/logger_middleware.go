package middleware

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// 記錄 request 請求，m 為 nil 時不記錄 metrics
func LoggerMiddleware(logger zerolog.Logger, m *metrics.Registry) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := &StatusRecoder{ResponseWriter: w}
			next.ServeHTTP(recoder, r)
			elapsed := time.Since(start)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			if m != nil {
				m.ObserveHTTP(r.Method, route, recoder.Status(), elapsed)
			}

			event := logger.Info()
			if recoder.Status() >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("request_id", GetRequestID(r.Context())).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", recoder.Status()).
				Dur("latency", elapsed).
				Msg("request completed")
		})
	}
}
