package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/constants"
	"github.com/RoyceAzure/lab/ordercenter/internal/metrics"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRequestIdMiddleware(t *testing.T) {
	var seen string
	h := RequestIdMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.NotEqual(t, "unknown", seen)
	require.Equal(t, seen, rec.Header().Get(constants.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "abc", seen)
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	m := metrics.NewRegistry()

	r := chi.NewRouter()
	r.Use(RequestIdMiddleware)
	r.Use(LoggerMiddleware(logger, m))
	r.Get("/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders/7", nil))

	require.Contains(t, buf.String(), `"status":404`)
	require.Contains(t, buf.String(), `"url":"/api/orders/7"`)
	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/orders/{id}", "404")))
}

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"code":500,"message":"internal server error"}`, rec.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	bucket := ratelimit.NewTokenBucket(&ratelimit.Config{Capacity: 1, RatePS: 0.001, RefillRate: time.Hour})
	defer bucket.Stop()
	h := NewRateLimitMiddleware(bucket)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"code":429,"message":"too many requests"}`, rec.Body.String())
}
