package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/api"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/apperr"
)

type Limiter interface {
	Allow() bool
}

// NewRateLimitMiddleware 全域限流，超過回傳 429
func NewRateLimitMiddleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				api.ErrorMessageJSON(w, apperr.TooManyRequestsCode, apperr.ErrStrMap[apperr.TooManyRequestsCode])
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
