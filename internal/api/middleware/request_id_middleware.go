package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/ordercenter/internal/constants"
	"github.com/google/uuid"
)

func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 沿用呼叫端帶入的 request id
		requestId := r.Header.Get(constants.RequestIDHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		w.Header().Set(constants.RequestIDHeader, requestId)

		ctx := context.WithValue(r.Context(), constants.RequestIDKey, requestId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return "unknown"
}
