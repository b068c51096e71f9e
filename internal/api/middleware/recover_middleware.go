package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/api"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/apperr"
	"github.com/rs/zerolog"
)

func RecoverMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error().
						Str("request_id", GetRequestID(r.Context())).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("error", fmt.Sprintf("%v", err)).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					api.ErrorJSON(w, apperr.New(apperr.InternalErrorCode, "internal server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
