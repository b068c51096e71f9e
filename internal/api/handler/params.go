package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/constants"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/apperr"
	"github.com/go-chi/chi/v5"
)

// pathID 取得路徑上的正整數 id
func pathID(r *http.Request, resource string) (uint64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Invalid(apperr.Violation{Field: "id", Message: fmt.Sprintf("invalid %s id: %q", resource, raw)})
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.InvalidArgumentCode, "malformed request body", err)
	}
	return nil
}

// parseDateTime 接受 RFC3339 或不含時區的 ISO date-time (視為 UTC)
func parseDateTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(constants.LocalDateTimeLayout, raw, time.UTC)
}

func queryDateTime(r *http.Request, name string) (time.Time, *apperr.Violation) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, &apperr.Violation{Field: name, Message: "is required"}
	}
	t, err := parseDateTime(raw)
	if err != nil {
		return time.Time{}, &apperr.Violation{Field: name, Message: "must be an ISO date-time such as 2024-01-15T10:00:00"}
	}
	return t, nil
}
