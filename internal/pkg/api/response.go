package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
)

// ResponseError 錯誤回應格式
type ResponseError struct {
	Code       int                `json:"code"`
	Message    string             `json:"message"`
	Violations []apperr.Violation `json:"violations,omitempty"`
}

// SuccessJSON 直接輸出資料本體
func SuccessJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("encode response failed")
	}
}

// ErrorJSON 將錯誤轉成對應的 http status，非 *apperr.Error 一律 500
// 500 不回傳內部錯誤細節
func ErrorJSON(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	res := ResponseError{Code: int(code), Message: apperr.ErrStrMap[apperr.InternalErrorCode]}

	var appErr *apperr.Error
	if errors.As(err, &appErr) && code != apperr.InternalErrorCode {
		res.Message = appErr.Message
		res.Violations = appErr.Violations
	}
	if code == apperr.InternalErrorCode {
		log.Error().Err(err).Msg("internal error")
	}

	SuccessJSON(w, int(code), res)
}

// ErrorMessageJSON 回傳指定代碼與訊息
func ErrorMessageJSON(w http.ResponseWriter, code apperr.Code, msg string) {
	ErrorJSON(w, apperr.New(code, msg))
}
