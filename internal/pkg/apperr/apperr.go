package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Code int

const (
	InvalidArgumentCode Code = 400
	NotFoundCode        Code = 404
	TooManyRequestsCode Code = 429
	InternalErrorCode   Code = 500
)

var ErrStrMap = map[Code]string{
	InvalidArgumentCode: "invalid input",
	NotFoundCode:        "resource not found",
	TooManyRequestsCode: "too many requests",
	InternalErrorCode:   "internal server error",
}

// Violation 單一欄位驗證失敗
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Code       Code
	Message    string
	Resource   string
	ID         uint64
	Violations []Violation
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code: %d, message: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 比對 Code，讓 errors.Is(err, &Error{Code: NotFoundCode}) 可以使用
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Resource == "" || t.Resource == e.Resource)
}

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// NotFound 回報指定資源與id不存在
func NotFound(resource string, id uint64) *Error {
	return &Error{
		Code:     NotFoundCode,
		Message:  fmt.Sprintf("%s not found with id: %d", resource, id),
		Resource: resource,
		ID:       id,
	}
}

// Invalid 將所有違反的條件列出
func Invalid(violations ...Violation) *Error {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return &Error{
		Code:       InvalidArgumentCode,
		Message:    strings.Join(msgs, "; "),
		Violations: violations,
	}
}

// CodeOf 取得錯誤代碼，非 *Error 一律視為 InternalErrorCode
func CodeOf(err error) Code {
	if err == nil {
		return 0
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalErrorCode
}

func IsNotFound(err error) bool {
	return CodeOf(err) == NotFoundCode
}

func IsInvalid(err error) bool {
	return CodeOf(err) == InvalidArgumentCode
}
