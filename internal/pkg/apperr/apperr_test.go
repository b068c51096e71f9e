package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("product", 999)

	require.Equal(t, NotFoundCode, err.Code)
	require.Equal(t, "product not found with id: 999", err.Message)
	require.True(t, IsNotFound(err))
	require.True(t, errors.Is(err, &Error{Code: NotFoundCode, Resource: "product"}))
	require.False(t, errors.Is(err, &Error{Code: NotFoundCode, Resource: "order"}))
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, Code(0), CodeOf(nil))
	require.Equal(t, InternalErrorCode, CodeOf(errors.New("boom")))

	wrapped := fmt.Errorf("place order: %w", Invalid(Violation{Field: "buyerEmail", Message: "is required"}))
	require.Equal(t, InvalidArgumentCode, CodeOf(wrapped))
	require.True(t, IsInvalid(wrapped))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(InternalErrorCode, "persist order failed", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "connection reset")
}

func TestInvalidMessage(t *testing.T) {
	err := Invalid(
		Violation{Field: "buyerEmail", Message: "must be a valid email"},
		Violation{Field: "items", Message: "must contain at least one item"},
	)
	require.Len(t, err.Violations, 2)
	require.Equal(t, "buyerEmail: must be a valid email; items: must contain at least one item", err.Message)
}
