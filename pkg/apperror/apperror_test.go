package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Conflict("again"), http.StatusConflict},
		{Conflict("again").WithCode(http.StatusBadRequest), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{Timeout("slow"), http.StatusGatewayTimeout},
		{Internal("oops"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Message, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestError_LabelAndUnwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Conflict("User already exists. Please log in.").WithLabel(LabelExists).Wrap(cause)

	assert.Equal(t, LabelExists, err.StatusLabel())
	assert.Equal(t, LabelError, NotFound("x").StatusLabel())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestAsAndIsKind(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", Conflict("taken"))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "taken", appErr.Message)
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindInternal))
}
