package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"not found", NotFoundf("sector %d", 3), ErrorTypeNotFound},
		{"validation", Validation("bad"), ErrorTypeValidation},
		{"wrapped validation", WrapValidation("bad json", io.EOF), ErrorTypeValidation},
		{"conflict", Conflictf("out of fuel"), ErrorTypeConflict},
		{"unauthorized", Unauthorized("no token"), ErrorTypeUnauthorized},
		{"forbidden", Forbidden("admins only"), ErrorTypeForbidden},
		{"method", MethodNotAllowed("PUT"), ErrorTypeMethodNotAllowed},
		{"plain error", io.EOF, ErrorTypeInternal},
		{"wrapped by fmt", fmt.Errorf("context: %w", Conflictf("busy")), ErrorTypeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetType(tt.err))
			assert.True(t, Is(tt.err, tt.want) || tt.want == ErrorTypeInternal)
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := WrapInternal("failed to rebuild world", Validationf("size %d", 0))

	assert.Equal(t, "failed to rebuild world: size 0", err.Error())
	assert.True(t, Is(err, ErrorTypeInternal))
	assert.False(t, Is(err, ErrorTypeValidation), "outermost category wins")

	var appErr *AppError
	assert.True(t, errors.As(errors.Unwrap(err), &appErr))
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
}

func TestIsOnNil(t *testing.T) {
	assert.False(t, Is(nil, ErrorTypeInternal))
}
