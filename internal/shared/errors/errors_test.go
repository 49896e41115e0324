package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Codes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("dup"), ErrorTypeConflict, http.StatusConflict},
		{"invalid state", NewInvalidStateError("wrong"), ErrorTypeInvalidState, http.StatusUnprocessableEntity},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "not_found: pack not found", NewNotFoundError("pack not found").Error())
	assert.Equal(t, "conflict: sku taken (basic)", NewConflictError("sku taken", "basic").Error())
}

func TestPredicates_UnwrapWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("approve: %w", NewInvalidStateError("not requested"))

	assert.True(t, IsInvalidStateError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.NotNil(t, GetAppError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", fmt.Errorf("Error 1062 (23000): Duplicate entry 'basic' for key 'subscription_packs.idx_pack_live_sku'"))))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: subscription_packs.sku")))
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
}
