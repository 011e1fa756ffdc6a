package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("Missing fields"), KindValidation},
		{"conflict", Conflict("duplicate"), KindConflict},
		{"unauthorized", Unauthorized("Invalid token"), KindUnauthorized},
		{"not found", NotFound("User not found"), KindNotFound},
		{"persistence", Persistence("Failed to add goal", cause), KindPersistence},
		{"wrapped", fmt.Errorf("service: %w", NotFound("x")), KindNotFound},
		{"plain", cause, KindInternal},
		{"nil", nil, KindInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestPersistence_KeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("Failed to send message", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to send message: disk full", err.Error())
	assert.Equal(t, "Failed to send message", err.Message)
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := NotFound("User not found")
	wrapped := fmt.Errorf("lookup: %w", sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.False(t, errors.Is(wrapped, NotFound("User not found")))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation_error", KindValidation.String())
	assert.Equal(t, "internal_error", Kind(99).String())
}
