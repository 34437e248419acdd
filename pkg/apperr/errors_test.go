package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("op", "bad", nil), KindValidation},
		{"conflict", Conflict("op", "dup"), KindConflict},
		{"not found", NotFound("op", "missing"), KindNotFound},
		{"auth", Auth("op", ErrPermissionDenied), KindAuth},
		{"dependency", Dependency("op", "mail", errors.New("smtp down")), KindDependency},
		{"wrapped", fmt.Errorf("outer: %w", Conflict("op", "dup")), KindConflict},
		{"plain", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestAuthCauseIsRecognised(t *testing.T) {
	err := fmt.Errorf("exchange: %w", Auth("auth.exchange", ErrInvalidConfirmationCode))

	assert.True(t, errors.Is(err, ErrInvalidConfirmationCode))
	assert.False(t, errors.Is(err, ErrPermissionDenied))
	assert.Equal(t, "invalid confirmation code", MessageOf(err))
}

func TestErrorMessage(t *testing.T) {
	err := Dependency("auth.signup", "failed to deliver confirmation code", errors.New("dial tcp"))

	assert.Equal(t, "auth.signup: failed to deliver confirmation code: dial tcp", err.Error())
	assert.Equal(t, "failed to deliver confirmation code", MessageOf(err))
}

func TestFieldsOf(t *testing.T) {
	err := Validation("op", "validation failed", map[string]string{"score": "Maximum value is 10"})

	assert.Equal(t, "Maximum value is 10", FieldsOf(err)["score"])
	assert.Nil(t, FieldsOf(errors.New("x")))
}

func TestMessageOf_HidesInternalDetail(t *testing.T) {
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: relation missing")))
	assert.Equal(t, "internal server error", MessageOf(Internal("op", errors.New("pool closed"))))
}
