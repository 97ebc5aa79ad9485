package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Status())
		})
	}
}

func TestKindOf_WrappedChain(t *testing.T) {
	err := fmt.Errorf("register: %w", Conflict("Email already registered"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Email already registered", Message(err, "Registration failed"))
}

func TestKindOf_Unclassified(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "Registration failed", Message(err, "Registration failed"))
}

func TestInternalMessageIsNeverExposed(t *testing.T) {
	err := Wrap(KindInternal, "select brokers", errors.New("dial tcp 10.0.0.1:3306"))
	assert.Equal(t, "Failed to fetch brokers", Message(err, "Failed to fetch brokers"))
	assert.ErrorContains(t, err, "dial tcp")
}
