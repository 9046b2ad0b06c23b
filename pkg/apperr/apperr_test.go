package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		code   string
	}{
		{Validation("bad input"), http.StatusBadRequest, CodeValidation},
		{Unauthenticated("no token"), http.StatusUnauthorized, CodeUnauthenticated},
		{TokenRevoked("rotated away"), http.StatusUnauthorized, CodeTokenRevoked},
		{Forbidden("not yours"), http.StatusForbidden, CodeForbidden},
		{NotFound("missing"), http.StatusNotFound, CodeNotFound},
		{Conflict("duplicate"), http.StatusConflict, CodeConflict},
		{Storage(errors.New("db down")), http.StatusInternalServerError, CodeStorage},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status, tc.code)
		assert.Equal(t, tc.code, tc.err.Code)
	}
}

func TestIsCodeSeesThroughWrapping(t *testing.T) {
	inner := NotFound("video does not exist")
	wrapped := fmt.Errorf("loading video: %w", inner)

	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeForbidden))
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))
	assert.False(t, IsCode(nil, CodeNotFound))
}

func TestStorageUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "STORAGE_FAILURE")
	assert.Contains(t, err.Error(), "connection refused")
}
