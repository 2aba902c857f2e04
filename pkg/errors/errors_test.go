package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("cart", "session-1")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "cart with id session-1 not found")
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("quantity must be at least 1")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMalformed(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Malformed("cart", cause)

	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, cause)
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("save cart", cause)

	assert.Equal(t, "STORE_UNAVAILABLE", err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestWrap(t *testing.T) {
	base := NotFound("product", "p1")
	wrapped := Wrap(base, "load catalog")

	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "load catalog")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("cart", "x"), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("get: %w", InvalidInput("bad")), http.StatusBadRequest},
		{"sentinel not found", ErrNotFound, http.StatusNotFound},
		{"sentinel already exists", ErrAlreadyExists, http.StatusConflict},
		{"sentinel unavailable", ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
