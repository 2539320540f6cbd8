package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{Validation("bad kind"), http.StatusBadRequest},
		{NotFound("no such concept"), http.StatusNotFound},
		{Unavailable("store down", errors.New("dial refused")), http.StatusInternalServerError},
		{Configuration("write token missing"), http.StatusInternalServerError},
		{Internal("boom", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), string(tt.err.Type))
	}
}

func TestErrorString(t *testing.T) {
	err := Unavailable("redis write failed", errors.New("connection reset"))
	assert.Equal(t, "store_unavailable: redis write failed: connection reset", err.Error())

	bare := Validation("invalid reaction kind")
	assert.Equal(t, "validation: invalid reaction kind", bare.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Internal("wrapped", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestAsStructured(t *testing.T) {
	structured := NotFound("gone")
	assert.Same(t, structured, AsStructured(structured))
	assert.Same(t, structured, AsStructured(fmt.Errorf("outer: %w", structured)))

	plain := AsStructured(errors.New("plain"))
	assert.Equal(t, TypeInternal, plain.Type)

	assert.Nil(t, AsStructured(nil))
}

func TestWithField(t *testing.T) {
	err := Validation("bad").WithField("kind", "love").WithField("item_id", "c1")
	assert.Equal(t, "love", err.Context["kind"])
	assert.Equal(t, "c1", err.Context["item_id"])

	resp := err.ToResponse()
	assert.Equal(t, "bad", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, err.Context, resp.Context)
}
