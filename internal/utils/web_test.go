package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okibe-dev/okibe/internal/errors"
)

func TestGetIP(t *testing.T) {
	t.Run("real ip header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-REAL-IP", "198.51.100.7")
		ip, err := GetIP(req)
		require.NoError(t, err)
		assert.Equal(t, "198.51.100.7", ip)
	})

	t.Run("forwarded-for picks the first valid entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-FORWARDED-FOR", "garbage, 203.0.113.5, 10.0.0.1")
		ip, err := GetIP(req)
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.5", ip)
	})

	t.Run("falls back to remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.33:9999"
		ip, err := GetIP(req)
		require.NoError(t, err)
		assert.Equal(t, "192.0.2.33", ip)
	})
}

func TestDecodeValidate(t *testing.T) {
	type payload struct {
		Name string `validate:"required" json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		var body payload
		err := DecodeValidate(io.NopCloser(strings.NewReader(`{"name":"x"}`)), &body)
		require.NoError(t, err)
		assert.Equal(t, "x", body.Name)
	})

	t.Run("invalid json", func(t *testing.T) {
		var body payload
		err := DecodeValidate(io.NopCloser(strings.NewReader(`{broken`)), &body)
		require.Error(t, err)
		assert.Equal(t, 400, errors.StatusCode(err))
	})

	t.Run("missing required field", func(t *testing.T) {
		var body payload
		err := DecodeValidate(io.NopCloser(strings.NewReader(`{}`)), &body)
		require.Error(t, err)
		assert.Equal(t, 400, errors.StatusCode(err))
	})
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]int{"deletedFiles": 2})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"deletedFiles":2}`, rr.Body.String())
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteErrorAndStatusCode(rr, errors.NotFound("Board not found"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Board not found", strings.TrimSpace(rr.Body.String()))

	rr = httptest.NewRecorder()
	WriteErrorAndStatusCode(rr, io.ErrUnexpectedEOF)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestWriteErrorRetryAfter(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteErrorAndStatusCode(rr, errors.Contention("Board is busy, please retry"))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	rr = httptest.NewRecorder()
	WriteErrorAndStatusCode(rr, errors.Validation("Content required"))
	assert.Empty(t, rr.Header().Get("Retry-After"))
}
