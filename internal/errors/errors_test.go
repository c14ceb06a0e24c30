package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(Validation("x")))
	assert.Equal(t, http.StatusNotFound, StatusCode(NotFound("x")))
	assert.Equal(t, http.StatusConflict, StatusCode(Conflict("x")))
	assert.Equal(t, http.StatusTooManyRequests, StatusCode(TooManyRequests("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(io.ErrUnexpectedEOF))
}

func TestStatusCodeUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("save post: %w", NotFound("No post found"))
	assert.Equal(t, http.StatusNotFound, StatusCode(wrapped))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Contention("Board is busy, please retry")))
	assert.True(t, IsRetryable(fmt.Errorf("allocate: %w", Contention("busy"))))
	assert.False(t, IsRetryable(Validation("Content required")))
	assert.False(t, IsRetryable(io.ErrUnexpectedEOF))
}
