package fulcrum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHttpError(t *testing.T) {
	code := StatusBadRequest
	message := "Bad request"
	err := NewHttpError(code, message)

	assert.Equal(t, code, err.Code)
	assert.Equal(t, message, err.Message)
	assert.Nil(t, err.Err)
}

func TestNewHttpErrorWithError(t *testing.T) {
	code := StatusInternalServerError
	message := "Internal server error"
	originalErr := errors.New("database connection failed")
	err := NewHttpErrorWithError(code, message, originalErr)

	assert.Equal(t, code, err.Code)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, originalErr, err.Err)
}

func TestHttpErrorError(t *testing.T) {
	err1 := NewHttpError(StatusBadRequest, "Bad request")
	assert.Equal(t, "Bad request", err1.Error())

	originalErr := errors.New("database connection failed")
	err2 := NewHttpErrorWithError(StatusInternalServerError, "Internal server error", originalErr)
	assert.Equal(t, "Internal server error: database connection failed", err2.Error())
}

func TestHttpErrorUnwrap(t *testing.T) {
	err1 := NewHttpError(StatusBadRequest, "Bad request")
	assert.Nil(t, err1.Unwrap())

	originalErr := errors.New("database connection failed")
	err2 := NewHttpErrorWithError(StatusInternalServerError, "Internal server error", originalErr)
	assert.Equal(t, originalErr, err2.Unwrap())
}

func TestHttpErrorWithStandardErrors(t *testing.T) {
	originalErr := errors.New("database connection failed")
	err := NewHttpErrorWithError(StatusInternalServerError, "Internal server error", originalErr)

	assert.True(t, errors.Is(err, originalErr))

	var httpErr *HttpError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, err, httpErr)
}

func TestHttpErrorResponse(t *testing.T) {
	err := NewHttpError(StatusNotFound, "no such thing")
	res := err.Response()
	assert.Equal(t, StatusNotFound, res.Status())
	assert.Equal(t, []byte("no such thing"), res.Body())
}

func TestMethodNotAllowedErrorResponse(t *testing.T) {
	err := NewMethodNotAllowedError([]Method{MethodGet, MethodPost})
	res := err.Response()
	assert.Equal(t, StatusMethodNotAllowed, res.Status())
	allow, ok := res.Headers().Get(HeaderAllow)
	assert.True(t, ok)
	assert.Equal(t, "GET, POST", allow)
}
