package fulcrum

import "fmt"

// HttpError pairs a Status with a message and an optional wrapped
// cause, the same shape the teacher's http_error.go uses, updated to
// the closed Status enum in place of a bare int.
type HttpError struct {
	Code    Status
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any, so errors.Is/errors.As see
// through an HttpError to its origin.
func (e *HttpError) Unwrap() error {
	return e.Err
}

// NewHttpError creates an HttpError with no wrapped cause.
func NewHttpError(code Status, message string) *HttpError {
	return &HttpError{Code: code, Message: message}
}

// NewHttpErrorWithError creates an HttpError wrapping an underlying cause.
func NewHttpErrorWithError(code Status, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

// Response renders the HttpError as a plain-text Response carrying its
// status code, the mapping propagation policy (§7) asks for: handler
// and fang errors become a Response and continue through back fangs.
func (e *HttpError) Response() *Response {
	res := NewResponse(e.Code, []byte(e.Message))
	res.Headers().SetString(HeaderContentType, TextContentType.String())
	return res
}

// BadRequest, Unauthorized, Forbidden, NotFoundError,
// NewMethodNotAllowedError, PayloadTooLarge, HTTPVersionNotSupportedError,
// and InternalServerError are the §7 error kinds, built as HttpErrors
// over the concrete Status they carry.
func BadRequest(message string) *HttpError {
	return NewHttpError(StatusBadRequest, message)
}

func Unauthorized(message string) *HttpError {
	return NewHttpError(StatusUnauthorized, message)
}

func Forbidden(message string) *HttpError {
	return NewHttpError(StatusForbidden, message)
}

func NotFoundError(message string) *HttpError {
	return NewHttpError(StatusNotFound, message)
}

// MethodNotAllowedError carries the allowed methods for the Allow
// header, per §7: "the latter carries the allowed methods."
type MethodNotAllowedError struct {
	*HttpError
	Allowed []Method
}

func NewMethodNotAllowedError(allowed []Method) *MethodNotAllowedError {
	return &MethodNotAllowedError{
		HttpError: NewHttpError(StatusMethodNotAllowed, "Method Not Allowed"),
		Allowed:   allowed,
	}
}

func (e *MethodNotAllowedError) Response() *Response {
	res := e.HttpError.Response()
	allow := ""
	for i, m := range e.Allowed {
		if i > 0 {
			allow += ", "
		}
		allow += m.String()
	}
	res.Headers().SetString(HeaderAllow, allow)
	return res
}

func PayloadTooLarge(message string) *HttpError {
	return NewHttpError(StatusRequestEntityTooLarge, message)
}

func HTTPVersionNotSupportedError(message string) *HttpError {
	return NewHttpError(StatusHTTPVersionNotSupported, message)
}

func InternalServerError(err error) *HttpError {
	return NewHttpErrorWithError(StatusInternalServerError, "Internal Server Error", err)
}
