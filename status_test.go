package fulcrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusText(t *testing.T) {
	testCases := []struct {
		code Status
		text string
	}{
		{StatusOK, "OK"},
		{StatusCreated, "Created"},
		{StatusNoContent, "No Content"},
		{StatusMovedPermanently, "Moved Permanently"},
		{StatusFound, "Found"},
		{StatusBadRequest, "Bad Request"},
		{StatusUnauthorized, "Unauthorized"},
		{StatusForbidden, "Forbidden"},
		{StatusNotFound, "Not Found"},
		{StatusMethodNotAllowed, "Method Not Allowed"},
		{StatusInternalServerError, "Internal Server Error"},
		{StatusNotImplemented, "Not Implemented"},
		{StatusBadGateway, "Bad Gateway"},
		{StatusServiceUnavailable, "Service Unavailable"},
		{StatusGatewayTimeout, "Gateway Timeout"},
		{999, "Unknown Status Code"},
	}

	for _, tc := range testCases {
		got := StatusText(tc.code.Int())
		assert.Equal(t, tc.text, got, "StatusText(%d) returned incorrect value", tc.code)
		assert.Equal(t, tc.text, tc.code.Text())
	}
}

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, Status(200), StatusOK)
	assert.Equal(t, Status(201), StatusCreated)
	assert.Equal(t, Status(400), StatusBadRequest)
	assert.Equal(t, Status(500), StatusInternalServerError)

	statusCodes := []Status{
		StatusContinue, StatusSwitchingProtocols, StatusProcessing, StatusEarlyHints,
		StatusOK, StatusCreated, StatusAccepted, StatusNonAuthoritativeInfo,
		StatusNoContent, StatusResetContent, StatusPartialContent, StatusMultiStatus,
		StatusAlreadyReported, StatusIMUsed,
		StatusMultipleChoices, StatusMovedPermanently, StatusFound, StatusSeeOther,
		StatusNotModified, StatusUseProxy, StatusTemporaryRedirect, StatusPermanentRedirect,
		StatusBadRequest, StatusUnauthorized, StatusPaymentRequired, StatusForbidden,
		StatusNotFound, StatusMethodNotAllowed, StatusNotAcceptable, StatusProxyAuthRequired,
		StatusRequestTimeout, StatusConflict, StatusGone, StatusLengthRequired,
		StatusPreconditionFailed, StatusRequestEntityTooLarge, StatusRequestURITooLong,
		StatusUnsupportedMediaType, StatusRequestedRangeNotSatisfiable, StatusExpectationFailed,
		StatusTeapot, StatusMisdirectedRequest, StatusUnprocessableEntity, StatusLocked,
		StatusFailedDependency, StatusUpgradeRequired, StatusPreconditionRequired,
		StatusTooManyRequests, StatusRequestHeaderFieldsTooLarge, StatusUnavailableForLegalReasons,
		StatusInternalServerError, StatusNotImplemented, StatusBadGateway, StatusServiceUnavailable,
		StatusGatewayTimeout, StatusHTTPVersionNotSupported, StatusVariantAlsoNegotiates,
		StatusInsufficientStorage, StatusLoopDetected, StatusNotExtended, StatusNetworkAuthenticationRequired,
	}

	for _, code := range statusCodes {
		text := StatusText(code.Int())
		assert.NotEmpty(t, text, "StatusText(%d) returned empty string, expected a description", code)
	}
}

func TestHTTPMethods(t *testing.T) {
	assert.Equal(t, "GET", MethodGet.String())
	assert.Equal(t, "POST", MethodPost.String())
	assert.Equal(t, "PUT", MethodPut.String())
	assert.Equal(t, "DELETE", MethodDelete.String())
	assert.Equal(t, "PATCH", MethodPatch.String())
	assert.Equal(t, "HEAD", MethodHead.String())
	assert.Equal(t, "OPTIONS", MethodOptions.String())

	for _, tok := range []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"} {
		m, ok := MethodFromBytes([]byte(tok))
		assert.True(t, ok, "MethodFromBytes(%q) should succeed", tok)
		assert.Equal(t, tok, m.String())
	}

	if _, ok := MethodFromBytes([]byte("CONNECT")); ok {
		t.Fatal("CONNECT is outside the closed method set and must not parse")
	}
	if _, ok := MethodFromBytes([]byte("TRACE")); ok {
		t.Fatal("TRACE is outside the closed method set and must not parse")
	}
}

func TestStatusTextEdgeCases(t *testing.T) {
	assert.Equal(t, "Unknown Status Code", StatusText(-1))
	assert.Equal(t, "Unknown Status Code", StatusText(0))
	assert.Equal(t, "Unknown Status Code", StatusText(306))
	assert.Equal(t, "Unknown Status Code", StatusText(600))
}
