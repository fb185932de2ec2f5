package accesslog_test

import (
	"bytes"
	"testing"

	"github.com/fulcrumhq/fulcrum"
	"github.com/fulcrumhq/fulcrum/log"
	"github.com/fulcrumhq/fulcrum/middleware/accesslog"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigFormat(t *testing.T) {
	cfg := accesslog.DefaultConfig()
	assert.Equal(t, "${time} | ${status} | ${latency_human} | ${method} ${path} | ${error}", cfg.Format)
}

func TestAccessLogWritesLine(t *testing.T) {
	buf := &bytes.Buffer{}
	testLogger := log.New(buf, log.DebugLevel)

	s := fulcrum.New()
	s.Use(accesslog.New("", accesslog.Config{
		Format: "${method} ${path} ${status}",
		Logger: testLogger,
	}))
	_ = s.GET("/ping", func(c *fulcrum.Context) *fulcrum.Response {
		return c.Text(fulcrum.StatusOK, "pong")
	})

	res := s.Inject(fulcrum.MethodGet, "/ping", nil, nil)
	assert.Equal(t, fulcrum.StatusOK, res.Status())

	line := buf.String()
	assert.Contains(t, line, "GET")
	assert.Contains(t, line, "/ping")
	assert.Contains(t, line, "200")
}

func TestAccessLogRecordsHandlerError(t *testing.T) {
	buf := &bytes.Buffer{}
	testLogger := log.New(buf, log.DebugLevel)

	s := fulcrum.New()
	s.Use(accesslog.New("", accesslog.Config{
		Format: "${status} ${error}",
		Logger: testLogger,
	}))
	_ = s.GET("/boom", func(c *fulcrum.Context) *fulcrum.Response {
		c.Error(fulcrum.InternalServerError(assert.AnError))
		return c.Text(fulcrum.StatusInternalServerError, "boom")
	})

	res := s.Inject(fulcrum.MethodGet, "/boom", nil, nil)
	assert.Equal(t, fulcrum.StatusInternalServerError, res.Status())

	line := buf.String()
	assert.Contains(t, line, "500")
	assert.Contains(t, line, assert.AnError.Error())
}
