package fulcrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectRoutesThroughRealCodec(t *testing.T) {
	s := New()
	err := s.GET("/users/:id", func(c *Context) *Response {
		id, _ := c.Param("id")
		return c.Text(StatusOK, "user "+id)
	})
	assert.NoError(t, err)

	res := s.Inject(MethodGet, "/users/42", nil, nil)
	assert.Equal(t, StatusOK, res.Status())
	assert.Equal(t, "user 42", string(res.Body()))
}

func TestInjectWithBody(t *testing.T) {
	s := New()
	err := s.POST("/echo", func(c *Context) *Response {
		return c.Text(StatusOK, string(c.Request.Body()))
	})
	assert.NoError(t, err)

	res := s.Inject(MethodPost, "/echo", map[string]string{"Content-Type": "text/plain"}, []byte("hello"))
	assert.Equal(t, StatusOK, res.Status())
	assert.Equal(t, "hello", string(res.Body()))
}

func TestInjectNotFound(t *testing.T) {
	s := New()
	res := s.Inject(MethodGet, "/missing", nil, nil)
	assert.Equal(t, StatusNotFound, res.Status())
}
