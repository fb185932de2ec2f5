package fulcrum

import "time"

// CORSPolicy configures middleware/cors's fang. Server does not read
// Config.CORS or install the fang itself; a policy takes effect only
// when passed to cors.New and registered with Use or on a route.
type CORSPolicy struct {
	AllowOrigins     []string
	AllowMethods     []Method
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// JWTConfig holds token verification material. Empty Secret means "no
// JWT material configured". No fang in this module reads it.
type JWTConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
}

// Config carries every knob the server builder needs, supplied once at
// construction instead of hidden process-wide state, per §6: "All are
// supplied to the server builder; no hidden process-wide state."
// Mirrors the teacher's builder-style Config/DefaultConfig shape.
type Config struct {
	// ReadTimeout is carried in Config but not enforced by the server:
	// a connection waiting for a full request has no read deadline.
	ReadTimeout time.Duration

	// WriteTimeout is carried in Config but not enforced by the server:
	// response writes have no deadline.
	WriteTimeout time.Duration

	// IdleTimeout is passed to gnet as the TCP keep-alive period
	// (engine.go); the server does not close idle connections itself.
	IdleTimeout time.Duration

	// FangTimeout is not read by the server or by middleware/timeout,
	// which takes its deadline from its own Config.Duration.
	FangTimeout time.Duration

	DisableStartupMessage bool

	// Debug raises the logger to DebugLevel.
	Debug bool

	// AccessLogFile, when set, rotates logging through that file via
	// log.NewRotating instead of writing to stdout.
	AccessLogFile string

	ErrorHandler Handler

	CORS CORSPolicy
	JWT  JWTConfig
}

// DefaultConfig returns sensible defaults: 5s read, 10s write, 15s
// idle, no fang timeout, the package's default error handler.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           15 * time.Second,
		DisableStartupMessage: false,
		ErrorHandler:          defaultErrorHandlerFunc,
	}
}

func defaultErrorHandlerFunc(c *Context) *Response {
	if err := c.GetError(); err != nil {
		return errorToResponse(err)
	}
	return c.NoContent(StatusInternalServerError)
}
