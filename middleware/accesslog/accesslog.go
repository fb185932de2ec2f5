// Package accesslog implements a request-logging Fang, grounded on the
// teacher's ${tag} format-string middleware, adapted to run as a Back
// fang over *fulcrum.Response and the new zap-backed log package.
package accesslog

import (
	"strconv"
	"strings"
	"time"

	"github.com/fulcrumhq/fulcrum"
	"github.com/fulcrumhq/fulcrum/log"
)

// Config controls the access-log line format.
type Config struct {
	// Format is the log line template. Available placeholders:
	// ${remote_ip} ${method} ${path} ${status} ${latency} ${latency_human}
	// ${bytes_in} ${user_agent} ${referer} ${time} ${query} ${error}
	Format string

	// Logger receives the formatted line; defaults to the package's
	// own logger (stdout, InfoLevel) when nil.
	Logger *log.Logger
}

// DefaultConfig returns the teacher's default format string.
func DefaultConfig() Config {
	return Config{
		Format: "${time} | ${status} | ${latency_human} | ${method} ${path} | ${error}",
	}
}

var defaultLogger = log.New(nil, log.InfoLevel)

// New builds an access-logging Fang applied to every request under
// prefix. An empty prefix applies it globally.
func New(prefix string, config ...Config) fulcrum.Fang {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger
	}

	const stateKey = "accesslog.start"

	return fulcrum.Fang{
		Prefix: prefix,
		Front: func(c *fulcrum.Context) *fulcrum.Response {
			c.SetState(stateKey, time.Now())
			return nil
		},
		Back: func(c *fulcrum.Context, res *fulcrum.Response) {
			var start time.Time
			if v, ok := c.State(stateKey); ok {
				start, _ = v.(time.Time)
			}
			latency := time.Since(start)

			msg := format(cfg.Format, c, res, latency)

			status := int(res.Status())
			err := c.GetError()
			switch {
			case status >= 500:
				logEvent(logger.Error(), err, msg)
			case status >= 400:
				logEvent(logger.Warn(), err, msg)
			default:
				logEvent(logger.Info(), err, msg)
			}
		},
	}
}

func logEvent(ev log.IEvent, err error, msg string) {
	if err != nil {
		ev.Err(err).Msg(msg)
		return
	}
	ev.Msg(msg)
}

func format(tpl string, c *fulcrum.Context, res *fulcrum.Response, latency time.Duration) string {
	userAgent, _ := c.Request.Header("User-Agent")
	referer, _ := c.Request.Header("Referer")

	msg := tpl
	msg = replaceTag(msg, "${remote_ip}", c.IP())
	msg = replaceTag(msg, "${method}", c.Request.Method().String())
	msg = replaceTag(msg, "${path}", c.Request.Path())
	msg = replaceTag(msg, "${status}", strconv.Itoa(int(res.Status())))
	msg = replaceTag(msg, "${latency}", latency.String())
	msg = replaceTag(msg, "${latency_human}", formatLatency(latency))
	msg = replaceTag(msg, "${bytes_in}", strconv.Itoa(len(c.Request.Body())))
	msg = replaceTag(msg, "${user_agent}", userAgent)
	msg = replaceTag(msg, "${referer}", referer)
	msg = replaceTag(msg, "${time}", time.Now().Format("2006-01-02 15:04:05"))
	msg = replaceTag(msg, "${query}", rawQuery(c))

	if err := c.GetError(); err != nil {
		msg = replaceTag(msg, "${error}", "error: "+err.Error())
	} else {
		msg = replaceTag(msg, "${error}", "")
	}
	return msg
}

func rawQuery(c *fulcrum.Context) string {
	path := c.Request.RawPath()
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[i+1:]
	}
	return ""
}

func replaceTag(msg, tag, value string) string {
	return strings.Replace(msg, tag, value, -1)
}

func formatLatency(d time.Duration) string {
	if d < time.Microsecond {
		return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
	}
	if d < time.Millisecond {
		return strconv.FormatFloat(float64(d.Nanoseconds())/float64(time.Microsecond), 'f', 2, 64) + "µs"
	}
	if d < time.Second {
		return strconv.FormatFloat(float64(d.Nanoseconds())/float64(time.Millisecond), 'f', 2, 64) + "ms"
	}
	return strconv.FormatFloat(float64(d.Nanoseconds())/float64(time.Second), 'f', 2, 64) + "s"
}
