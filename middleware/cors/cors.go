// Package cors implements the CORS fang spec.md's non-goals list as an
// external collaborator: the core only needs Fang's Prefix/Front/Back
// contract, never CORS policy itself.
package cors

import (
	"strconv"
	"strings"

	"github.com/fulcrumhq/fulcrum"
)

// New builds a Fang that applies cfg's CORS policy to every request
// under prefix. An empty prefix applies it globally.
func New(prefix string, cfg fulcrum.CORSPolicy) fulcrum.Fang {
	allowMethods := methodList(cfg.AllowMethods)
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")

	return fulcrum.Fang{
		Prefix: prefix,
		Front: func(c *fulcrum.Context) *fulcrum.Response {
			origin, ok := c.Request.Header("Origin")
			if !ok {
				return nil
			}

			allowOrigin := matchOrigin(cfg.AllowOrigins, origin)
			if allowOrigin == "" {
				return nil
			}

			if c.Request.Method() == fulcrum.MethodOptions {
				res := c.NoContent(fulcrum.StatusNoContent)
				setCORSHeaders(res, allowOrigin, cfg)
				res.Headers().SetString(fulcrum.HeaderAccessControlAllowMethods, allowMethods)
				if len(cfg.AllowHeaders) > 0 {
					res.Headers().SetString(fulcrum.HeaderAccessControlAllowHeaders, allowHeaders)
				} else if reqHeaders, ok := c.Request.Header("Access-Control-Request-Headers"); ok {
					res.Headers().SetString(fulcrum.HeaderAccessControlAllowHeaders, reqHeaders)
				}
				if cfg.MaxAge > 0 {
					res.Headers().SetString(fulcrum.HeaderAccessControlMaxAge, strconv.Itoa(int(cfg.MaxAge.Seconds())))
				}
				return res
			}
			return nil
		},
		Back: func(c *fulcrum.Context, res *fulcrum.Response) {
			origin, ok := c.Request.Header("Origin")
			if !ok || c.Request.Method() == fulcrum.MethodOptions {
				return
			}
			allowOrigin := matchOrigin(cfg.AllowOrigins, origin)
			if allowOrigin == "" {
				return
			}
			setCORSHeaders(res, allowOrigin, cfg)
			if len(cfg.ExposeHeaders) > 0 {
				res.Headers().SetString(fulcrum.HeaderAccessControlExposeHeaders, exposeHeaders)
			}
		},
	}
}

func setCORSHeaders(res *fulcrum.Response, allowOrigin string, cfg fulcrum.CORSPolicy) {
	res.Headers().SetString(fulcrum.HeaderAccessControlAllowOrigin, allowOrigin)
	if allowOrigin != "*" {
		res.Headers().SetString(fulcrum.HeaderVary, "Origin")
	}
	if cfg.AllowCredentials {
		res.Headers().SetString(fulcrum.HeaderAccessControlAllowCredentials, "true")
	}
}

func matchOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if o == origin {
			return origin
		}
	}
	return ""
}

func methodList(methods []fulcrum.Method) string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}
