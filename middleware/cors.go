// Package middleware collects ready-made Fangs: CORS, structured request
// logging, panic recovery, request-ID stamping, and response compression.
// Each constructor mirrors bolt/middleware's config-struct-plus-defaults
// shape, adapted from bolt's next(c)-returning-error Middleware to volt's
// Fang(inner FangProc) FangProc value shape (fang.go).
package middleware

import (
	"strconv"
	"strings"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
)

// CORSConfig configures the CORS fang. Grounded on bolt/middleware/cors.go's
// CORSConfig, field-for-field.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig mirrors bolt's defaults: every origin, the seven
// methods spec §6 names, every header, no credentials, a day-long preflight
// cache.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{},
		MaxAge:        86400,
	}
}

// CORS returns a Fang with DefaultCORSConfig.
func CORS() volt.Fang { return CORSWithConfig(DefaultCORSConfig()) }

// CORSWithConfig returns a Fang that annotates responses with
// Access-Control-* headers and short-circuits OPTIONS preflights with a
// 204, precomputing the joined header-value strings once at registration
// time the way bolt does.
func CORSWithConfig(config CORSConfig) volt.Fang {
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"*"}
	}
	if len(config.AllowMethods) == 0 {
		config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}
	}
	if len(config.AllowHeaders) == 0 {
		config.AllowHeaders = []string{"*"}
	}
	if config.MaxAge == 0 {
		config.MaxAge = 86400
	}

	allowMethods := []byte(strings.Join(config.AllowMethods, ", "))
	allowHeaders := []byte(strings.Join(config.AllowHeaders, ", "))
	exposeHeaders := []byte(strings.Join(config.ExposeHeaders, ", "))
	maxAge := []byte(strconv.Itoa(config.MaxAge))

	allowAllOrigins := false
	originSet := make(map[string]bool, len(config.AllowOrigins))
	for _, o := range config.AllowOrigins {
		if o == "*" {
			allowAllOrigins = true
			break
		}
		originSet[o] = true
	}

	return func(inner volt.FangProc) volt.FangProc {
		return func(ctx *volt.Context, req *engine.Request) *engine.Response {
			origin, _ := req.Headers.Get("origin")

			var allowOrigin []byte
			switch {
			case allowAllOrigins:
				allowOrigin = []byte("*")
			case len(origin) > 0 && originSet[string(origin)]:
				allowOrigin = origin
			}

			if req.Method == engine.MethodOPTIONS {
				resp := engine.NewEmptyResponse(204)
				if allowOrigin != nil {
					resp.Headers.SetACAO(allowOrigin)
					resp.Headers.SetCustom("Access-Control-Allow-Methods", allowMethods)
					resp.Headers.SetCustom("Access-Control-Allow-Headers", allowHeaders)
					resp.Headers.SetCustom("Access-Control-Max-Age", maxAge)
					if config.AllowCredentials {
						resp.Headers.SetCustom("Access-Control-Allow-Credentials", []byte("true"))
					}
				}
				return resp
			}

			resp := inner(ctx, req)
			if allowOrigin != nil {
				resp.Headers.SetACAO(allowOrigin)
				resp.Headers.SetVary([]byte("Origin"))
				if config.AllowCredentials {
					resp.Headers.SetCustom("Access-Control-Allow-Credentials", []byte("true"))
				}
				if len(exposeHeaders) > 0 {
					resp.Headers.SetCustom("Access-Control-Expose-Headers", exposeHeaders)
				}
			}
			return resp
		}
	}
}
