package middleware

import (
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
)

// LoggerConfig configures the structured request logger. Grounded on
// bolt/middleware/logger.go's LoggerConfig.
type LoggerConfig struct {
	Output    io.Writer
	SkipPaths []string
}

// DefaultLoggerConfig writes newline-delimited JSON to stdout.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Output: os.Stdout}
}

// logEntry is the JSON shape written per request, mirroring bolt's
// LogEntry field-for-field minus its Error field (volt's Handler contract
// has no error return to log; panics are reported by Recovery instead).
type logEntry struct {
	Time       string  `json:"time"`
	Method     string  `json:"method"`
	Path       string  `json:"path"`
	Status     int     `json:"status"`
	DurationMS float64 `json:"duration_ms"`
}

// Logger returns a Fang with DefaultLoggerConfig.
func Logger() volt.Fang { return LoggerWithConfig(DefaultLoggerConfig()) }

// LoggerWithConfig returns a Fang that times each request and writes one
// JSON log line per non-skipped path, using goccy/go-json the same as the
// rest of volt's JSON surface for consistency rather than encoding/json.
func LoggerWithConfig(config LoggerConfig) volt.Fang {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}

	return func(inner volt.FangProc) volt.FangProc {
		return func(ctx *volt.Context, req *engine.Request) *engine.Response {
			path := string(req.Path())
			if skip[path] {
				return inner(ctx, req)
			}

			start := time.Now()
			resp := inner(ctx, req)
			duration := time.Since(start)

			// A fresh encoder per request, since concurrent sessions share
			// config.Output and json.Encoder keeps no state worth pooling here.
			_ = json.NewEncoder(config.Output).Encode(logEntry{
				Time:       start.Format(time.RFC3339),
				Method:     req.Method.String(),
				Path:       path,
				Status:     resp.Status,
				DurationMS: float64(duration.Microseconds()) / 1000.0,
			})

			return resp
		}
	}
}
