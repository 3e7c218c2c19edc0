package middleware

import (
	"bytes"

	"github.com/klauspost/compress/gzip"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
)

// CompressConfig configures response gzip compression.
type CompressConfig struct {
	// Level is the gzip compression level (gzip.DefaultCompression if 0).
	Level int
	// MinLength skips compressing bodies shorter than this, since gzip
	// overhead dominates for tiny payloads.
	MinLength int
}

// DefaultCompressConfig matches klauspost/compress's own default level
// and a 256-byte floor below which compression isn't worth the CPU.
func DefaultCompressConfig() CompressConfig {
	return CompressConfig{Level: gzip.DefaultCompression, MinLength: 256}
}

// Compress returns a Fang with DefaultCompressConfig.
func Compress() volt.Fang { return CompressWithConfig(DefaultCompressConfig()) }

// CompressWithConfig returns a Fang that gzip-encodes a response body when
// the client's Accept-Encoding allows it and the body clears MinLength. A
// Content-Encoding the handler already set is not checked and is
// overwritten with gzip. Uses
// klauspost/compress/gzip rather than compress/gzip for its documented
// throughput advantage on the write path.
func CompressWithConfig(config CompressConfig) volt.Fang {
	if config.Level == 0 {
		config.Level = gzip.DefaultCompression
	}

	return func(inner volt.FangProc) volt.FangProc {
		return func(ctx *volt.Context, req *engine.Request) *engine.Response {
			resp := inner(ctx, req)

			if !acceptsGzip(req) {
				return resp
			}
			body := resp.Body.Bytes()
			if len(body) < config.MinLength {
				return resp
			}

			var buf bytes.Buffer
			w, err := gzip.NewWriterLevel(&buf, config.Level)
			if err != nil {
				return resp
			}
			if _, err := w.Write(body); err != nil {
				return resp
			}
			if err := w.Close(); err != nil {
				return resp
			}

			resp.SetBodyBytes(buf.Bytes())
			resp.Headers.SetCustom("Content-Encoding", []byte("gzip"))
			resp.Headers.SetVary([]byte("Accept-Encoding"))
			return resp
		}
	}
}

func acceptsGzip(req *engine.Request) bool {
	ae, ok := req.Headers.Get("accept-encoding")
	if !ok {
		return false
	}
	return bytes.Contains(ae, []byte("gzip"))
}
