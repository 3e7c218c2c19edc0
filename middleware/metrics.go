package middleware

import (
	"bytes"
	"net/http"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
	"github.com/voltweb/volt/server"
)

// bufferedResponseWriter adapts http.ResponseWriter onto a plain buffer, the
// minimum needed to drive promhttp.Handler without a real net/http server
// loop behind it.
type bufferedResponseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponseWriter() *bufferedResponseWriter {
	return &bufferedResponseWriter{header: make(http.Header), status: 200}
}

func (w *bufferedResponseWriter) Header() http.Header { return w.header }
func (w *bufferedResponseWriter) Write(b []byte) (int, error) { return w.body.Write(b) }
func (w *bufferedResponseWriter) WriteHeader(status int)      { w.status = status }

// Metrics returns a Fang that serves path as a Prometheus scrape endpoint
// backed by m, short-circuiting the chain only for that exact path; every
// other request passes through untouched. Grounded on spec's DOMAIN STACK
// entry for client_golang ("server.Stats exposition via a /metrics Fang"),
// bridging server.Metrics' net/http-shaped promhttp.Handler into volt's
// own Fang/engine.Response contract.
func Metrics(path string, m *server.Metrics) volt.Fang {
	return func(inner volt.FangProc) volt.FangProc {
		return func(ctx *volt.Context, req *engine.Request) *engine.Response {
			if string(req.Path()) != path {
				return inner(ctx, req)
			}

			httpReq, err := http.NewRequest("GET", path, nil)
			if err != nil {
				return engine.NewTextResponse(500, "failed to build metrics request")
			}
			w := newBufferedResponseWriter()
			m.Handler().ServeHTTP(w, httpReq)

			resp := engine.NewEmptyResponse(w.status)
			if ct := w.header.Get("Content-Type"); ct != "" {
				resp.Headers.SetContentType([]byte(ct))
			}
			resp.SetBodyBytes(w.body.Bytes())
			return resp
		}
	}
}
