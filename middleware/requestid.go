package middleware

import (
	"github.com/google/uuid"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
)

// requestIDHeader is the header name the fang both reads (to honor a
// caller-supplied ID) and writes back on the response.
const requestIDHeader = "X-Request-ID"

// requestIDKey is the Memory/Memorize key RequestID stores the generated
// or forwarded ID under, for downstream handlers and Logger-style fangs
// to Recall.
type requestIDKey struct{}

// RequestID returns a Fang that stamps every request with a UUIDv4
// (google/uuid, the same library bolt's generics doc references for
// correlation IDs), reusing an inbound X-Request-ID when the caller
// already supplied one.
func RequestID() volt.Fang {
	return func(inner volt.FangProc) volt.FangProc {
		return func(ctx *volt.Context, req *engine.Request) *engine.Response {
			id, ok := req.Headers.Get(requestIDHeaderLower)
			var idStr string
			if ok && len(id) > 0 {
				idStr = string(id)
			} else {
				idStr = uuid.NewString()
			}
			volt.Memorize(req, requestIDKey{}, idStr)

			resp := inner(ctx, req)
			resp.Headers.SetCustom(requestIDHeader, []byte(idStr))
			return resp
		}
	}
}

var requestIDHeaderLower = "x-request-id"

// RequestIDFromRequest recalls the ID RequestID's fang attached, for
// handlers that want to include it in a log line or error body.
func RequestIDFromRequest(req *engine.Request) (string, bool) {
	v, ok := volt.Recall(req, requestIDKey{})
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
