package volt

import (
	"fmt"
	"strconv"

	"github.com/voltweb/volt/engine"
)

// FromParam is implemented by pointer-receiver types that populate
// themselves from one raw captured path segment (spec §4.4:
// "FromParam<'req>::from_raw_param(&'req [u8]) → Result<Self, Response>").
// Modeled after encoding.TextUnmarshaler so ordinary custom types opt in
// without a generics-based interface hierarchy.
type FromParam interface {
	FromRawParam(raw []byte) error
}

// FromRequest is implemented by pointer-receiver types that populate
// themselves from the whole Request (spec §4.4). present=false means the
// item was simply absent (a 400 "missing" is synthesized); a non-nil
// resp is the extractor's own explicit failure response.
type FromRequest interface {
	FromRequest(req *engine.Request) (present bool, resp *engine.Response)
}

// IntoResponse converts a handler's return value into a wire Response
// (spec §4.4).
type IntoResponse interface {
	IntoResponse() *engine.Response
}

// IntoBody converts a value into response body bytes plus the
// Content-Type describing them (spec §4.4: "Body types implementing
// IntoBody ... set both Content-Type and Content-Length at
// serialization").
type IntoBody interface {
	IntoBody() (contentType string, body []byte)
}

// ParamInto extracts the i'th path parameter into dst, covering spec
// §4.4's required built-ins (integers, the borrowed string view, owned
// string) plus any custom FromParam. A non-nil return is the 400-class
// response the chain must short-circuit with, without invoking the
// handler.
func ParamInto[T any](ctx *Context, i int, dst *T) *engine.Response {
	raw, ok := ctx.Param(i)
	if !ok {
		return badRequest("missing path parameter")
	}
	if err := parseParam(raw, dst); err != nil {
		return badRequest("invalid path parameter")
	}
	return nil
}

func parseParam[T any](raw []byte, dst *T) error {
	switch p := any(dst).(type) {
	case *string:
		*p = string(raw)
	case *[]byte:
		*p = raw
	case *int:
		n, err := strconv.Atoi(string(raw))
		if err != nil {
			return err
		}
		*p = n
	case *int64:
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return err
		}
		*p = n
	case *uint:
		n, err := strconv.ParseUint(string(raw), 10, 64)
		if err != nil {
			return err
		}
		*p = uint(n)
	case *uint64:
		n, err := strconv.ParseUint(string(raw), 10, 64)
		if err != nil {
			return err
		}
		*p = n
	case *float64:
		n, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return err
		}
		*p = n
	case *bool:
		b, err := strconv.ParseBool(string(raw))
		if err != nil {
			return err
		}
		*p = b
	case FromParam:
		return p.FromRawParam(raw)
	default:
		return fmt.Errorf("volt: no FromParam extractor registered for %T", dst)
	}
	return nil
}

// RequestInto runs dst's FromRequest and translates its None/Err/Some
// result into either a short-circuit Response or nil for success.
func RequestInto(req *engine.Request, dst FromRequest) *engine.Response {
	present, resp := dst.FromRequest(req)
	if resp != nil {
		return resp
	}
	if !present {
		return badRequest("missing something expected in request")
	}
	return nil
}

func badRequest(msg string) *engine.Response {
	return engine.NewTextResponse(400, msg)
}

// Respond converts an arbitrary handler return value into a wire
// Response, the free-function equivalent of spec §4.4's IntoResponse
// contract (Go cannot dispatch on a return type alone, so handlers that
// don't already return *engine.Response should route their value through
// this once, e.g. `return volt.Respond(data)`).
func Respond(v any) *engine.Response {
	switch val := v.(type) {
	case *engine.Response:
		return val
	case IntoResponse:
		return val.IntoResponse()
	case IntoBody:
		ct, body := val.IntoBody()
		r := engine.NewEmptyResponse(200)
		r.Headers.SetContentType([]byte(ct))
		r.SetBodyBytes(body)
		return r
	case string:
		return engine.NewTextResponse(200, val)
	case []byte:
		r := engine.NewEmptyResponse(200)
		r.SetBodyBytes(val)
		return r
	case error:
		return engine.NewTextResponse(500, val.Error())
	case nil:
		return engine.NewEmptyResponse(204)
	default:
		return engine.NewEmptyResponse(204)
	}
}
