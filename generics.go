package volt

import (
	"fmt"

	"github.com/voltweb/volt/engine"
)

// Data wraps a handler's payload with status/metadata/error, the same
// shape bolt/core/generics.go's Data[T] uses. Go cannot give a generic
// type a generic method, so turning a Data[T] into a Response goes
// through the standalone SendData function rather than a
// Data[T].IntoResponse method, exactly as bolt's own doc comment explains.
type Data[T any] struct {
	Value    T
	Error    error
	Metadata map[string]any
	Status   int
	Headers  map[string]string
}

// WithMeta attaches one metadata entry and returns d for chaining.
func (d Data[T]) WithMeta(key string, value any) Data[T] {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any, 2)
	}
	d.Metadata[key] = value
	return d
}

// WithHeader attaches one custom response header and returns d for
// chaining.
func (d Data[T]) WithHeader(key, value string) Data[T] {
	if d.Headers == nil {
		d.Headers = make(map[string]string, 2)
	}
	d.Headers[key] = value
	return d
}

// OK wraps value as a 200 response.
func OK[T any](value T) Data[T] { return Data[T]{Value: value, Status: 200} }

// Created wraps value as a 201 response.
func Created[T any](value T) Data[T] { return Data[T]{Value: value, Status: 201} }

// NoContent returns a bodyless 204 response.
func NoContent[T any]() Data[T] { return Data[T]{Status: 204} }

// BadRequest wraps err as a 400 response.
func BadRequest[T any](err error) Data[T] { return Data[T]{Error: err, Status: 400} }

// Unauthorized wraps err as a 401 response.
func Unauthorized[T any](err error) Data[T] { return Data[T]{Error: err, Status: 401} }

// Forbidden wraps err as a 403 response.
func Forbidden[T any](err error) Data[T] { return Data[T]{Error: err, Status: 403} }

// NotFound wraps err as a 404 response.
func NotFound[T any](err error) Data[T] { return Data[T]{Error: err, Status: 404} }

// InternalError wraps err as a 500 response.
func InternalError[T any](err error) Data[T] { return Data[T]{Error: err, Status: 500} }

// SendData serializes d to JSON and produces the wire Response, the
// standalone counterpart to bolt's sendData[T] helper (a package-level
// function, since generics cannot cross a package-function/method
// boundary either).
func SendData[T any](d Data[T]) *engine.Response {
	status := d.Status
	if status == 0 {
		status = 200
	}

	body := struct {
		Data  T              `json:"data,omitempty"`
		Error string         `json:"error,omitempty"`
		Meta  map[string]any `json:"meta,omitempty"`
	}{Data: d.Value, Meta: d.Metadata}
	if d.Error != nil {
		body.Error = d.Error.Error()
	}

	resp, err := marshalJSON(status, body)
	if err != nil {
		return engine.NewTextResponse(500, "failed to encode response")
	}
	for k, v := range d.Headers {
		resp.Headers.SetCustom(k, []byte(v))
	}
	return resp
}

// Result carries either a Data[T] or an error, a type-safe alternative
// to returning (Data[T], error) (grounded on bolt/core/generics.go's
// Result[T]).
type Result[T any] struct {
	Data *Data[T]
	Err  error
}

// Handler-from-function matrix: handler functions may take 0..2 path
// parameters (each FromParam) and 0..4 request extractors (each
// FromRequest), in any combination (spec §4.3/§9: "generated
// mechanically, not recursively"). H<p>[I<k>] names the arity: p path
// params, k extractors.

func extractOne[T any](req *engine.Request) (T, *engine.Response) {
	var v T
	fr, ok := any(&v).(FromRequest)
	if !ok {
		return v, engine.NewTextResponse(500, fmt.Sprintf("volt: %T does not implement FromRequest", v))
	}
	if resp := RequestInto(req, fr); resp != nil {
		return v, resp
	}
	return v, nil
}

// H0 adapts a handler with no path parameters and no extractors.
func H0(fn func(ctx *Context) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		return fn(ctx)
	}
}

// H1 adapts a handler taking one path parameter.
func H1[P1 any](fn func(ctx *Context, p1 P1) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		return fn(ctx, p1)
	}
}

// H2 adapts a handler taking two path parameters.
func H2[P1, P2 any](fn func(ctx *Context, p1 P1, p2 P2) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		var p2 P2
		if resp := ParamInto(ctx, 1, &p2); resp != nil {
			return resp
		}
		return fn(ctx, p1, p2)
	}
}

// H0I1 adapts a handler with no path parameters and one extractor.
func H0I1[I1 any](fn func(ctx *Context, i1 I1) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, i1)
	}
}

// H0I2 adapts a handler with no path parameters and two extractors.
func H0I2[I1, I2 any](fn func(ctx *Context, i1 I1, i2 I2) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, i1, i2)
	}
}

// H0I3 adapts a handler with no path parameters and three extractors.
func H0I3[I1, I2, I3 any](fn func(ctx *Context, i1 I1, i2 I2, i3 I3) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		i3, resp := extractOne[I3](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, i1, i2, i3)
	}
}

// H0I4 adapts a handler with no path parameters and four extractors.
func H0I4[I1, I2, I3, I4 any](fn func(ctx *Context, i1 I1, i2 I2, i3 I3, i4 I4) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		i3, resp := extractOne[I3](req)
		if resp != nil {
			return resp
		}
		i4, resp := extractOne[I4](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, i1, i2, i3, i4)
	}
}

// H1I1 adapts a handler taking one path parameter and one extractor.
func H1I1[P1, I1 any](fn func(ctx *Context, p1 P1, i1 I1) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, p1, i1)
	}
}

// H1I2 adapts a handler taking one path parameter and two extractors.
func H1I2[P1, I1, I2 any](fn func(ctx *Context, p1 P1, i1 I1, i2 I2) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, p1, i1, i2)
	}
}

// H1I3 adapts a handler taking one path parameter and three extractors.
func H1I3[P1, I1, I2, I3 any](fn func(ctx *Context, p1 P1, i1 I1, i2 I2, i3 I3) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		i3, resp := extractOne[I3](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, p1, i1, i2, i3)
	}
}

// H1I4 adapts a handler taking one path parameter and four extractors.
func H1I4[P1, I1, I2, I3, I4 any](fn func(ctx *Context, p1 P1, i1 I1, i2 I2, i3 I3, i4 I4) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		i3, resp := extractOne[I3](req)
		if resp != nil {
			return resp
		}
		i4, resp := extractOne[I4](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, p1, i1, i2, i3, i4)
	}
}

// H2I1 adapts a handler taking two path parameters and one extractor.
func H2I1[P1, P2, I1 any](fn func(ctx *Context, p1 P1, p2 P2, i1 I1) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		var p2 P2
		if resp := ParamInto(ctx, 1, &p2); resp != nil {
			return resp
		}
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, p1, p2, i1)
	}
}

// H2I2 adapts a handler taking two path parameters and two extractors.
func H2I2[P1, P2, I1, I2 any](fn func(ctx *Context, p1 P1, p2 P2, i1 I1, i2 I2) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		var p2 P2
		if resp := ParamInto(ctx, 1, &p2); resp != nil {
			return resp
		}
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, p1, p2, i1, i2)
	}
}

// H2I3 adapts a handler taking two path parameters and three extractors.
func H2I3[P1, P2, I1, I2, I3 any](fn func(ctx *Context, p1 P1, p2 P2, i1 I1, i2 I2, i3 I3) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		var p2 P2
		if resp := ParamInto(ctx, 1, &p2); resp != nil {
			return resp
		}
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		i3, resp := extractOne[I3](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, p1, p2, i1, i2, i3)
	}
}

// H2I4 adapts a handler taking two path parameters and four extractors.
func H2I4[P1, P2, I1, I2, I3, I4 any](fn func(ctx *Context, p1 P1, p2 P2, i1 I1, i2 I2, i3 I3, i4 I4) *engine.Response) Handler {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		var p1 P1
		if resp := ParamInto(ctx, 0, &p1); resp != nil {
			return resp
		}
		var p2 P2
		if resp := ParamInto(ctx, 1, &p2); resp != nil {
			return resp
		}
		i1, resp := extractOne[I1](req)
		if resp != nil {
			return resp
		}
		i2, resp := extractOne[I2](req)
		if resp != nil {
			return resp
		}
		i3, resp := extractOne[I3](req)
		if resp != nil {
			return resp
		}
		i4, resp := extractOne[I4](req)
		if resp != nil {
			return resp
		}
		return fn(ctx, p1, p2, i1, i2, i3, i4)
	}
}
