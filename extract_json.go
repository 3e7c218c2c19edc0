package volt

import (
	"bytes"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/valyala/bytebufferpool"

	"github.com/voltweb/volt/engine"
)

// validate is a single shared validator instance; go-playground/validator
// caches struct metadata internally, so sharing one instance across every
// JSON[T] extraction is the documented usage, not an optimization of our
// own.
var validate = validator.New()

// FromBody is FromRequest's Content-Type-gated specialization (spec
// §4.4): "JSON requires exactly application/json; URL-encoded requires
// application/x-www-form-urlencoded; multipart requires
// multipart/form-data; boundary=… and the boundary governs parse." Only
// the JSON case is implemented here; URL-encoded and multipart extractors
// are Open Questions left for a later iteration (not needed by any
// SPEC_FULL.md component beyond the JSON scenario).
const jsonContentType = "application/json"

// JSON is a generic FromRequest extracting and decoding a JSON body of
// shape T, using goccy/go-json the way bolt wires it in for speed over
// encoding/json (bolt's stated rationale: "1.7-3.7x better performance").
type JSON[T any] struct {
	Value T
}

// FromRequest implements FromRequest for JSON[T].
func (j *JSON[T]) FromRequest(req *engine.Request) (bool, *engine.Response) {
	ct, ok := req.Headers.Get(engine.HeaderContentType)
	if !ok {
		return false, nil
	}
	if !hasMediaType(ct, jsonContentType) {
		return false, nil
	}
	body := req.Body.Bytes()
	if len(body) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, &j.Value); err != nil {
		return true, engine.NewTextResponse(400, "malformed JSON body")
	}
	if err := validate.Struct(j.Value); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); !ok {
			return true, engine.NewTextResponse(422, err.Error())
		}
	}
	return true, nil
}

// hasMediaType reports whether ct's media type (ignoring parameters like
// "; charset=utf-8") equals want, case-insensitively.
func hasMediaType(ct []byte, want string) bool {
	semi := bytes.IndexByte(ct, ';')
	media := ct
	if semi >= 0 {
		media = ct[:semi]
	}
	media = bytes.TrimSpace(media)
	return bytes.EqualFold(media, []byte(want))
}

// marshalJSON encodes v with goccy/go-json through a pooled buffer
// (valyala/bytebufferpool, grounded on shockwave's pool.go idiom for
// reusable write buffers) and wraps the result in a JSON Response.
func marshalJSON(status int, v any) (*engine.Response, error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	enc := json.NewEncoder(bb)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	body := make([]byte, bb.Len())
	copy(body, bb.Bytes())

	resp := engine.NewEmptyResponse(status)
	SetContentTypeJSON(resp)
	resp.SetBodyBytes(body)
	return resp, nil
}

// JSONResponse is a convenience for handlers that just want to return
// encoded JSON directly, without going through Data[T]/SendData.
func JSONResponse(status int, v any) *engine.Response {
	resp, err := marshalJSON(status, v)
	if err != nil {
		return engine.NewTextResponse(500, "failed to encode response")
	}
	return resp
}
