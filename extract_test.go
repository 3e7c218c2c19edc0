package volt

import (
	"errors"
	"testing"

	"github.com/voltweb/volt/engine"
)

func ctxWithParam(val string) *Context {
	ctx := newContext(nil)
	ctx.Params.push([]byte("p"), []byte(val))
	return ctx
}

func TestParamIntoString(t *testing.T) {
	var dst string
	if resp := ParamInto(ctxWithParam("hello"), 0, &dst); resp != nil {
		t.Fatalf("ParamInto returned %v, want nil", resp)
	}
	if dst != "hello" {
		t.Errorf("dst = %q, want %q", dst, "hello")
	}
}

func TestParamIntoInt(t *testing.T) {
	var dst int
	if resp := ParamInto(ctxWithParam("42"), 0, &dst); resp != nil {
		t.Fatalf("ParamInto returned %v, want nil", resp)
	}
	if dst != 42 {
		t.Errorf("dst = %d, want 42", dst)
	}
}

func TestParamIntoInvalidIntReturns400(t *testing.T) {
	var dst int
	resp := ParamInto(ctxWithParam("not-a-number"), 0, &dst)
	if resp == nil || resp.Status != 400 {
		t.Fatalf("ParamInto = %v, want a 400 response", resp)
	}
}

func TestParamIntoMissingParamReturns400(t *testing.T) {
	ctx := newContext(nil)
	var dst string
	resp := ParamInto(ctx, 0, &dst)
	if resp == nil || resp.Status != 400 {
		t.Fatalf("ParamInto = %v, want a 400 response for a missing parameter", resp)
	}
}

func TestParamIntoBool(t *testing.T) {
	var dst bool
	if resp := ParamInto(ctxWithParam("true"), 0, &dst); resp != nil {
		t.Fatalf("ParamInto returned %v, want nil", resp)
	}
	if !dst {
		t.Error("dst = false, want true")
	}
}

type hexParam struct{ value int }

func (h *hexParam) FromRawParam(raw []byte) error {
	n := 0
	for _, c := range raw {
		n *= 16
		switch {
		case c >= '0' && c <= '9':
			n += int(c - '0')
		case c >= 'a' && c <= 'f':
			n += int(c-'a') + 10
		default:
			return errors.New("invalid hex digit")
		}
	}
	h.value = n
	return nil
}

func TestParamIntoCustomFromParam(t *testing.T) {
	var dst hexParam
	if resp := ParamInto(ctxWithParam("ff"), 0, &dst); resp != nil {
		t.Fatalf("ParamInto returned %v, want nil", resp)
	}
	if dst.value != 255 {
		t.Errorf("dst.value = %d, want 255", dst.value)
	}
}

type alwaysPresent struct{ seen bool }

func (a *alwaysPresent) FromRequest(req *engine.Request) (bool, *engine.Response) {
	a.seen = true
	return true, nil
}

type alwaysAbsent struct{}

func (a *alwaysAbsent) FromRequest(req *engine.Request) (bool, *engine.Response) {
	return false, nil
}

type alwaysErrors struct{}

func (a *alwaysErrors) FromRequest(req *engine.Request) (bool, *engine.Response) {
	return false, engine.NewTextResponse(422, "unprocessable")
}

func TestRequestIntoPresent(t *testing.T) {
	req := &engine.Request{}
	var dst alwaysPresent
	if resp := RequestInto(req, &dst); resp != nil {
		t.Fatalf("RequestInto returned %v, want nil", resp)
	}
	if !dst.seen {
		t.Error("FromRequest was not invoked")
	}
}

func TestRequestIntoAbsentSynthesizes400(t *testing.T) {
	req := &engine.Request{}
	var dst alwaysAbsent
	resp := RequestInto(req, &dst)
	if resp == nil || resp.Status != 400 {
		t.Fatalf("RequestInto = %v, want a synthesized 400", resp)
	}
}

func TestRequestIntoExplicitErrorPassesThrough(t *testing.T) {
	req := &engine.Request{}
	var dst alwaysErrors
	resp := RequestInto(req, &dst)
	if resp == nil || resp.Status != 422 {
		t.Fatalf("RequestInto = %v, want the extractor's own 422", resp)
	}
}

func TestRespondPassesThroughResponse(t *testing.T) {
	want := engine.NewEmptyResponse(201)
	if got := Respond(want); got != want {
		t.Error("Respond should pass an *engine.Response through unchanged")
	}
}

func TestRespondString(t *testing.T) {
	resp := Respond("hi")
	if resp.Status != 200 || string(resp.Body.Bytes()) != "hi" {
		t.Errorf("Respond(string) = status %d body %q", resp.Status, resp.Body.Bytes())
	}
}

func TestRespondError(t *testing.T) {
	resp := Respond(errors.New("boom"))
	if resp.Status != 500 {
		t.Errorf("Respond(error).Status = %d, want 500", resp.Status)
	}
}

func TestRespondNil(t *testing.T) {
	resp := Respond(nil)
	if resp.Status != 204 {
		t.Errorf("Respond(nil).Status = %d, want 204", resp.Status)
	}
}
