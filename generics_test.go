package volt

import (
	"bytes"
	"testing"

	"github.com/voltweb/volt/engine"
)

func TestH0Adapts(t *testing.T) {
	h := H0(func(ctx *Context) *engine.Response {
		return engine.NewEmptyResponse(200)
	})
	resp := h(newContext(nil), &engine.Request{})
	if resp.Status != 200 {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
}

func TestH1AdaptsPathParam(t *testing.T) {
	h := H1(func(ctx *Context, name string) *engine.Response {
		return engine.NewTextResponse(200, "hello "+name)
	})
	resp := h(ctxWithParam("ada"), &engine.Request{})
	if resp.Status != 200 || string(resp.Body.Bytes()) != "hello ada" {
		t.Errorf("Status=%d Body=%q", resp.Status, resp.Body.Bytes())
	}
}

func TestH1ShortCircuitsOnMissingParam(t *testing.T) {
	h := H1(func(ctx *Context, name string) *engine.Response {
		t.Fatal("handler should not run when the path param is missing")
		return nil
	})
	resp := h(newContext(nil), &engine.Request{})
	if resp.Status != 400 {
		t.Errorf("Status = %d, want 400", resp.Status)
	}
}

func TestH2AdaptsTwoPathParams(t *testing.T) {
	ctx := newContext(nil)
	ctx.Params.push([]byte("a"), []byte("1"))
	ctx.Params.push([]byte("b"), []byte("2"))

	var sum int
	h := H2(func(ctx *Context, a, b int) *engine.Response {
		sum = a + b
		return engine.NewEmptyResponse(200)
	})
	resp := h(ctx, &engine.Request{})
	if resp.Status != 200 || sum != 3 {
		t.Errorf("sum = %d, want 3", sum)
	}
}

func TestH0I1AdaptsExtractor(t *testing.T) {
	req := &engine.Request{}
	SetMemory(req, "extracted-value")

	var got string
	h := H0I1(func(ctx *Context, m Memory[string]) *engine.Response {
		got = m.Value
		return engine.NewEmptyResponse(200)
	})
	resp := h(newContext(nil), req)
	if resp.Status != 200 || got != "extracted-value" {
		t.Errorf("Status=%d got=%q", resp.Status, got)
	}
}

func TestH0I1MissingExtractorReturns400(t *testing.T) {
	h := H0I1(func(ctx *Context, m Memory[string]) *engine.Response {
		t.Fatal("handler should not run when the extractor reports absent")
		return nil
	})
	resp := h(newContext(nil), &engine.Request{})
	if resp.Status != 400 {
		t.Errorf("Status = %d, want 400", resp.Status)
	}
}

func TestH1I1CombinesParamAndExtractor(t *testing.T) {
	req := &engine.Request{}
	SetMemory(req, 7)

	ctx := ctxWithParam("ada")
	var gotName string
	var gotNum int
	h := H1I1(func(ctx *Context, name string, m Memory[int]) *engine.Response {
		gotName = name
		gotNum = m.Value
		return engine.NewEmptyResponse(200)
	})
	resp := h(ctx, req)
	if resp.Status != 200 || gotName != "ada" || gotNum != 7 {
		t.Errorf("gotName=%q gotNum=%d", gotName, gotNum)
	}
}

func TestDataConstructorsSetStatus(t *testing.T) {
	cases := []struct {
		name string
		d    Data[string]
		want int
	}{
		{"OK", OK("x"), 200},
		{"Created", Created("x"), 201},
		{"NoContent", NoContent[string](), 204},
		{"BadRequest", BadRequest[string](errBoom), 400},
		{"Unauthorized", Unauthorized[string](errBoom), 401},
		{"Forbidden", Forbidden[string](errBoom), 403},
		{"NotFound", NotFound[string](errBoom), 404},
		{"InternalError", InternalError[string](errBoom), 500},
	}
	for _, c := range cases {
		if c.d.Status != c.want {
			t.Errorf("%s.Status = %d, want %d", c.name, c.d.Status, c.want)
		}
	}
}

var errBoom = boomErr{}

type boomErr struct{}

func (boomErr) Error() string { return "boom" }

func TestDataWithMetaAndHeaderChain(t *testing.T) {
	d := OK("x").WithMeta("page", 1).WithHeader("X-Custom", "v")
	if d.Metadata["page"] != 1 {
		t.Errorf("Metadata[page] = %v, want 1", d.Metadata["page"])
	}
	if d.Headers["X-Custom"] != "v" {
		t.Errorf("Headers[X-Custom] = %v, want %q", d.Headers["X-Custom"], "v")
	}
}

func TestSendDataSerializesValueAndHeaders(t *testing.T) {
	d := Created("hi").WithHeader("X-Custom", "v")
	resp := SendData(d)
	if resp.Status != 201 {
		t.Errorf("Status = %d, want 201", resp.Status)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"data":"hi"`)) {
		t.Errorf("body = %s, want it to contain the encoded value", resp.Body.Bytes())
	}
}

func TestSendDataEncodesErrorField(t *testing.T) {
	d := BadRequest[string](errBoom)
	resp := SendData(d)
	if resp.Status != 400 {
		t.Errorf("Status = %d, want 400", resp.Status)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"error":"boom"`)) {
		t.Errorf("body = %s, want it to contain the encoded error", resp.Body.Bytes())
	}
}
