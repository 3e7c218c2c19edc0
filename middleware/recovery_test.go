package middleware

import (
	"testing"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
)

func TestRecoveryCatchesPanic(t *testing.T) {
	fang := Recovery()
	proc := fang(func(ctx *volt.Context, req *engine.Request) *engine.Response {
		panic("test panic")
	})

	var resp *engine.Response
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("panic was not recovered: %v", r)
			}
		}()
		resp = proc(&volt.Context{}, &engine.Request{})
	}()

	if resp == nil || resp.Status != 500 {
		t.Errorf("Status = %v, want 500", resp)
	}
}

func TestRecoveryNoPanicPassesThrough(t *testing.T) {
	fang := Recovery()
	called := false
	proc := fang(func(ctx *volt.Context, req *engine.Request) *engine.Response {
		called = true
		return engine.NewEmptyResponse(204)
	})

	resp := proc(&volt.Context{}, &engine.Request{})
	if !called {
		t.Error("inner handler was not called")
	}
	if resp.Status != 204 {
		t.Errorf("Status = %d, want 204", resp.Status)
	}
}

func TestRecoveryCustomHandler(t *testing.T) {
	config := DefaultRecoveryConfig()
	config.Handler = func(req *engine.Request, recovered any) *engine.Response {
		return engine.NewTextResponse(503, "custom")
	}
	fang := RecoveryWithConfig(config)
	proc := fang(func(ctx *volt.Context, req *engine.Request) *engine.Response {
		panic("boom")
	})

	resp := proc(&volt.Context{}, &engine.Request{})
	if resp.Status != 503 {
		t.Errorf("Status = %d, want 503", resp.Status)
	}
}
