package volt

import "testing"

func TestContextParamDelegatesToPathParams(t *testing.T) {
	ctx := newContext(nil)
	ctx.Params.push([]byte("id"), []byte("9"))

	v, ok := ctx.Param(0)
	if !ok || string(v) != "9" {
		t.Errorf("Param(0) = %q, %v, want %q, true", v, ok, "9")
	}
	v, ok = ctx.ParamByName("id")
	if !ok || string(v) != "9" {
		t.Errorf("ParamByName(id) = %q, %v, want %q, true", v, ok, "9")
	}
}

func TestContextResetClearsParams(t *testing.T) {
	ctx := newContext(nil)
	ctx.Params.push([]byte("id"), []byte("9"))
	ctx.reset()

	if ctx.Params.Len() != 0 {
		t.Errorf("Params.Len() after reset = %d, want 0", ctx.Params.Len())
	}
}
