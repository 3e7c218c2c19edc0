package volt

import (
	"errors"
	"testing"

	"github.com/voltweb/volt/engine"
)

func okHandler(ctx *Context, req *engine.Request) *engine.Response {
	return engine.NewEmptyResponse(200)
}

func dispatch(t *testing.T, rr *RadixRouter, method engine.Method, path string) (*engine.Response, PathParams) {
	t.Helper()
	var params PathParams
	proc := rr.Search(method, []byte(path), &params)
	ctx := &Context{}
	return proc(ctx, &engine.Request{Method: method}), params
}

func TestTrieAddRejectsEmptyRoute(t *testing.T) {
	tr := NewTrieRouter()
	err := tr.Add(engine.MethodGET, "", okHandler)
	if !errors.Is(err, ErrEmptyRoute) {
		t.Fatalf("err = %v, want ErrEmptyRoute", err)
	}
}

func TestTrieAddRejectsConflictingHandler(t *testing.T) {
	tr := NewTrieRouter()
	if err := tr.Add(engine.MethodGET, "/ping", okHandler); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	err := tr.Add(engine.MethodGET, "/ping", okHandler)
	if !errors.Is(err, ErrConflictingHandler) {
		t.Fatalf("err = %v, want ErrConflictingHandler", err)
	}
}

func TestTrieAddRejectsConflictingParamName(t *testing.T) {
	tr := NewTrieRouter()
	if err := tr.Add(engine.MethodGET, "/users/:id", okHandler); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	err := tr.Add(engine.MethodGET, "/users/:userId", okHandler)
	if !errors.Is(err, ErrConflictingParam) {
		t.Fatalf("err = %v, want ErrConflictingParam", err)
	}
}

func TestTrieAllowsSameParamNameReuse(t *testing.T) {
	tr := NewTrieRouter()
	if err := tr.Add(engine.MethodGET, "/users/:id", okHandler); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := tr.Add(engine.MethodPOST, "/users/:id", okHandler); err != nil {
		t.Fatalf("reusing the same param name under a new method failed: %v", err)
	}
}

func TestMountRejectsOverHandler(t *testing.T) {
	tr := NewTrieRouter()
	if err := tr.Add(engine.MethodGET, "/api", okHandler); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	sub := NewTrieRouter()
	sub.Add(engine.MethodGET, "/users", okHandler)
	err := tr.Mount("/api", sub)
	if !errors.Is(err, ErrMountOverHandler) {
		t.Fatalf("err = %v, want ErrMountOverHandler", err)
	}
}

func TestCompileStaticRouteMatches(t *testing.T) {
	tr := NewTrieRouter()
	tr.Add(engine.MethodGET, "/about", okHandler)
	rr := tr.Compile()

	resp, _ := dispatch(t, rr, engine.MethodGET, "/about")
	if resp.Status != 200 {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
}

func TestCompileDynamicRouteCapturesParam(t *testing.T) {
	tr := NewTrieRouter()
	var captured []byte
	tr.Add(engine.MethodGET, "/users/:id", func(ctx *Context, req *engine.Request) *engine.Response {
		v, _ := ctx.Param(0)
		captured = append([]byte(nil), v...)
		return engine.NewEmptyResponse(200)
	})
	rr := tr.Compile()

	var params PathParams
	proc := rr.Search(engine.MethodGET, []byte("/users/42"), &params)
	proc(&Context{Params: params}, &engine.Request{Method: engine.MethodGET})

	if string(captured) != "42" {
		t.Errorf("captured = %q, want %q", captured, "42")
	}
}

func TestCompileFusesSingleChildChain(t *testing.T) {
	tr := NewTrieRouter()
	tr.Add(engine.MethodGET, "/api/v1/users/profile", okHandler)
	rr := tr.Compile()

	root := rr.roots[engine.MethodGET]
	if len(root.patterns) == 0 {
		t.Fatal("expected the single-child chain to fuse into root.patterns")
	}
}

func TestHeadSharesGetTree(t *testing.T) {
	tr := NewTrieRouter()
	tr.Add(engine.MethodGET, "/ping", okHandler)
	rr := tr.Compile()

	resp, _ := dispatch(t, rr, engine.MethodHEAD, "/ping")
	if resp.Status != 200 {
		t.Errorf("HEAD via GET tree: Status = %d, want 200", resp.Status)
	}
}

func TestUnmatchedRouteReturns404(t *testing.T) {
	tr := NewTrieRouter()
	tr.Add(engine.MethodGET, "/ping", okHandler)
	rr := tr.Compile()

	resp, _ := dispatch(t, rr, engine.MethodGET, "/pong")
	if resp.Status != 404 {
		t.Errorf("Status = %d, want 404", resp.Status)
	}
}

func TestStaticPrefixDoesNotFalseMatch(t *testing.T) {
	tr := NewTrieRouter()
	tr.Add(engine.MethodGET, "/ab", okHandler)
	rr := tr.Compile()

	resp, _ := dispatch(t, rr, engine.MethodGET, "/abc")
	if resp.Status != 404 {
		t.Errorf("Status = %d, want 404 (no prefix false-match)", resp.Status)
	}
}

func TestStaticPreferredOverParamSibling(t *testing.T) {
	tr := NewTrieRouter()
	tr.Add(engine.MethodGET, "/users/me", okHandler)
	var viaParam bool
	tr.Add(engine.MethodGET, "/users/:id", func(ctx *Context, req *engine.Request) *engine.Response {
		viaParam = true
		return engine.NewEmptyResponse(200)
	})
	rr := tr.Compile()

	resp, _ := dispatch(t, rr, engine.MethodGET, "/users/me")
	if resp.Status != 200 {
		t.Fatalf("Status = %d, want 200 (the static sibling must actually be reachable)", resp.Status)
	}
	if viaParam {
		t.Error("static sibling /users/me should win over :id, not fall through to the param handler")
	}
}

func TestDisjointTopLevelRoutesAreBothReachable(t *testing.T) {
	tr := NewTrieRouter()
	tr.Add(engine.MethodGET, "/ping", okHandler)
	tr.Add(engine.MethodGET, "/about", okHandler)
	rr := tr.Compile()

	if resp, _ := dispatch(t, rr, engine.MethodGET, "/ping"); resp.Status != 200 {
		t.Errorf("/ping Status = %d, want 200", resp.Status)
	}
	if resp, _ := dispatch(t, rr, engine.MethodGET, "/about"); resp.Status != 200 {
		t.Errorf("/about Status = %d, want 200", resp.Status)
	}
}

func TestIsValidToken(t *testing.T) {
	cases := []struct {
		tok  string
		want bool
	}{
		{"a", true},
		{"users", true},
		{"user-name_1.2", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"has space", false},
	}
	for _, c := range cases {
		if got := isValidToken(c.tok); got != c.want {
			t.Errorf("isValidToken(%q) = %v, want %v", c.tok, got, c.want)
		}
	}
}
