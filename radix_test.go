package volt

import (
	"testing"

	"github.com/voltweb/volt/engine"
)

func leafProc(status int) FangProc {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		return engine.NewEmptyResponse(status)
	}
}

func TestPathExhausted(t *testing.T) {
	cases := []struct {
		rest string
		want bool
	}{
		{"", true},
		{"/", true},
		{"/x", false},
		{"//", false},
	}
	for _, c := range cases {
		if got := pathExhausted([]byte(c.rest)); got != c.want {
			t.Errorf("pathExhausted(%q) = %v, want %v", c.rest, got, c.want)
		}
	}
}

func TestMatchNodeStaticLeafMatches(t *testing.T) {
	leaf := &radixNode{patterns: []radixSeg{{kind: segStatic, static: []byte("users")}}, proc: leafProc(200)}
	root := &radixNode{children: []*radixNode{leaf}}

	var params PathParams
	node, ok := matchNode(root, []byte("/users"), &params)
	if !ok || node != leaf {
		t.Fatalf("expected match at leaf, got node=%v ok=%v", node, ok)
	}
}

func TestMatchNodeStaticRejectsPartialSegmentOverlap(t *testing.T) {
	leaf := &radixNode{patterns: []radixSeg{{kind: segStatic, static: []byte("user")}}, proc: leafProc(200)}
	root := &radixNode{children: []*radixNode{leaf}}

	var params PathParams
	_, ok := matchNode(root, []byte("/users"), &params)
	if ok {
		t.Error("a \"user\" pattern should not match the \"/users\" prefix of a longer segment")
	}
}

func TestMatchNodeParamCapturesSegment(t *testing.T) {
	leaf := &radixNode{patterns: []radixSeg{{kind: segParam, paramName: []byte("id")}}, proc: leafProc(200)}
	root := &radixNode{children: []*radixNode{leaf}}

	var params PathParams
	node, ok := matchNode(root, []byte("/42"), &params)
	if !ok || node != leaf {
		t.Fatalf("expected match at leaf, got node=%v ok=%v", node, ok)
	}
	val, ok := params.ByName("id")
	if !ok || string(val) != "42" {
		t.Errorf("params[id] = %q, %v, want %q, true", val, ok, "42")
	}
}

func TestMatchNodeParamStopsAtNextSlash(t *testing.T) {
	leaf := &radixNode{patterns: []radixSeg{{kind: segStatic, static: []byte("posts")}}, proc: leafProc(200)}
	paramNode := &radixNode{
		patterns: []radixSeg{{kind: segParam, paramName: []byte("id")}},
		children: []*radixNode{leaf},
	}
	root := &radixNode{children: []*radixNode{paramNode}}

	var params PathParams
	node, ok := matchNode(root, []byte("/42/posts"), &params)
	if !ok || node != leaf {
		t.Fatalf("expected match at leaf, got node=%v ok=%v", node, ok)
	}
	val, _ := params.ByName("id")
	if string(val) != "42" {
		t.Errorf("params[id] = %q, want %q", val, "42")
	}
}

func TestMatchNodeBacktracksParamsOnFailedSibling(t *testing.T) {
	staticLeaf := &radixNode{patterns: []radixSeg{{kind: segStatic, static: []byte("new")}}, proc: leafProc(200)}
	paramLeaf := &radixNode{patterns: []radixSeg{{kind: segParam, paramName: []byte("id")}}, proc: leafProc(201)}
	root := &radixNode{children: []*radixNode{staticLeaf, paramLeaf}}

	var params PathParams
	node, ok := matchNode(root, []byte("/7"), &params)
	if !ok || node != paramLeaf {
		t.Fatalf("expected the param sibling to match, got node=%v ok=%v", node, ok)
	}
	if params.Len() != 1 {
		t.Errorf("params.Len() = %d, want 1 (no leaked capture from the failed static sibling)", params.Len())
	}
}

func TestMatchNodeNoChildrenNoProcReturnsCatchNode(t *testing.T) {
	catchOnly := &radixNode{catch: leafProc(404)}
	root := &radixNode{children: []*radixNode{catchOnly}}

	var params PathParams
	node, ok := matchNode(root, []byte("/missing"), &params)
	if ok {
		t.Fatal("expected no match against a node with no registered children")
	}
	if node.catch == nil {
		t.Error("expected the returned node to carry a catch closure for 404 dispatch")
	}
}
