package volt

import (
	"bytes"

	"github.com/voltweb/volt/engine"
)

// radixSeg is one element of a fused pattern chain (spec §3's Radix
// node: "patterns: a sequence of consecutive Static/Param segments
// compressed from a linear chain").
type radixSeg struct {
	kind      segKind
	static    []byte
	paramName []byte
}

// radixNode is one compiled, immutable lookup-time node. Grounded on
// bolt/core/router.go's node (children, priority-free since build-time
// ordering already fixes static-before-param), replacing bolt's
// hashmap-of-indices dispatch with spec's fused-pattern walk and adding
// the precompiled __catch__ closure bolt's router has no equivalent of.
type radixNode struct {
	patterns []radixSeg
	children []*radixNode
	proc     FangProc
	catch    FangProc
}

// RadixRouter is the immutable, per-method compiled router produced by
// TrieRouter.Compile. All child pointers are downward-only (spec §9).
type RadixRouter struct {
	roots    map[engine.Method]*radixNode
	fallback FangProc
}

// Search resolves (method, path) to the FangProc that should run, and
// fills params with any captured path segments. path must already have
// its trailing slash trimmed (except the bare root). HEAD first tries
// routes registered for HEAD itself (App.Head) and otherwise is routed
// via the GET tree per spec §4.2/§9; method tokens with no registered
// tree at all fall back to a global 404 closure with no ancestor fangs.
func (rr *RadixRouter) Search(method engine.Method, path []byte, params *PathParams) FangProc {
	lookupMethod := method
	if lookupMethod == engine.MethodHEAD {
		if headRoot := rr.roots[engine.MethodHEAD]; headRoot != nil {
			if node, matched := matchNode(headRoot, path, params); matched {
				return node.proc
			}
			params.Reset()
		}
		lookupMethod = engine.MethodGET
	}
	root := rr.roots[lookupMethod]
	if root == nil {
		return rr.fallback
	}
	node, matched := matchNode(root, path, params)
	if matched {
		return node.proc
	}
	return node.catch
}

// matchNode implements spec §4.2's lookup contract: walk this node's
// fused patterns against rest, then either terminate (path exhausted) or
// recurse into the child whose leading pattern matches the remainder.
// Static children are tried before the param child, matching the
// compiled ordering.
func matchNode(n *radixNode, rest []byte, params *PathParams) (*radixNode, bool) {
	for _, seg := range n.patterns {
		if len(rest) == 0 || rest[0] != '/' {
			return n, false
		}
		rest = rest[1:]

		switch seg.kind {
		case segStatic:
			if !bytes.HasPrefix(rest, seg.static) {
				return n, false
			}
			rest = rest[len(seg.static):]
			if len(rest) != 0 && rest[0] != '/' {
				return n, false
			}
		case segParam:
			end := bytes.IndexByte(rest, '/')
			if end < 0 {
				params.push(seg.paramName, rest)
				rest = nil
			} else {
				params.push(seg.paramName, rest[:end])
				rest = rest[end:]
			}
		}
	}

	if pathExhausted(rest) {
		if n.proc != nil {
			return n, true
		}
		return n, false
	}

	saved := params.Len()
	var last *radixNode = n
	for _, c := range n.children {
		if node, ok := matchNode(c, rest, params); ok {
			return node, true
		} else {
			last = node
		}
		params.n = saved
	}
	return last, false
}

// pathExhausted treats both "" and the bare "/" as end-of-path. The
// latter only ever occurs at the root, whose own patterns list is empty
// for an unregistered "/" prefix and which therefore never otherwise
// triggers the zero-length branch.
func pathExhausted(rest []byte) bool {
	return len(rest) == 0 || (len(rest) == 1 && rest[0] == '/')
}

// build404Closure wraps the core's default not-found response through
// fangs, so ancestor middleware (e.g. CORS) still observes and can
// annotate a miss (spec §4.2: "__catch__: ... incorporating any ancestor
// fangs that affect rejected requests").
func build404Closure(fangs []Fang) FangProc {
	var proc FangProc = func(ctx *Context, req *engine.Request) *engine.Response {
		return engine.NewTextResponse(404, "not found")
	}
	for i := len(fangs) - 1; i >= 0; i-- {
		proc = fangs[i](proc)
	}
	return proc
}
