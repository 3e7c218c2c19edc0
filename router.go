package volt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/voltweb/volt/engine"
)

type segKind uint8

const (
	segStatic segKind = iota
	segParam
)

// routeSeg is one parsed token of a registered route pattern, before it
// is folded into the trie.
type routeSeg struct {
	kind segKind
	text string
}

// trieNode is one node of the mutable, configuration-time route tree.
// Grounded on bolt/core/router.go's node type (children, a uniqueness-
// enforcing add path, static-vs-param branching), generalized from
// bolt's per-method hash-map-or-tree hybrid into a single shared tree
// whose nodes each carry a per-method handler map, matching spec §4.2's
// "register handler under (route, method)" contract.
type trieNode struct {
	kind     segKind
	static   string
	param    string
	fangs    []Fang
	handlers map[engine.Method]Handler
	children []*trieNode
}

func newTrieNode(kind segKind, text string) *trieNode {
	n := &trieNode{kind: kind, handlers: make(map[engine.Method]Handler)}
	if kind == segStatic {
		n.static = text
	} else {
		n.param = text
	}
	return n
}

// TrieRouter is the mutable route tree built at application configuration
// time, later compiled into an immutable RadixRouter for the hot path
// (spec §3, §4.2).
type TrieRouter struct {
	root *trieNode
}

// NewTrieRouter returns an empty router with a bare root node.
func NewTrieRouter() *TrieRouter {
	return &TrieRouter{root: newTrieNode(segStatic, "")}
}

// Add registers handler under (method, path). Returns a build error for
// any of spec §4.2's registration invariants: empty route, conflicting
// param names at the same position, conflicting handler, or (handled in
// Mount) mounting over an existing handler. A static segment already
// present under the same parent is reused rather than rejected, which
// keeps at most one static child per literal.
func (t *TrieRouter) Add(method engine.Method, path string, handler Handler) error {
	segs, err := splitRoute(path)
	if err != nil {
		return err
	}
	node := t.root
	for _, seg := range segs {
		child, err := node.childFor(seg)
		if err != nil {
			return err
		}
		node = child
	}
	if _, exists := node.handlers[method]; exists {
		return fmt.Errorf("%w: %s %s", ErrConflictingHandler, method, path)
	}
	node.handlers[method] = handler
	return nil
}

// Use attaches fangs to the node at prefix; they apply to that node and
// every node beneath it once compiled (spec §4.2: "register middleware
// under a route prefix").
func (t *TrieRouter) Use(prefix string, fangs ...Fang) error {
	node, err := t.nodeAt(prefix)
	if err != nil {
		return err
	}
	node.fangs = append(node.fangs, fangs...)
	return nil
}

// Mount grafts sub's routes under prefix. Rejected if prefix already
// carries a handler for any method (spec §4.2).
func (t *TrieRouter) Mount(prefix string, sub *TrieRouter, fangs ...Fang) error {
	node, err := t.nodeAt(prefix)
	if err != nil {
		return err
	}
	if len(node.handlers) > 0 {
		return fmt.Errorf("%w: %q", ErrMountOverHandler, prefix)
	}
	node.fangs = append(node.fangs, fangs...)
	node.children = append(node.children, sub.root.children...)
	for m, h := range sub.root.handlers {
		node.handlers[m] = h
	}
	return nil
}

func (t *TrieRouter) nodeAt(prefix string) (*trieNode, error) {
	segs, err := splitRoute(prefix)
	if err != nil {
		return nil, err
	}
	node := t.root
	for _, seg := range segs {
		child, err := node.childFor(seg)
		if err != nil {
			return nil, err
		}
		node = child
	}
	return node, nil
}

// childFor finds or creates the child matching seg under n, enforcing
// "at most one Static(b) per value of b per parent" and "at most one
// Param per parent (duplicate is an error)".
func (n *trieNode) childFor(seg routeSeg) (*trieNode, error) {
	if seg.kind == segParam {
		for _, c := range n.children {
			if c.kind == segParam {
				if c.param != seg.text {
					return nil, fmt.Errorf("%w: %q vs %q", ErrConflictingParam, seg.text, c.param)
				}
				return c, nil
			}
		}
		child := newTrieNode(segParam, seg.text)
		n.children = append(n.children, child)
		return child, nil
	}

	for _, c := range n.children {
		if c.kind == segStatic && c.static == seg.text {
			return c, nil
		}
	}
	child := newTrieNode(segStatic, seg.text)
	n.children = append(n.children, child)
	return child, nil
}

// Compile walks the trie, per method, producing an immutable RadixRouter
// (spec §4.2's "per method, DFS-walk the trie"). HEAD gets its own tree
// only when a HEAD handler was registered; Search falls back to the GET
// tree for HEAD lookups that tree does not match, per the Open Question
// resolution recorded in DESIGN.md.
func (t *TrieRouter) Compile() *RadixRouter {
	rr := &RadixRouter{roots: make(map[engine.Method]*radixNode)}
	for _, m := range t.methodsUsed() {
		rr.roots[m] = compileMethod(t.root, m, nil)
	}
	rr.fallback = build404Closure(nil)
	return rr
}

func (t *TrieRouter) methodsUsed() []engine.Method {
	seen := map[engine.Method]bool{}
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		for m := range n.handlers {
			seen[m] = true
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	out := make([]engine.Method, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	return out
}

// compileMethod fuses single-child, handler-less chains into one radix
// node's pattern list (spec §4.2's fusion rule), stopping at a node that
// either has a handler for method or branches.
func compileMethod(n *trieNode, method engine.Method, ancestorFangs []Fang) *radixNode {
	return compileMethodFrom(n, nil, method, ancestorFangs)
}

// compileMethodFrom is compileMethod generalized with the seed patterns a
// branching parent already matched to reach n. Root's call seeds nothing
// (n.trie the root node). Every other node is reached via a sortChildren
// child of some parent, so its own segment must be recorded before the
// fuse loop continues past it, the same way the fuse loop records each
// fused single-child descendant's segment.
func compileMethodFrom(n *trieNode, seed []radixSeg, method engine.Method, ancestorFangs []Fang) *radixNode {
	node := &radixNode{patterns: seed}
	fangs := append(append([]Fang{}, ancestorFangs...), n.fangs...)

	cur := n
	for {
		if _, has := cur.handlers[method]; has {
			break
		}
		if len(cur.children) != 1 {
			break
		}
		child := cur.children[0]
		node.patterns = append(node.patterns, toRadixSeg(child))
		fangs = append(fangs, child.fangs...)
		cur = child
	}

	if h, has := cur.handlers[method]; has {
		node.proc = compileChain(fangs, h)
	}

	for _, c := range sortChildren(cur.children) {
		node.children = append(node.children, compileMethodFrom(c, []radixSeg{toRadixSeg(c)}, method, fangs))
	}

	node.catch = build404Closure(fangs)
	return node
}

// sortChildren orders static children before the (at most one) param
// child, per spec §4.2's ordering guarantee.
func sortChildren(children []*trieNode) []*trieNode {
	out := make([]*trieNode, len(children))
	copy(out, children)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].kind == segStatic && out[j].kind == segParam
	})
	return out
}

func toRadixSeg(n *trieNode) radixSeg {
	if n.kind == segParam {
		return radixSeg{kind: segParam, paramName: []byte(n.param)}
	}
	return radixSeg{kind: segStatic, static: []byte(n.static)}
}

// splitRoute validates and tokenizes a route pattern per spec §4.2's
// grammar: "/" or "/seg(/seg)*" where seg is a literal matching
// [A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9] (or a single such char), or
// ":name" with name following the same grammar.
func splitRoute(path string) ([]routeSeg, error) {
	if path == "" {
		return nil, ErrEmptyRoute
	}
	if path[0] != '/' {
		return nil, fmt.Errorf("volt: route %q must start with '/'", path)
	}
	if path == "/" {
		return nil, nil
	}
	parts := strings.Split(path[1:], "/")
	segs := make([]routeSeg, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("volt: route %q has an empty segment", path)
		}
		if part[0] == ':' {
			name := part[1:]
			if !isValidToken(name) {
				return nil, fmt.Errorf("volt: invalid param name %q in route %q", name, path)
			}
			segs = append(segs, routeSeg{kind: segParam, text: name})
			continue
		}
		if !isValidToken(part) {
			return nil, fmt.Errorf("volt: invalid segment %q in route %q", part, path)
		}
		segs = append(segs, routeSeg{kind: segStatic, text: part})
	}
	return segs, nil
}

func isValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	isAlnum := func(b byte) bool {
		return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
	}
	if !isAlnum(s[0]) || !isAlnum(s[len(s)-1]) {
		return false
	}
	for i := 1; i < len(s)-1; i++ {
		b := s[i]
		if !isAlnum(b) && b != '.' && b != '_' && b != '-' {
			return false
		}
	}
	return true
}
