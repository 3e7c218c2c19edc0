package volt

import "github.com/voltweb/volt/engine"

// FangProc is the compiled procedure shape spec §4.3 defines: an async
// (context, &mut request) → response. Go has no implicit async; the
// "await" points are ordinary blocking calls inside goroutine-per-
// connection sessions, matching shockwave/bolt's model.
type FangProc func(ctx *Context, req *engine.Request) *engine.Response

// Fang wraps an inner FangProc with pre/post behavior, producing a new
// FangProc. Fangs compose by ordinary function composition; there is no
// separate "middleware" type distinct from this one value shape (spec
// §4.3, §9: "model as a single polymorphic procedure value... fold to
// one callable per node at build time").
type Fang func(inner FangProc) FangProc

// Handler is the terminal procedure a route resolves to, lifted into a
// FangProc by wrapping it in a function that ignores the "inner" it
// would otherwise chain to; terminal handlers have no inner.
type Handler func(ctx *Context, req *engine.Request) *engine.Response

func (h Handler) asFangProc() FangProc {
	return func(ctx *Context, req *engine.Request) *engine.Response {
		return h(ctx, req)
	}
}

// compileChain folds an ordered fang list right-to-left around a terminal
// handler, producing the single boxed FangProc a RadixRouter node stores.
// Grounded on bolt/core/router.go's "compiled middleware chain" framing,
// generalized from bolt's linear next() dispatch into spec's fold.
func compileChain(fangs []Fang, terminal Handler) FangProc {
	proc := terminal.asFangProc()
	for i := len(fangs) - 1; i >= 0; i-- {
		proc = fangs[i](proc)
	}
	return proc
}
