package volt

import (
	"context"
	"net"
	"sync"

	"github.com/voltweb/volt/engine"
	"github.com/voltweb/volt/server"
)

// App is the top-level entry point: it owns the mutable TrieRouter during
// registration, the app-wide Fang chain, and (once Listen/Run is called)
// the compiled RadixRouter every connection's Handler dispatches through.
// Grounded on bolt/core/app.go's App, trimmed of its net/http.ServeHTTP
// bridge (volt never speaks through net/http's server) and its
// serverMu-guarded *http.Server field, replaced by the server.Server this
// module defines directly atop engine.Session.
type App struct {
	trie  *TrieRouter
	fangs []Fang

	buildOnce sync.Once
	compiled  *RadixRouter

	errorHandler ErrorHandler
	srv          *server.Server
	metrics      *server.Metrics
}

// New returns an empty App ready for route registration.
func New() *App {
	return &App{trie: NewTrieRouter()}
}

// Use registers app-wide fangs, applied outermost to every request
// (spec §4.2/§4.3).
func (a *App) Use(fangs ...Fang) *App {
	a.fangs = append(a.fangs, fangs...)
	return a
}

func (a *App) route(method engine.Method, path string, h Handler) *App {
	if err := a.trie.Add(method, path, h); err != nil {
		panic(err)
	}
	return a
}

// Get registers a GET handler. Patch/Put/Post/Delete/Options/Head follow
// the same shape (spec §6's method taxonomy).
func (a *App) Get(path string, h Handler) *App    { return a.route(engine.MethodGET, path, h) }
func (a *App) Post(path string, h Handler) *App   { return a.route(engine.MethodPOST, path, h) }
func (a *App) Put(path string, h Handler) *App    { return a.route(engine.MethodPUT, path, h) }
func (a *App) Patch(path string, h Handler) *App  { return a.route(engine.MethodPATCH, path, h) }
func (a *App) Delete(path string, h Handler) *App { return a.route(engine.MethodDELETE, path, h) }
func (a *App) Options(path string, h Handler) *App {
	return a.route(engine.MethodOPTIONS, path, h)
}
func (a *App) Head(path string, h Handler) *App { return a.route(engine.MethodHEAD, path, h) }

// Mount grafts a sub-App's routes under prefix, with optional fangs that
// apply only within the mounted subtree (spec §4.2's Mount invariant).
func (a *App) Mount(prefix string, sub *App, fangs ...Fang) *App {
	if err := a.trie.Mount(prefix, sub.trie, fangs...); err != nil {
		panic(err)
	}
	return a
}

// Group registers a set of routes under a shared prefix and fang set by
// building a throwaway sub-App and mounting it, mirroring bolt's
// RouteGroup helper without introducing a distinct type.
func (a *App) Group(prefix string, fangs []Fang, register func(g *App)) *App {
	g := New()
	register(g)
	return a.Mount(prefix, g, fangs...)
}

// WithMetrics attaches m so the Server built by Listen/Run observes Stats
// into it on every handled connection. Pair with a middleware.Metrics Fang
// serving m over the same app to expose a scrape endpoint.
func (a *App) WithMetrics(m *server.Metrics) *App {
	a.metrics = m
	return a
}

// SetErrorHandler overrides the default not-found rendering: dispatch
// passes every 404 response's request to h and uses h's response when it
// is non-nil. Responses with other statuses are not passed to h.
func (a *App) SetErrorHandler(h ErrorHandler) *App {
	a.errorHandler = h
	return a
}

// build compiles the TrieRouter into a RadixRouter exactly once, on first
// use (the first dispatched request or ExposeForBenchmark; Listen itself
// does not compile), matching spec §4.2's "the trie is
// compiled once, at configuration time".
func (a *App) build() *RadixRouter {
	a.buildOnce.Do(func() {
		a.compiled = a.trie.Compile()
	})
	return a.compiled
}

// dispatch resolves and runs a single request against the compiled
// router, applying app-wide fangs outermost.
func (a *App) dispatch(ctx *Context, req *engine.Request) *engine.Response {
	rr := a.build()
	ctx.reset()
	proc := rr.Search(req.Method, req.Path(), &ctx.Params)
	proc = wrapAppFangs(a.fangs, proc)
	resp := proc(ctx, req)
	if resp.Status == 404 && a.errorHandler != nil {
		if custom := a.errorHandler(404, req); custom != nil {
			return custom
		}
	}
	return resp
}

func wrapAppFangs(fangs []Fang, proc FangProc) FangProc {
	for i := len(fangs) - 1; i >= 0; i-- {
		proc = fangs[i](proc)
	}
	return proc
}

// HandlerFor binds one engine.Handler to a single accepted connection,
// reusing one Context across every keep-alive request on it (spec §5:
// "state carried across requests on the same connection is limited to
// the Context's connection handle"). The returned closure is what
// server.HandlerFactory expects.
func (a *App) HandlerFor(conn net.Conn) engine.Handler {
	ctx := newContext(a)
	ctx.Conn = conn
	return func(req *engine.Request) *engine.Response {
		return a.dispatch(ctx, req)
	}
}

// ExposeForBenchmark forces a's router to compile and returns it, for the
// benchmarks package's router-only scenarios that need to call Search
// directly without going through a live connection.
func ExposeForBenchmark(a *App) *RadixRouter { return a.build() }

// Listen starts serving addr and blocks until the process receives
// SIGINT/SIGTERM, then shuts down gracefully (spec §5's Ctrl-C handling).
// Grounded on bolt/core/app.go's App.Listen/Run.
func (a *App) Listen(addr string) error {
	a.srv = server.New(server.DefaultConfig(addr, a.HandlerFor))
	if a.metrics != nil {
		a.srv.WithMetrics(a.metrics)
	}
	return a.srv.Run()
}

// Run is an alias for Listen kept for parity with bolt's naming.
func (a *App) Run(addr string) error { return a.Listen(addr) }

// Shutdown gracefully stops a running App started via Listen/Run.
func (a *App) Shutdown(ctx context.Context) error {
	if a.srv == nil {
		return nil
	}
	return a.srv.Shutdown(ctx)
}
