package volt

import (
	"net"

	"github.com/voltweb/volt/engine"
)

// Context bundles everything a handler or fang needs besides the Request
// itself: the captured path parameters for this match and the raw
// connection, with the package-level Memorize/Recall helpers giving access
// to the per-request store that backs Memory[T]. Grounded on bolt/core/context.go's
// Context, trimmed of its net/http-compatibility bridge (spec has no
// net/http.Handler requirement) and its direct ResponseWriter coupling
// (volt's handlers return a *engine.Response value instead of writing
// through a streaming writer, matching spec §4.3's Handler contract).
type Context struct {
	Params PathParams

	// Conn is the raw connection this Context's requests arrive on. It is
	// set once per accepted connection and is what Upgrade bridges into
	// gorilla/websocket's hijack-based handshake (upgrade.go).
	Conn net.Conn

	app *App
}

// newContext allocates a fresh Context for a session's request slot. Its
// PathParams are reset by App.dispatch before each Search call.
func newContext(app *App) *Context {
	return &Context{app: app}
}

func (c *Context) reset() {
	c.Params.Reset()
}

// Param returns the i'th captured path parameter's raw bytes.
func (c *Context) Param(i int) ([]byte, bool) { return c.Params.At(i) }

// ParamByName returns the raw bytes captured for a named :segment.
func (c *Context) ParamByName(name string) ([]byte, bool) { return c.Params.ByName(name) }

// Memorize stores a value in req's per-request store under key, for a
// downstream FromRequest (typically Memory[T]) to retrieve. Grounded on
// bolt's c.Set(key, value)/c.Get(key) pattern and spec §4.3's "Extractors
// may memorize values into the Request store."
func Memorize(req *engine.Request, key any, value any) {
	req.Store()[key] = value
}

// Recall reads a previously memorized value. ok is false when nothing
// was stored under key.
func Recall(req *engine.Request, key any) (any, bool) {
	store := req.PeekStore()
	if store == nil {
		return nil, false
	}
	v, ok := store[key]
	return v, ok
}
