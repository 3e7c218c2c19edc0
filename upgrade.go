package volt

import (
	"bufio"
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/voltweb/volt/engine"
)

// upgrader is shared process-wide, matching gorilla/websocket's
// recommended single-instance-per-process usage.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Upgrade is the WebSocket hand-off interface point spec §4.6 calls out
// as "out of scope" for the core but names as a real transition
// (Writing → Upgrade). It bridges a matched *engine.Request/net.Conn pair
// into gorilla/websocket's http.Request-shaped Upgrade API by
// synthesizing the minimal *http.Request the library needs, then hands
// the live connection to fn and returns a 101 Response whose Status
// alone is what Session.writeResponse inspects to recognize an upgrade
// (session.go's isUpgrade).
//
// OHKAMI_WEBSOCKET_TIMEOUT (spec §6, default 3600s) governs how long fn
// may keep the connection; enforcing that bound is fn's responsibility,
// not the core's.
func Upgrade(conn net.Conn, req *engine.Request, fn func(*websocket.Conn)) *engine.Response {
	httpReq, err := syntheticUpgradeRequest(req)
	if err != nil {
		return engine.NewTextResponse(400, "invalid upgrade request")
	}

	recorder := &passthroughResponseWriter{conn: conn}
	wsConn, err := upgrader.Upgrade(recorder, httpReq, nil)
	if err != nil {
		return engine.NewTextResponse(400, "websocket handshake failed")
	}

	go func() {
		defer wsConn.Close()
		fn(wsConn)
	}()

	return &engine.Response{Status: 101}
}

func syntheticUpgradeRequest(req *engine.Request) (*http.Request, error) {
	httpReq, err := http.NewRequest(req.Method.String(), string(req.Path()), nil)
	if err != nil {
		return nil, err
	}
	req.Headers.VisitAll(func(name, value []byte) bool {
		httpReq.Header.Add(string(name), string(value))
		return true
	})
	return httpReq, nil
}

// passthroughResponseWriter adapts a raw net.Conn to http.ResponseWriter
// just enough for gorilla/websocket's Upgrade to hijack it; volt's own
// engine never uses net/http's server, so this exists solely at the
// upgrade boundary.
type passthroughResponseWriter struct {
	conn   net.Conn
	header http.Header
}

func (w *passthroughResponseWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *passthroughResponseWriter) Write(b []byte) (int, error) { return w.conn.Write(b) }

func (w *passthroughResponseWriter) WriteHeader(statusCode int) {}

// Hijack satisfies http.Hijacker so gorilla/websocket's Upgrade takes
// over the raw connection directly instead of trying to write an HTTP
// response through Write/WriteHeader.
func (w *passthroughResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	rw := bufio.NewReadWriter(bufio.NewReader(w.conn), bufio.NewWriter(w.conn))
	return w.conn, rw, nil
}
