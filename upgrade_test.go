package volt

import (
	"io"
	"net"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/voltweb/volt/engine"
)

func TestSyntheticUpgradeRequestCarriesMethodPathAndHeaders(t *testing.T) {
	req := &engine.Request{Method: engine.MethodGET}
	req.SetPath([]byte("/ws"))
	req.Headers.Add([]byte("Upgrade"), []byte("websocket"))
	req.Headers.Add([]byte("Sec-WebSocket-Key"), []byte("dGhlIHNhbXBsZSBub25jZQ=="))

	httpReq, err := syntheticUpgradeRequest(req)
	if err != nil {
		t.Fatalf("syntheticUpgradeRequest: %v", err)
	}
	if httpReq.Method != "GET" {
		t.Errorf("Method = %q, want GET", httpReq.Method)
	}
	if httpReq.URL.Path != "/ws" {
		t.Errorf("Path = %q, want /ws", httpReq.URL.Path)
	}
	if got := httpReq.Header.Get("Sec-WebSocket-Key"); got != "dGhlIHNhbXBsZSBub25jZQ==" {
		t.Errorf("Sec-WebSocket-Key = %q", got)
	}
}

func TestPassthroughResponseWriterHijackReturnsUnderlyingConn(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	w := &passthroughResponseWriter{conn: srv}
	conn, rw, err := w.Hijack()
	if err != nil {
		t.Fatalf("Hijack: %v", err)
	}
	if conn != srv {
		t.Error("expected Hijack to return the same underlying connection")
	}
	if rw == nil {
		t.Error("expected a non-nil bufio.ReadWriter")
	}
}

func TestPassthroughResponseWriterHeaderLazilyAllocates(t *testing.T) {
	w := &passthroughResponseWriter{}
	h := w.Header()
	if h == nil {
		t.Fatal("expected a non-nil header map")
	}
	h.Set("X-Test", "1")
	if w.Header().Get("X-Test") != "1" {
		t.Error("expected the header map to persist across calls")
	}
}

func TestUpgradeFailsHandshakeWithoutWebSocketHeaders(t *testing.T) {
	req := &engine.Request{Method: engine.MethodGET}
	req.SetPath([]byte("/ws"))

	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()
	go io.Copy(io.Discard, client)

	var fnCalled bool
	resp := Upgrade(srv, req, func(*websocket.Conn) { fnCalled = true })
	if resp.Status != 400 {
		t.Errorf("Status = %d, want 400 for a request missing the websocket handshake headers", resp.Status)
	}
	if fnCalled {
		t.Error("expected fn not to run when the handshake fails")
	}
}
