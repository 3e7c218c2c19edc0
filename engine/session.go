package engine

import (
	"log"
	"net"
	"sync/atomic"
	"time"
)

// SessionState enumerates the per-connection states spec §4.6 names:
// Idle → Reading → Handling → Writing → (Upgrade | Idle | Closed).
// Grounded on shockwave/pkg/shockwave/http11/connection.go's
// ConnectionState, extended with StateUpgrade for the WS hand-off spec
// §4.6 calls out as a terminal transition.
type SessionState int32

const (
	StateIdle SessionState = iota
	StateReading
	StateHandling
	StateWriting
	StateUpgrade
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateHandling:
		return "handling"
	case StateWriting:
		return "writing"
	case StateUpgrade:
		return "upgrade"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Handler processes one parsed Request and produces a Response. It must
// not retain req's borrowed slices beyond the call.
type Handler func(req *Request) *Response

// Shutdown is polled by Session.Serve to learn whether the server has
// begun a graceful shutdown, in which case the session finishes its
// current request and then closes instead of looping for the next one
// (spec §4.6: "Shutdown signal (Ctrl-C): accept loop exits; in-flight
// sessions continue; server awaits their WaitGroup to drain; no new
// sessions are started."). The session itself only needs to know "don't
// start another Reading phase".
type Shutdown interface {
	ShuttingDown() bool
}

// Session is one accepted connection's read→route→invoke→write loop.
// Grounded on shockwave/pkg/shockwave/http11/connection.go's
// Connection.Serve(), generalized from its 4-state enum into the
// six-state SessionState machine and with the close trigger switched from a
// max-requests counter to OHKAMI_KEEPALIVE_TIMEOUT.
type Session struct {
	conn    net.Conn
	handler Handler
	dates   *DateCache
	timeout time.Duration
	limit   int64
	shutdown Shutdown

	state atomic.Int32
}

// NewSession constructs a Session bound to an accepted connection. timeout
// is the keep-alive wait bound (OHKAMI_KEEPALIVE_TIMEOUT); limit is the
// payload ceiling (0 ⇒ DefaultPayloadLimit).
func NewSession(conn net.Conn, handler Handler, dates *DateCache, timeout time.Duration, limit int64, shutdown Shutdown) *Session {
	s := &Session{conn: conn, handler: handler, dates: dates, timeout: timeout, limit: limit, shutdown: shutdown}
	s.state.Store(int32(StateIdle))
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() SessionState { return SessionState(s.state.Load()) }

func (s *Session) setState(st SessionState) { s.state.Store(int32(st)) }

// Serve runs the session loop until the connection closes, a fatal parse
// error occurs, keep-alive times out, or shutdown is signaled. It never
// returns a non-nil error for a clean close; callers only need to log a
// returned error, not retry.
func (s *Session) Serve() error {
	for {
		if s.shutdown != nil && s.shutdown.ShuttingDown() {
			s.setState(StateClosed)
			return nil
		}

		s.setState(StateIdle)
		if s.timeout > 0 {
			_ = s.conn.SetReadDeadline(time.Now().Add(s.timeout))
		}

		s.setState(StateReading)
		buf := AcquireBuffer()
		req := AcquireRequest()
		parser := AcquireParser()

		ok, err := parser.Parse(s.conn, req, buf, Options{PayloadLimit: s.limit})
		if !ok {
			ReleaseParser(parser)
			ReleaseRequest(req)
			ReleaseBuffer(buf)
			if err == nil {
				s.setState(StateClosed)
				return nil // clean EOF between requests
			}
			s.writeFatal(err)
			s.setState(StateClosed)
			return err
		}

		s.setState(StateHandling)
		resp := s.invoke(req)

		s.setState(StateWriting)
		closeConn, upgrade := s.writeResponse(req, resp)

		ReleaseResponse(resp)
		ReleaseParser(parser)
		ReleaseRequest(req)
		ReleaseBuffer(buf)

		if upgrade {
			s.setState(StateUpgrade)
			return nil
		}
		if closeConn {
			s.setState(StateClosed)
			return nil
		}
	}
}

// invoke calls the handler, converting a panic into a 500 per spec §4.6
// ("on panic inside user code, produce 500") and §7 kind 5. Method tokens
// the core does not implement (CONNECT, unknown) short-circuit to 501
// before the handler ever runs (spec §6).
func (s *Session) invoke(req *Request) (resp *Response) {
	if !req.Method.Implemented() {
		return NewEmptyResponse(501)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("volt: panic recovered: %v", r)
			resp = NewEmptyResponse(500)
		}
	}()
	return s.handler(req)
}

// writeResponse fills in Date/Connection, strips the body for HEAD while
// preserving the computed Content-Length, and decides whether the
// connection must close after this write (spec §4.5, §4.6).
func (s *Session) writeResponse(req *Request, resp *Response) (closeConn, upgrade bool) {
	if s.dates != nil {
		resp.Headers.SetDate(s.dates.Get())
	}
	resp.Headers.SetServer(serverName)

	reqClose := req.Close
	respClose := false
	if v, ok := resp.Headers.Connection(); ok {
		respClose = string(v) == "close"
	}

	closeConn = reqClose || respClose
	if closeConn {
		resp.Headers.SetConnection(valClose)
	} else {
		resp.Headers.SetConnection(valKeepAlive)
	}

	upgrade = isUpgrade(resp)

	omitBody := req.Method == MethodHEAD
	out := resp.WriteTo(make([]byte, 0, 256), omitBody)
	if _, err := s.conn.Write(out); err != nil {
		closeConn = true
	}
	return closeConn, upgrade
}

func isUpgrade(resp *Response) bool {
	return resp.Status == 101
}

// writeFatal handles spec §7's parse-level errors: write a minimal error
// response (400/413/505) and let the caller close the connection.
func (s *Session) writeFatal(err error) {
	status := ErrKind(err)
	resp := NewEmptyResponse(status)
	if s.dates != nil {
		resp.Headers.SetDate(s.dates.Get())
	}
	resp.Headers.SetConnection(valClose)
	out := resp.WriteTo(make([]byte, 0, 128), false)
	_, _ = s.conn.Write(out)
}
