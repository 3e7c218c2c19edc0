// Package server implements the accept loop and graceful shutdown
// around engine.Session: one goroutine per accepted connection, an
// immutable shared handler factory, and a WaitGroup-drained Ctrl-C
// shutdown. Grounded on
// shockwave/pkg/shockwave/server/server_shockwave.go's ShockwaveServer,
// trimmed of its TLS/legacy-handler/allocation-mode surface (spec has no
// equivalent). The per-server atomic Stats struct (stats.go) is kept, and
// the Prometheus-backed Metrics in metrics.go can optionally mirror it.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/voltweb/volt/engine"
)

// HandlerFactory builds a fresh engine.Handler bound to one accepted
// connection. Binding per-connection (rather than one process-wide
// Handler) is what lets a bound Context observe the connection, needed
// for the WebSocket upgrade hand-off (spec §4.6).
type HandlerFactory func(conn net.Conn) engine.Handler

// Config mirrors the subset of shockwave's Config this spec actually
// uses: an address, the handler factory, and the two environment-backed
// timeouts spec §6 names.
type Config struct {
	Addr                string
	NewHandler          HandlerFactory
	KeepAliveTimeout    time.Duration // OHKAMI_KEEPALIVE_TIMEOUT, default 42s
	PayloadLimit        int64         // 0 ⇒ engine.DefaultPayloadLimit
	DateRefreshInterval time.Duration // default 500ms
}

// DefaultConfig reads OHKAMI_KEEPALIVE_TIMEOUT from the environment
// (spec §6), falling back to 42 seconds, and fills in the remaining
// defaults.
func DefaultConfig(addr string, newHandler HandlerFactory) Config {
	return Config{
		Addr:                addr,
		NewHandler:          newHandler,
		KeepAliveTimeout:    keepAliveTimeoutFromEnv(),
		DateRefreshInterval: 500 * time.Millisecond,
	}
}

func keepAliveTimeoutFromEnv() time.Duration {
	const defaultSeconds = 42
	v := os.Getenv("OHKAMI_KEEPALIVE_TIMEOUT")
	if v == "" {
		return defaultSeconds * time.Second
	}
	var seconds int
	if _, err := fmt.Sscanf(v, "%d", &seconds); err != nil || seconds < 0 {
		return defaultSeconds * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// Server owns a listener, the shared Date cache, and the in-flight
// session WaitGroup (spec §5: "an atomic counter with a future that
// polls until zero").
type Server struct {
	config   Config
	listener net.Listener
	dates    *engine.DateCache
	wg       sync.WaitGroup
	stopping atomic.Bool
	stats    Stats
	metrics  *Metrics
}

// New constructs a Server. It does not start listening.
func New(config Config) *Server {
	if config.DateRefreshInterval <= 0 {
		config.DateRefreshInterval = 500 * time.Millisecond
	}
	return &Server{
		config: config,
		dates:  engine.NewDateCache(config.DateRefreshInterval),
	}
}

// WithMetrics attaches a Prometheus-backed Metrics collector that mirrors
// this Server's Stats on every accept/request/error event.
func (s *Server) WithMetrics(m *Metrics) *Server {
	s.metrics = m
	return s
}

// ShuttingDown implements engine.Shutdown, polled once per session
// iteration (spec §4.6/§5).
func (s *Server) ShuttingDown() bool { return s.stopping.Load() }

// ListenAndServe opens a TCP listener on config.Addr and serves it.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("volt: listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on l until shutdown, spawning one goroutine
// per connection (spec §5: "Each accepted connection becomes one task").
func (s *Server) Serve(l net.Listener) error {
	s.listener = l
	defer l.Close()

	for {
		if s.stopping.Load() {
			return nil
		}

		conn, err := l.Accept()
		if err != nil {
			if s.stopping.Load() {
				return nil
			}
			s.stats.ConnectionErrors.Add(1)
			if s.metrics != nil {
				s.metrics.IncConnectionErrors()
			}
			continue
		}

		s.stats.TotalConnections.Add(1)
		s.stats.ActiveConnections.Add(1)
		if s.metrics != nil {
			s.metrics.IncConnections()
			s.metrics.Observe(s.stats)
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()
	defer func() {
		s.stats.ActiveConnections.Add(-1)
		if s.metrics != nil {
			s.metrics.Observe(s.stats)
		}
	}()

	inner := s.config.NewHandler(conn)
	handler := func(req *engine.Request) *engine.Response {
		s.stats.TotalRequests.Add(1)
		if s.metrics != nil {
			s.metrics.IncRequests()
		}
		return inner(req)
	}
	sess := engine.NewSession(conn, handler, s.dates, s.config.KeepAliveTimeout, s.config.PayloadLimit, s)

	if err := sess.Serve(); err != nil {
		s.stats.SessionErrors.Add(1)
		if s.metrics != nil {
			s.metrics.IncSessionErrors()
		}
	}
}

// Run starts the server and blocks until SIGINT/SIGTERM, then performs a
// graceful shutdown (spec §5's Ctrl-C handling). Grounded on
// bolt/core/app.go's App.Run.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("volt: shutting down gracefully")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	}
}

// Shutdown raises the stop flag, breaks the accept loop, and awaits
// in-flight sessions up to ctx's deadline (spec §5: "accept loop breaks;
// outstanding sessions are awaited via a WaitGroup").
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopping.Store(true)
	if s.listener != nil {
		s.listener.Close()
	}
	s.dates.Stop()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StatsSnapshot returns the server's current counters for diagnostics or
// a /metrics endpoint.
func (s *Server) StatsSnapshot() Stats {
	return Stats{
		TotalConnections:  copyUint64(&s.stats.TotalConnections),
		ActiveConnections: copyInt64(&s.stats.ActiveConnections),
		TotalRequests:     copyUint64(&s.stats.TotalRequests),
		ConnectionErrors:  copyUint64(&s.stats.ConnectionErrors),
		SessionErrors:     copyUint64(&s.stats.SessionErrors),
	}
}

func copyUint64(a *atomic.Uint64) atomic.Uint64 {
	var c atomic.Uint64
	c.Store(a.Load())
	return c
}

func copyInt64(a *atomic.Int64) atomic.Int64 {
	var c atomic.Int64
	c.Store(a.Load())
	return c
}
