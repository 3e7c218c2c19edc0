package engine

import (
	"sync/atomic"
	"time"
)

// imfFixdateLayout is the fixed-length Date header format (RFC 7231
// §7.1.1.1), e.g. "Sun, 06 Nov 1994 08:49:37 GMT".
const imfFixdateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// DateCache is a process-wide, lock-free IMF-fixdate cache refreshed on a
// background tick: each refresh formats the date into a newly allocated
// byte slice and swaps an atomic pointer to it (no fixed buffers are
// reused between ticks), so readers get a complete,
// stale-by-at-most-one-tick Date string without ever taking a lock. New
// code following the lock-free atomic-swap idiom used throughout
// shockwave/bolt for shared mutable state (shockwave's Connection.state
// atomic.Int32, server.Stats.LastRequestTime atomic.Value).
type DateCache struct {
	current atomic.Pointer[[]byte]
	stop    chan struct{}
}

// NewDateCache creates a cache with today's date already formatted, and
// starts the refresher goroutine ticking at the given interval (spec §5
// recommends ~500ms).
func NewDateCache(interval time.Duration) *DateCache {
	d := &DateCache{stop: make(chan struct{})}
	d.refresh()
	go d.loop(interval)
	return d
}

func (d *DateCache) refresh() {
	b := []byte(time.Now().UTC().Format(imfFixdateLayout))
	d.current.Store(&b)
}

func (d *DateCache) loop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.refresh()
		case <-d.stop:
			return
		}
	}
}

// Get returns the current IMF-fixdate bytes. Safe for concurrent use
// without locking; the caller may observe a value up to one tick stale.
func (d *DateCache) Get() []byte {
	return *d.current.Load()
}

// Stop terminates the background refresher. The process-exit case spec
// §5 describes (terminated implicitly on process exit) makes this
// optional in practice, but tests need a way to stop the goroutine.
func (d *DateCache) Stop() {
	close(d.stop)
}
