package server

import "sync/atomic"

// Stats mirrors the subset of shockwave's atomic counters spec §5's
// "Concurrency & Resource Model" calls for: connection and request
// totals plus the error tallies a health check would want. Grounded on
// shockwave/pkg/shockwave/server/server.go's Stats struct, trimmed of
// its TLS handshake and byte-count fields (no TLS, no streaming byte
// accounting in this core).
type Stats struct {
	TotalConnections  atomic.Uint64
	ActiveConnections atomic.Int64
	TotalRequests     atomic.Uint64
	ConnectionErrors  atomic.Uint64
	SessionErrors     atomic.Uint64
}
