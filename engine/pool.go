package engine

import "sync"

// Object pools for Request/Response/Parser/metadata buffers. Grounded on
// shockwave/pkg/shockwave/http11/pool.go, trimmed of its optional per-CPU
// pool strategy and pool-statistics placeholder (nothing here exercises
// either).
var (
	requestPool = sync.Pool{New: func() any { return &Request{} }}

	responsePool = sync.Pool{New: func() any { return &Response{} }}

	parserPool = sync.Pool{New: func() any { return NewParser() }}

	bufferPool = sync.Pool{New: func() any {
		b := make([]byte, MetadataSize)
		return &b
	}}
)

// AcquireRequest returns a reset Request from the pool.
func AcquireRequest() *Request {
	req := requestPool.Get().(*Request)
	req.Reset()
	return req
}

// ReleaseRequest returns req to the pool. req must not be used afterward.
func ReleaseRequest(req *Request) {
	if req == nil {
		return
	}
	req.Reset()
	requestPool.Put(req)
}

// AcquireResponse returns a reset Response from the pool.
func AcquireResponse() *Response {
	resp := responsePool.Get().(*Response)
	resp.Reset()
	return resp
}

// ReleaseResponse returns resp to the pool. resp must not be used
// afterward.
func ReleaseResponse(resp *Response) {
	if resp == nil {
		return
	}
	resp.Reset()
	responsePool.Put(resp)
}

// AcquireParser returns a Parser from the pool.
func AcquireParser() *Parser {
	return parserPool.Get().(*Parser)
}

// ReleaseParser returns p to the pool.
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// AcquireBuffer returns a MetadataSize-length buffer from the pool.
func AcquireBuffer() []byte {
	bp := bufferPool.Get().(*[]byte)
	return (*bp)[:MetadataSize]
}

// ReleaseBuffer returns buf to the pool if it has the expected capacity.
func ReleaseBuffer(buf []byte) {
	if cap(buf) < MetadataSize {
		return
	}
	buf = buf[:MetadataSize]
	bufferPool.Put(&buf)
}

// WarmupPools pre-allocates count objects of each pooled type, the way
// bolt/core/context_pool.go's Warmup does for Contexts.
func WarmupPools(count int) {
	for i := 0; i < count; i++ {
		ReleaseRequest(AcquireRequest())
		ReleaseResponse(AcquireResponse())
		ReleaseParser(AcquireParser())
		ReleaseBuffer(AcquireBuffer())
	}
}
