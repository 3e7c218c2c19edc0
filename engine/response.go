package engine

import "strconv"

// Response is the core's outbound value: status, HeaderSet, and an
// optional body (borrowed or owned). Grounded on
// shockwave/pkg/shockwave/http11/response.go's status-line-plus-header
// write-out, trimmed of its chunked-transfer support since spec §4.5
// states the core never sets Transfer-Encoding.
type Response struct {
	Status  int
	Headers HeaderSet
	Body    Body
}

// Reset clears a Response for pooled reuse.
func (r *Response) Reset() {
	r.Status = 0
	r.Headers.Reset()
	r.Body = Body{}
}

// SetBodyBytes installs an owned body and sets Content-Length to match,
// per spec §3's Response invariant ("Content-Length equals body length
// when body is present").
func (r *Response) SetBodyBytes(b []byte) {
	r.Body = Body{Kind: BodyOwned, bytes: b}
	r.Headers.SetContentLength([]byte(strconv.Itoa(len(b))))
}

// SetBodyBorrowed installs a body borrowed from static/long-lived storage
// (spec §3: "Borrowed(&'static [u8])").
func (r *Response) SetBodyBorrowed(b []byte) {
	r.Body = Body{Kind: BodyBorrowed, bytes: b}
	r.Headers.SetContentLength([]byte(strconv.Itoa(len(b))))
}

// WriteTo serializes the response onto buf in the exact order spec §4.5
// specifies:
//
//	HTTP/1.1 <code> <reason>\r\n
//	<known headers in fixed group order>
//	<custom headers in insertion order>
//	\r\n
//	<body bytes if present>
//
// When omitBody is true (HEAD requests), the body bytes are not appended
// but Content-Length has already been computed as if for GET.
func (r *Response) WriteTo(buf []byte, omitBody bool) []byte {
	buf = append(buf, StatusLine(r.Status)...)
	buf = r.Headers.WriteTo(buf)
	buf = append(buf, crlf...)
	if !omitBody && r.Body.Present() {
		buf = append(buf, r.Body.Bytes()...)
	}
	return buf
}

// NewTextResponse builds a minimal text/plain response, the exact wire
// shape spec §8 scenario 1 gives for the core's own error pages
// (Content-Type: text/plain, no charset parameter).
func NewTextResponse(status int, text string) *Response {
	r := &Response{Status: status}
	r.Headers.SetContentType([]byte("text/plain"))
	r.SetBodyBytes([]byte(text))
	return r
}

// NewEmptyResponse builds a bodyless response (e.g. 204, 501).
func NewEmptyResponse(status int) *Response {
	return &Response{Status: status}
}
