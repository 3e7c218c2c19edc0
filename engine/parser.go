package engine

import (
	"bytes"
	"io"
	"strconv"
)

// Parser reads a single HTTP/1.1 request off a connection into a Request
// already carrying a fixed-size metadata buffer (spec §4.1). Grounded on
// shockwave/pkg/shockwave/http11/parser.go's request-line/header scanning
// and RFC 7230 §3.3.3 smuggling checks, with its growable buffer plus
// pipelining look-ahead replaced by spec §4.1's single-read-then-
// three-body-cases model: one request per Parse call, no unread
// carry-over between connection iterations.
type Parser struct {
	br ByteReader
}

// NewParser constructs a ready-to-use Parser.
func NewParser() *Parser { return &Parser{} }

// PayloadLimit bounds Content-Length; exceeding it is a 413 (spec §4.1
// step 4). Zero means DefaultPayloadLimit.
type Options struct {
	PayloadLimit int64
}

// Parse implements spec §4.1's algorithm. buf is the session's fixed
// METADATA_SIZE buffer; conn is read directly (no buffering layer) so
// that "issue a single read into the fixed buffer" is literal. Returns
// ok=false with nil error on clean EOF before any bytes were read (the
// session treats this as "this connection is done"); any other error is
// a protocol violation the session converts into a minimal response
// before closing.
func (p *Parser) Parse(conn io.Reader, req *Request, buf []byte, opts Options) (ok bool, err error) {
	n, readErr := conn.Read(buf)
	if n == 0 {
		if readErr == nil || readErr == io.EOF {
			return false, nil
		}
		return false, ErrConnectionReset
	}

	data := buf[:n]
	req.SetBuf(data)
	p.br.Reset(data)

	method, err := p.parseRequestLine(req)
	if err != nil {
		return false, err
	}
	req.Method = method

	if err := p.parseHeaders(req); err != nil {
		return false, err
	}

	limit := opts.PayloadLimit
	if limit <= 0 {
		limit = DefaultPayloadLimit
	}

	contentLength, hasCL, err := contentLengthOf(req)
	if err != nil {
		return false, err
	}
	if contentLength > limit {
		return false, ErrPayloadTooLarge
	}
	req.ContentLength = contentLength

	req.Close = closeRequested(req)

	if hasCL && contentLength > 0 {
		if err := p.readBody(conn, req, contentLength); err != nil {
			return false, err
		}
	} else {
		req.Body = Body{Kind: BodyNone}
	}

	return true, nil
}

// parseRequestLine consumes "METHOD SP PATH[?QUERY] SP HTTP/1.1\r\n".
func (p *Parser) parseRequestLine(req *Request) (Method, error) {
	methodTok := p.br.TakeWhile(func(b byte) bool { return b != bSP })
	if len(methodTok) == 0 || !p.br.ConsumeByte(bSP) {
		return MethodUnknown, ErrMalformedRequestLine
	}
	method := ParseMethod(methodTok)

	pathTok, stop, found := p.br.TakeUntilAny(bSP, bQuestionMark)
	// Unimplemented methods (CONNECT's authority-form target included)
	// skip the leading-'/' check so the session can answer them 501.
	if !found || len(pathTok) == 0 || (pathTok[0] != bSlash && method.Implemented()) {
		return MethodUnknown, ErrMalformedRequestLine
	}
	req.SetPath(trimTrailingSlash(pathTok))
	p.br.Advance(1) // consume the matched delimiter itself

	if stop == bQuestionMark {
		queryTok, ok := p.br.TakeUntilByte(bSP)
		if !ok {
			return MethodUnknown, ErrMalformedRequestLine
		}
		req.SetQuery(queryTok)
		if !p.br.ConsumeByte(bSP) {
			return MethodUnknown, ErrMalformedRequestLine
		}
	}

	if !p.br.ConsumeLiteral(http11CRLF) {
		return MethodUnknown, ErrUnsupportedProtocol
	}

	return method, nil
}

// trimTrailingSlash strips a trailing '/' from any path other than the
// root "/" itself, per spec §4.1's tie-break.
func trimTrailingSlash(path []byte) []byte {
	if len(path) > 1 && path[len(path)-1] == bSlash {
		return path[:len(path)-1]
	}
	return path
}

// parseHeaders consumes header lines until the terminating blank CRLF.
func (p *Parser) parseHeaders(req *Request) error {
	for {
		if b, ok := p.br.Peek(); ok && b == '\r' {
			if !p.br.ConsumeLiteral(crlf) {
				return ErrMalformedHeader
			}
			return nil
		}

		name, ok := p.br.TakeUntilByte(bColon)
		if !ok || len(name) == 0 {
			return ErrMalformedHeader
		}
		if !p.br.ConsumeByte(bColon) {
			return ErrMalformedHeader
		}
		p.br.ConsumeByte(bSP) // literal ": " is one SP after the colon

		value, ok := p.br.TakeUntilByte('\r')
		if !ok {
			return ErrMalformedHeader
		}
		if !p.br.ConsumeLiteral(crlf) {
			return ErrMalformedHeader
		}

		LowerASCII(name)
		if string(name) == HeaderContentLength {
			if prev, dup := req.Headers.Get(HeaderContentLength); dup && !bytes.Equal(prev, value) {
				return ErrRequestSmuggling
			}
		}
		if err := req.Headers.Add(name, value); err != nil {
			return err
		}
	}
}

// contentLengthOf enforces the RFC 7230 §3.3.3 smuggling protections:
// Content-Length and Transfer-Encoding must not both appear, and
// duplicate Content-Length values must agree. RequestHeaders' "last
// write wins" would otherwise collapse a conflicting duplicate to one
// value and silently lose the mismatch, so parseHeaders compares each
// Content-Length occurrence against the stored one as it is read; this
// function performs the Transfer-Encoding/Content-Length presence check.
func contentLengthOf(req *Request) (int64, bool, error) {
	_, hasTE := req.Headers.Get(HeaderTransferEnc)
	clVal, hasCL := req.Headers.Get(HeaderContentLength)

	if hasCL && hasTE {
		return 0, false, ErrRequestSmuggling
	}
	if !hasCL {
		return 0, false, nil
	}

	n, err := parseDecimal(clVal)
	if err != nil {
		return 0, false, ErrMalformedHeader
	}
	return n, true, nil
}

func parseDecimal(b []byte) (int64, error) {
	s := bytes.TrimSpace(b)
	if len(s) == 0 {
		return 0, ErrMalformedHeader
	}
	return strconv.ParseInt(string(s), 10, 64)
}

func closeRequested(req *Request) bool {
	v, ok := req.Headers.Get(HeaderConnection)
	return ok && bytes.EqualFold(bytes.TrimSpace(v), valClose)
}

// readBody implements spec §4.1 step 5's three cases against the
// already-read metadata buffer plus, if needed, further reads from conn.
func (p *Parser) readBody(conn io.Reader, req *Request, declared int64) error {
	remaining := p.br.Remaining()

	switch {
	case len(remaining) == 0:
		// Case a: nothing left in the buffer; allocate and read exactly
		// the declared length fresh from the connection.
		owned := make([]byte, declared)
		if _, err := io.ReadFull(conn, owned); err != nil {
			return ErrUnexpectedEOF
		}
		req.Body = Body{Kind: BodyOwned, bytes: owned}

	case int64(len(remaining)) >= declared:
		// Case b: the whole body already sits in the buffer; borrow it,
		// zero allocation.
		req.Body = Body{Kind: BodyBorrowed, bytes: remaining[:declared]}
		p.br.Advance(int(declared))

	default:
		// Case c: the buffer holds a prefix; allocate, copy the prefix,
		// then read the rest from the connection.
		owned := make([]byte, declared)
		copy(owned, remaining)
		if _, err := io.ReadFull(conn, owned[len(remaining):]); err != nil {
			return ErrUnexpectedEOF
		}
		req.Body = Body{Kind: BodyOwned, bytes: owned}
		p.br.Advance(len(remaining))
	}

	return nil
}
