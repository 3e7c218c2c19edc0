package engine

// ByteReader is a cursor over a byte buffer offering the take-while and
// consume primitives the parser builds its request-line/header scanning
// on. It never copies; every Take* call returns a sub-slice of the
// original buffer. Grounded on the inline scanning performed by
// shockwave/pkg/shockwave/http11/parser.go, lifted into its own
// component since spec §2 lists ByteReader as a standalone leaf.
type ByteReader struct {
	buf []byte
	pos int
}

// NewByteReader wraps buf for cursor-based scanning starting at offset 0.
func NewByteReader(buf []byte) *ByteReader {
	return &ByteReader{buf: buf}
}

// Reset rebinds the cursor to a new buffer at offset 0, for pooled reuse.
func (r *ByteReader) Reset(buf []byte) {
	r.buf = buf
	r.pos = 0
}

// Pos returns the current offset into the underlying buffer.
func (r *ByteReader) Pos() int { return r.pos }

// Remaining returns the unconsumed tail of the buffer.
func (r *ByteReader) Remaining() []byte { return r.buf[r.pos:] }

// Len reports how many bytes remain unconsumed.
func (r *ByteReader) Len() int { return len(r.buf) - r.pos }

// Peek returns the next byte without consuming it; ok is false at EOF.
func (r *ByteReader) Peek() (b byte, ok bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	return r.buf[r.pos], true
}

// Advance consumes n bytes unconditionally, clamped to what remains.
func (r *ByteReader) Advance(n int) {
	r.pos += n
	if r.pos > len(r.buf) {
		r.pos = len(r.buf)
	}
}

// TakeWhile consumes and returns the longest prefix of the remaining
// buffer for which pred holds. It may return a zero-length slice.
func (r *ByteReader) TakeWhile(pred func(byte) bool) []byte {
	start := r.pos
	for r.pos < len(r.buf) && pred(r.buf[r.pos]) {
		r.pos++
	}
	return r.buf[start:r.pos]
}

// TakeUntilByte consumes and returns everything up to (not including) the
// first occurrence of delim. ok is false if delim never appears, in which
// case the cursor is left unmoved.
func (r *ByteReader) TakeUntilByte(delim byte) (tok []byte, ok bool) {
	rest := r.buf[r.pos:]
	for i, b := range rest {
		if b == delim {
			tok = rest[:i]
			r.pos += i
			return tok, true
		}
	}
	return nil, false
}

// TakeUntilAny consumes and returns everything up to (not including) the
// first occurrence of any byte in delims. ok is false if none appear.
func (r *ByteReader) TakeUntilAny(delims ...byte) (tok []byte, hit byte, ok bool) {
	rest := r.buf[r.pos:]
	for i, b := range rest {
		for _, d := range delims {
			if b == d {
				r.pos += i
				return rest[:i], b, true
			}
		}
	}
	return nil, 0, false
}

// ConsumeLiteral consumes exactly len(lit) bytes if they match lit,
// reporting success; on mismatch the cursor is left unmoved.
func (r *ByteReader) ConsumeLiteral(lit []byte) bool {
	if r.pos+len(lit) > len(r.buf) {
		return false
	}
	for i, b := range lit {
		if r.buf[r.pos+i] != b {
			return false
		}
	}
	r.pos += len(lit)
	return true
}

// ConsumeByte consumes exactly one byte if it equals b.
func (r *ByteReader) ConsumeByte(b byte) bool {
	if r.pos >= len(r.buf) || r.buf[r.pos] != b {
		return false
	}
	r.pos++
	return true
}
