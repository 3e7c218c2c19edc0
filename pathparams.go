package volt

import "log"

// maxPathParams bounds PathParams to the inline array spec §3 describes:
// "a small inline array of at most 2 borrowed slices plus a length
// counter; overflow is dropped with a debug warning."
const maxPathParams = 2

// PathParams holds the segments captured by Param nodes along the matched
// route, in left-to-right order. The backing slices borrow from the
// session's metadata buffer and are only valid for the current request.
type PathParams struct {
	names [maxPathParams][]byte
	vals  [maxPathParams][]byte
	n     int
}

// Reset clears a PathParams for reuse across requests on the same session.
func (p *PathParams) Reset() { p.n = 0 }

// push records one captured segment. Beyond maxPathParams, captures are
// silently dropped with a logged warning rather than growing the
// container, per spec's fixed-capacity invariant.
func (p *PathParams) push(name, val []byte) {
	if p.n >= maxPathParams {
		log.Printf("volt: path param %q dropped, PathParams capacity (%d) exceeded", name, maxPathParams)
		return
	}
	p.names[p.n] = name
	p.vals[p.n] = val
	p.n++
}

// Len reports how many parameters were captured (post-overflow-drop).
func (p *PathParams) Len() int { return p.n }

// At returns the i'th captured parameter's raw bytes in match order.
func (p *PathParams) At(i int) ([]byte, bool) {
	if i < 0 || i >= p.n {
		return nil, false
	}
	return p.vals[i], true
}

// ByName returns the raw bytes captured under the given :name segment.
func (p *PathParams) ByName(name string) ([]byte, bool) {
	for i := 0; i < p.n; i++ {
		if string(p.names[i]) == name {
			return p.vals[i], true
		}
	}
	return nil, false
}
