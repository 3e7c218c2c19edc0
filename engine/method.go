// Package engine implements the HTTP/1.1 wire-level request/response engine:
// borrowed-slice parsing, the per-connection session loop, and response
// serialization. It has no knowledge of routing or middleware.
package engine

// Method identifies an HTTP request method. Only the methods spec.md
// recognizes get a named constant; anything else parses to MethodUnknown
// and is answered 501, same as MethodCONNECT.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodGET
	MethodHEAD
	MethodPUT
	MethodPOST
	MethodPATCH
	MethodDELETE
	MethodOPTIONS
	MethodCONNECT
)

var methodBytesTable = [...][]byte{
	MethodUnknown: nil,
	MethodGET:     []byte("GET"),
	MethodHEAD:    []byte("HEAD"),
	MethodPUT:     []byte("PUT"),
	MethodPOST:    []byte("POST"),
	MethodPATCH:   []byte("PATCH"),
	MethodDELETE:  []byte("DELETE"),
	MethodOPTIONS: []byte("OPTIONS"),
	MethodCONNECT: []byte("CONNECT"),
}

var methodStringTable = [...]string{
	MethodUnknown: "",
	MethodGET:     "GET",
	MethodHEAD:    "HEAD",
	MethodPUT:     "PUT",
	MethodPOST:    "POST",
	MethodPATCH:   "PATCH",
	MethodDELETE:  "DELETE",
	MethodOPTIONS: "OPTIONS",
	MethodCONNECT: "CONNECT",
}

// ParseMethod converts a request-line method token to a Method by exact
// ASCII match, length-switched first to keep the common cases (GET, POST)
// to a handful of byte compares.
func ParseMethod(tok []byte) Method {
	switch len(tok) {
	case 3:
		if tok[0] == 'G' && tok[1] == 'E' && tok[2] == 'T' {
			return MethodGET
		}
		if tok[0] == 'P' && tok[1] == 'U' && tok[2] == 'T' {
			return MethodPUT
		}
	case 4:
		if tok[0] == 'P' && tok[1] == 'O' && tok[2] == 'S' && tok[3] == 'T' {
			return MethodPOST
		}
		if tok[0] == 'H' && tok[1] == 'E' && tok[2] == 'A' && tok[3] == 'D' {
			return MethodHEAD
		}
	case 5:
		if tok[0] == 'P' && tok[1] == 'A' && tok[2] == 'T' && tok[3] == 'C' && tok[4] == 'H' {
			return MethodPATCH
		}
	case 6:
		if tok[0] == 'D' && tok[1] == 'E' && tok[2] == 'L' && tok[3] == 'E' && tok[4] == 'T' && tok[5] == 'E' {
			return MethodDELETE
		}
	case 7:
		if tok[0] == 'O' && tok[1] == 'P' && tok[2] == 'T' && tok[3] == 'I' && tok[4] == 'O' && tok[5] == 'N' && tok[6] == 'S' {
			return MethodOPTIONS
		}
		if tok[0] == 'C' && tok[1] == 'O' && tok[2] == 'N' && tok[3] == 'N' && tok[4] == 'E' && tok[5] == 'C' && tok[6] == 'T' {
			return MethodCONNECT
		}
	}
	return MethodUnknown
}

// String returns the canonical method token, or "" for MethodUnknown.
func (m Method) String() string {
	if int(m) >= len(methodStringTable) {
		return ""
	}
	return methodStringTable[m]
}

// Bytes returns the canonical method token as a byte slice, or nil for
// MethodUnknown.
func (m Method) Bytes() []byte {
	if int(m) >= len(methodBytesTable) {
		return nil
	}
	return methodBytesTable[m]
}

// Implemented reports whether the core dispatches this method at all.
// CONNECT and MethodUnknown both fall through to 501 in the session loop.
func (m Method) Implemented() bool {
	return m != MethodUnknown && m != MethodCONNECT
}
