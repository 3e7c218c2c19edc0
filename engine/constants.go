package engine

// Pre-compiled status lines and header bytes, avoiding per-response
// allocation for the fixed vocabulary the core assigns spec §6's status
// codes. Grounded on shockwave/http11/constants.go's status-line table and
// bolt/core/headers.go's header-constant idiom, trimmed to the statuses
// the core actually emits.
var statusLines = map[int][]byte{
	200: []byte("HTTP/1.1 200 OK\r\n"),
	201: []byte("HTTP/1.1 201 Created\r\n"),
	204: []byte("HTTP/1.1 204 No Content\r\n"),
	301: []byte("HTTP/1.1 301 Moved Permanently\r\n"),
	302: []byte("HTTP/1.1 302 Found\r\n"),
	400: []byte("HTTP/1.1 400 Bad Request\r\n"),
	401: []byte("HTTP/1.1 401 Unauthorized\r\n"),
	403: []byte("HTTP/1.1 403 Forbidden\r\n"),
	404: []byte("HTTP/1.1 404 Not Found\r\n"),
	413: []byte("HTTP/1.1 413 Payload Too Large\r\n"),
	500: []byte("HTTP/1.1 500 Internal Server Error\r\n"),
	501: []byte("HTTP/1.1 501 Not Implemented\r\n"),
	505: []byte("HTTP/1.1 505 HTTP Version Not Supported\r\n"),
}

var reasonPhrases = map[int]string{
	200: "OK",
	201: "Created",
	204: "No Content",
	301: "Moved Permanently",
	302: "Found",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	413: "Payload Too Large",
	500: "Internal Server Error",
	501: "Not Implemented",
	505: "HTTP Version Not Supported",
}

// StatusLine returns the pre-compiled "HTTP/1.1 <code> <reason>\r\n" bytes
// for a known status, or builds one on the fly for any other code a
// middleware might emit (spec §6: "middlewares may emit others").
func StatusLine(code int) []byte {
	if line, ok := statusLines[code]; ok {
		return line
	}
	reason := reasonPhrases[code]
	if reason == "" {
		reason = "Status"
	}
	return []byte("HTTP/1.1 " + itoa(code) + " " + reason + "\r\n")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

const (
	http11Literal = "HTTP/1.1"
)

var (
	crlf          = []byte("\r\n")
	headerSep     = []byte(": ")
	http11Bytes   = []byte("HTTP/1.1")
	http11CRLF    = []byte("HTTP/1.1\r\n")
	bSP           = byte(' ')
	bQuestionMark = byte('?')
	bColon        = byte(':')
	bSlash        = byte('/')
)

// Header name constants, lowercased as the core always stores/compares
// header names. Grounded on bolt/core/headers.go's precompiled-byte-slice
// idiom.
var (
	HeaderContentType   = "content-type"
	HeaderContentLength = "content-length"
	HeaderConnection    = "connection"
	HeaderDate          = "date"
	HeaderServer        = "server"
	HeaderCacheControl  = "cache-control"
	HeaderLocation      = "location"
	HeaderHost          = "host"
	HeaderTransferEnc   = "transfer-encoding"
	HeaderVary          = "vary"
	HeaderUpgrade       = "upgrade"
	HeaderAccessControlAllowOrigin = "access-control-allow-origin"
)

var (
	valKeepAlive = []byte("keep-alive")
	valClose     = []byte("close")
	serverName   = []byte("volt")
)

// listHeaders are the headers whose repeated presence is list-append
// (spec §3: "list-append semantics for Vary-like headers") rather than
// last-write-wins.
var listHeaders = map[string]bool{
	HeaderVary: true,
}

// DefaultPayloadLimit is spec §4.1 step 4's ceiling, 2^32-1.
const DefaultPayloadLimit = 1<<32 - 1

// MetadataSize is the fixed per-session read buffer spec §4.1 recommends.
const MetadataSize = 1024

// MaxHeaders bounds the inline header-storage array; up to MaxHeaders
// further entries go to an overflow slice, and beyond those the parser
// returns ErrTooManyHeaders rather than silently dropping entries.
const MaxHeaders = 32
