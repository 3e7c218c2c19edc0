package engine

import "errors"

// Parse-level wire errors. These map directly onto spec §7's error
// taxonomy kind 1 (400/413/505); the session translates them into a
// minimal response and closes the connection.
var (
	// ErrMalformedRequestLine covers a request line missing its single
	// spaces, an empty method/path, or, for an implemented method, a path
	// not starting with '/'.
	ErrMalformedRequestLine = errors.New("engine: malformed request line")

	// ErrMalformedHeader covers a header line without ": " or without a
	// terminating "\r\n".
	ErrMalformedHeader = errors.New("engine: malformed header line")

	// ErrUnsupportedProtocol is raised when the request line does not end
	// in the literal "HTTP/1.1\r\n" (→ 505).
	ErrUnsupportedProtocol = errors.New("engine: unsupported HTTP version")

	// ErrPayloadTooLarge is raised when Content-Length exceeds PayloadLimit
	// (→ 413).
	ErrPayloadTooLarge = errors.New("engine: payload exceeds configured limit")

	// ErrTooManyHeaders is raised past the inline header capacity without
	// an overflow slot available.
	ErrTooManyHeaders = errors.New("engine: too many headers")

	// ErrRequestSmuggling is raised for RFC 7230 §3.3.3 violations: both
	// Content-Length and Transfer-Encoding present, or duplicate
	// Content-Length values that disagree.
	ErrRequestSmuggling = errors.New("engine: conflicting framing headers")

	// ErrConnectionReset / ErrUnexpectedEOF signal a clean or unclean
	// close while waiting for / reading a request; like any other parse
	// error, the session answers them with a minimal 400 response (write
	// errors ignored) and stops serving the connection.
	ErrConnectionReset = errors.New("engine: connection reset")
	ErrUnexpectedEOF   = errors.New("engine: unexpected EOF mid-request")
)

// ErrKind buckets a parse error into the status code spec §6/§7 assigns it.
// Used by the session to pick the minimal error response to write before
// closing.
func ErrKind(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedProtocol):
		return 505
	case errors.Is(err, ErrPayloadTooLarge):
		return 413
	case err != nil:
		return 400
	default:
		return 200
	}
}
