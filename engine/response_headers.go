package engine

// headerGroup is a dirty-bit for one of the known Response header fields;
// write-out skips any group whose bit is clear (spec §3: "Setting a field
// sets a 'dirty group' bit so write-out can skip untouched groups.").
type headerGroup uint16

const (
	groupContentType headerGroup = 1 << iota
	groupContentLength
	groupConnection
	groupDate
	groupServer
	groupCacheControl
	groupLocation
	groupAccessControlAllowOrigin
	groupVary
)

// groupOrder is the fixed write-out order spec §4.5 requires for known
// headers, independent of set order.
var groupOrder = []struct {
	bit  headerGroup
	name string
}{
	{groupContentType, "Content-Type"},
	{groupContentLength, "Content-Length"},
	{groupConnection, "Connection"},
	{groupDate, "Date"},
	{groupServer, "Server"},
	{groupCacheControl, "Cache-Control"},
	{groupLocation, "Location"},
	{groupAccessControlAllowOrigin, "Access-Control-Allow-Origin"},
	{groupVary, "Vary"},
}

// HeaderSet is the Response header container spec §3 describes: "A fixed
// struct of Optional<value> fields for the recognized standard headers,
// plus a small insertion-ordered map for custom headers." Grounded on the
// precompiled-constant idiom of bolt/core/headers.go, generalized into
// named Optional fields with per-group dirty bits instead of a bare byte
// constant per call site.
type HeaderSet struct {
	dirty headerGroup

	contentType   []byte
	contentLength []byte
	connection    []byte
	date          []byte
	server        []byte
	cacheControl  []byte
	location      []byte
	acao          []byte
	vary          []byte

	customKeys []string
	customVals [][]byte
}

// Reset clears every field and the dirty mask, for pooled reuse.
func (h *HeaderSet) Reset() {
	h.dirty = 0
	h.customKeys = h.customKeys[:0]
	h.customVals = h.customVals[:0]
}

func (h *HeaderSet) set(bit headerGroup, dst *[]byte, v []byte) {
	*dst = v
	h.dirty |= bit
}

// Clear removes a known header field, clearing its dirty bit (spec §3:
// "Setting a field to 'absent' clears it.").
func (h *HeaderSet) clear(bit headerGroup) { h.dirty &^= bit }

func (h *HeaderSet) SetContentType(v []byte)   { h.set(groupContentType, &h.contentType, v) }
func (h *HeaderSet) SetContentLength(v []byte) { h.set(groupContentLength, &h.contentLength, v) }
func (h *HeaderSet) SetConnection(v []byte)    { h.set(groupConnection, &h.connection, v) }
func (h *HeaderSet) SetDate(v []byte)          { h.set(groupDate, &h.date, v) }
func (h *HeaderSet) SetServer(v []byte)        { h.set(groupServer, &h.server, v) }
func (h *HeaderSet) SetCacheControl(v []byte)  { h.set(groupCacheControl, &h.cacheControl, v) }
func (h *HeaderSet) SetLocation(v []byte)      { h.set(groupLocation, &h.location, v) }
func (h *HeaderSet) SetACAO(v []byte)          { h.set(groupAccessControlAllowOrigin, &h.acao, v) }
func (h *HeaderSet) SetVary(v []byte)          { h.set(groupVary, &h.vary, v) }

func (h *HeaderSet) ClearContentType() { h.clear(groupContentType) }
func (h *HeaderSet) ClearConnection()  { h.clear(groupConnection) }

// ContentLength returns the set Content-Length bytes and whether it was
// set at all.
func (h *HeaderSet) ContentLength() ([]byte, bool) {
	return h.contentLength, h.dirty&groupContentLength != 0
}

// Connection returns the set Connection value and whether it was set.
func (h *HeaderSet) Connection() ([]byte, bool) {
	return h.connection, h.dirty&groupConnection != 0
}

// SetCustom appends (or overwrites, if key already present) an insertion-
// ordered custom header. Custom headers write out after every known
// group, in the order they were first set (spec §4.5).
func (h *HeaderSet) SetCustom(key string, value []byte) {
	for i, k := range h.customKeys {
		if k == key {
			h.customVals[i] = value
			return
		}
	}
	h.customKeys = append(h.customKeys, key)
	h.customVals = append(h.customVals, value)
}

func (h *HeaderSet) fieldFor(bit headerGroup) []byte {
	switch bit {
	case groupContentType:
		return h.contentType
	case groupContentLength:
		return h.contentLength
	case groupConnection:
		return h.connection
	case groupDate:
		return h.date
	case groupServer:
		return h.server
	case groupCacheControl:
		return h.cacheControl
	case groupLocation:
		return h.location
	case groupAccessControlAllowOrigin:
		return h.acao
	case groupVary:
		return h.vary
	}
	return nil
}

// WriteTo appends "Name: value\r\n" for every dirty known header in fixed
// group order, then every custom header in insertion order. It does not
// write the terminal blank line; callers append that once after the
// status line and all headers.
func (h *HeaderSet) WriteTo(buf []byte) []byte {
	for _, g := range groupOrder {
		if h.dirty&g.bit == 0 {
			continue
		}
		buf = append(buf, g.name...)
		buf = append(buf, headerSep...)
		buf = append(buf, h.fieldFor(g.bit)...)
		buf = append(buf, crlf...)
	}
	for i, k := range h.customKeys {
		buf = append(buf, k...)
		buf = append(buf, headerSep...)
		buf = append(buf, h.customVals[i]...)
		buf = append(buf, crlf...)
	}
	return buf
}
