package volt

import "github.com/voltweb/volt/engine"

// Precompiled content-type values, grounded on bolt/core/headers.go's
// contentTypeJSONSlice-style constants (there kept as []string for direct
// net/http header-map assignment; here as []byte since engine.HeaderSet
// stores raw header values as bytes).
var (
	contentTypeJSON = []byte("application/json; charset=utf-8")
	contentTypeText = []byte("text/plain")
	contentTypeHTML = []byte("text/html; charset=utf-8")
	noCacheValue    = []byte("no-store, no-cache, must-revalidate")
)

// SetContentTypeJSON marks resp's body as JSON.
func SetContentTypeJSON(resp *engine.Response) { resp.Headers.SetContentType(contentTypeJSON) }

// SetContentTypeText marks resp's body as plain text.
func SetContentTypeText(resp *engine.Response) { resp.Headers.SetContentType(contentTypeText) }

// SetContentTypeHTML marks resp's body as HTML.
func SetContentTypeHTML(resp *engine.Response) { resp.Headers.SetContentType(contentTypeHTML) }

// SetNoCache adds headers instructing clients never to cache resp.
func SetNoCache(resp *engine.Response) {
	resp.Headers.SetCacheControl(noCacheValue)
}

// SetLocation sets the Location header for a redirect response.
func SetLocation(resp *engine.Response, url string) {
	resp.Headers.SetLocation([]byte(url))
}

// Redirect builds a 301/302 redirect response to url.
func Redirect(permanent bool, url string) *engine.Response {
	status := 302
	if permanent {
		status = 301
	}
	resp := engine.NewEmptyResponse(status)
	SetLocation(resp, url)
	return resp
}
