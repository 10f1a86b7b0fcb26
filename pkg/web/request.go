package web

import (
	"strings"
	"sync"

	"webcore/pkg/uri"
)

// Header is a case-insensitive, multi-valued header map. Names are stored
// lower-cased internally; accessors normalize on the way in and out.
type Header map[string][]string

func newHeader() Header { return make(Header) }

func (h Header) add(name, value string) {
	key := strings.ToLower(name)
	h[key] = append(h[key], value)
}

// Add appends a header value under name, matched case-insensitively. Used
// by transport adapters building a Header from wire-level headers.
func (h Header) Add(name, value string) { h.add(name, value) }

func (h Header) values(name string) []string {
	return h[strings.ToLower(name)]
}

func (h Header) first(name string) string {
	v := h.values(name)
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// First returns the first value associated with name, or "".
func (h Header) First(name string) string { return h.first(name) }

// All returns every header as a slice of (name, value) pairs. Order across
// distinct names is unspecified, since Go map iteration is randomized.
func (h Header) All() []uri.KV {
	var out []uri.KV
	for name, values := range h {
		for _, v := range values {
			out = append(out, uri.KV{Name: name, Value: v})
		}
	}
	return out
}

// Request is a read-mostly wrapper over a transport-delivered HTTP request.
// It is constructed once per request, handed to exactly one worker, and is
// never shared across goroutines concurrently — its internal lock exists
// only to guard the one write the router performs (SetPathParams) against
// accidental concurrent use, not to make the type safe for fan-out.
type Request struct {
	method  string
	rawURI  string
	path    string
	version string
	header  Header
	body    []byte

	paramsMu sync.Mutex
	params   []uri.KV

	// scratch is a free-form per-request map. It is intentionally
	// unsynchronized: single-writer by convention (the owning worker).
	scratch map[string]string
}

// NewRequest constructs a Request from already-parsed HTTP fields. Transport
// adapters call this exactly once per inbound request.
func NewRequest(method, rawURI, version string, header Header, body []byte) *Request {
	if header == nil {
		header = newHeader()
	}
	return &Request{
		method:  strings.ToUpper(method),
		rawURI:  rawURI,
		path:    uri.Path(rawURI),
		version: version,
		header:  header,
		body:    body,
		scratch: make(map[string]string),
	}
}

// Method returns the HTTP method, upper-cased.
func (r *Request) Method() string { return r.method }

// URI returns the full request URI, including any query string.
func (r *Request) URI() string { return r.rawURI }

// Path returns the URI with its query string stripped.
func (r *Request) Path() string { return r.path }

// Version returns the protocol version string (e.g. "HTTP/1.1").
func (r *Request) Version() string { return r.version }

// Body returns the request body bytes.
func (r *Request) Body() []byte { return r.body }

// Header returns every value associated with name, matched
// case-insensitively.
func (r *Request) Header(name string) []string { return r.header.values(name) }

// Headers returns every header as a list of (name, value) pairs, with
// lower-cased names; order across distinct names is unspecified.
func (r *Request) Headers() []uri.KV { return r.header.All() }

// HeaderValue returns the first value associated with name, matched
// case-insensitively, or "".
func (r *Request) HeaderValue(name string) string { return r.header.first(name) }

// ContentType returns the first Content-Type header value.
func (r *Request) ContentType() string { return r.header.first("Content-Type") }

// Cookie returns the first Cookie header value.
func (r *Request) Cookie() string { return r.header.first("Cookie") }

// Authorization returns the first Authorization header value.
func (r *Request) Authorization() string { return r.header.first("Authorization") }

// Connection returns the first Connection header value.
func (r *Request) Connection() string { return r.header.first("Connection") }

// KeepAlive reports whether any Connection header value equals
// "keep-alive", case-insensitively.
func (r *Request) KeepAlive() bool {
	for _, v := range r.header.values("Connection") {
		if strings.EqualFold(strings.TrimSpace(v), "keep-alive") {
			return true
		}
	}
	return false
}

// SetPathParams replaces the captured path parameters under the params
// lock. Route.Match calls it for every route whose pattern matches the
// path, even on a method mismatch, so the last such route's captures win.
func (r *Request) SetPathParams(params []uri.KV) {
	r.paramsMu.Lock()
	r.params = params
	r.paramsMu.Unlock()
}

// PathParams returns the captured path parameters.
func (r *Request) PathParams() []uri.KV {
	r.paramsMu.Lock()
	defer r.paramsMu.Unlock()
	return r.params
}

// PathParam returns the value of the first captured parameter named name,
// and whether it was present.
func (r *Request) PathParam(name string) (string, bool) {
	r.paramsMu.Lock()
	defer r.paramsMu.Unlock()
	for _, kv := range r.params {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// SetParam stores a value in the per-request scratch map. Not synchronized:
// single-writer by convention.
func (r *Request) SetParam(key, value string) { r.scratch[key] = value }

// GetParam reads a value from the scratch map.
func (r *Request) GetParam(key string) (string, bool) {
	v, ok := r.scratch[key]
	return v, ok
}

// GetParams returns a copy of the entire scratch map.
func (r *Request) GetParams() map[string]string {
	out := make(map[string]string, len(r.scratch))
	for k, v := range r.scratch {
		out[k] = v
	}
	return out
}

// RemoveParam deletes a key from the scratch map.
func (r *Request) RemoveParam(key string) { delete(r.scratch, key) }

// ClearParams empties the scratch map.
func (r *Request) ClearParams() { r.scratch = make(map[string]string) }
