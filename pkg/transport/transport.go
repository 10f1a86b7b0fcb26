// Package transport defines the contract a lower-level HTTP transport must
// satisfy to drive the dispatch engine, and hosts the shared connection
// primitive both adapter subpackages (fasthttpx, nethttpx) build on top of.
package transport

import "webcore/pkg/web"

// OnRequestReceived is invoked once per inbound request, on whatever thread
// the transport delivers it on. It is handed a fully constructed Request
// and a Response bound to that connection's Sink; the callee is responsible
// for eventually calling Send and End on it (directly, or by handing it to
// a dispatcher that will).
type OnRequestReceived func(req *web.Request, res *web.Response)

// Headers is the minimal view of a not-yet-fully-parsed request exposed to
// the headers-received hook.
type Headers struct {
	Method  string
	URI     string
	Version string
	Header  web.Header
	// Body is whatever partial buffer the transport has assembled when the
	// hook fires. Transports that only expose fully-buffered bodies (like
	// both adapters here) pass the complete body; callers must not assume
	// completeness in general.
	Body []byte
}

// Conn is the connection-close primitive exposed to the headers-received
// hook, letting it reject a connection before a Request/Response pair
// exists.
type Conn interface {
	Close() error
}

// OnHeadersReceived is invoked before body-dependent processing, if
// registered. Returning false requests that the transport close the
// connection immediately.
type OnHeadersReceived func(conn Conn, h Headers) (proceed bool)

// OnTransportError is invoked when the transport itself reports an
// exception unrelated to any single request (accept-loop failures, and
// similar). The engine only logs; the transport-error hook is the user's
// mechanism for the rest.
type OnTransportError func(err error)
