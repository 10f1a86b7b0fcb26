package web

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/valyala/bytebufferpool"

	"webcore/pkg/logger"
)

// Sink is the transport-provided primitive a Response uses to actually put
// bytes on the wire and finalize the connection. Transport adapters
// implement this once per connection/request.
type Sink interface {
	// WriteResponse transmits the status line, headers, trailers and body.
	// Called at most once per response.
	WriteResponse(status int, reason string, header, trailer Header, body []byte) error
	// Close finalizes the underlying connection. Called at most once per
	// response, after WriteResponse (or in place of it, if send failed).
	Close() error
}

// Response is a buffered, idempotent HTTP response wrapper. All header/body
// mutation is guarded by a single lock; send and end are each guarded by
// their own lock and protected by an atomic CAS latch so that handler
// mistakes (calling send or end more than once) are harmless no-ops.
type Response struct {
	sink Sink

	headerMu sync.Mutex
	status   int
	reason   string
	header   Header
	trailer  Header
	buf      *bytebufferpool.ByteBuffer

	sent atomic.Bool
	sendMu sync.Mutex

	ended  atomic.Bool
	endMu  sync.Mutex

	// handlerErr is set by a handler via SetError before returning Error; the
	// server's unhandled-exception hook reads it to render the response.
	handlerErr *HTTPError
}

// NewResponse constructs a Response wrapping sink, with the default status
// 200 OK applied immediately.
func NewResponse(sink Sink) *Response {
	return &Response{
		sink:   sink,
		status: 200,
		reason: "OK",
		header: newHeader(),
		trailer: newHeader(),
		buf:    bytebufferpool.Get(),
	}
}

// Release returns the response's pooled body buffer. Callers invoke this
// after End() has completed; it is not itself idempotency-guarded because
// the dispatcher calls it exactly once, after the send/end sequence.
func (r *Response) Release() {
	if r.buf != nil {
		bytebufferpool.Put(r.buf)
		r.buf = nil
	}
}

// SetStatus sets the status code and reason phrase.
func (r *Response) SetStatus(code int, reason string) {
	r.headerMu.Lock()
	defer r.headerMu.Unlock()
	r.status = code
	r.reason = reason
}

// SetError records an HTTPError for the unhandled-exception hook to render,
// and sets the response status/reason to match it. Handlers call this
// before returning Error.
func (r *Response) SetError(err *HTTPError) {
	r.handlerErr = err
	r.SetStatus(err.Code(), err.Reason())
}

// Err returns the HTTPError previously recorded via SetError, or nil.
func (r *Response) Err() *HTTPError { return r.handlerErr }

// Sent reports whether Send has already transmitted the response.
func (r *Response) Sent() bool { return r.sent.Load() }

// SetBody replaces the response body.
func (r *Response) SetBody(body []byte) {
	r.headerMu.Lock()
	defer r.headerMu.Unlock()
	r.buf.Reset()
	r.buf.Write(body)
}

// SetContentType sets the Content-Type header.
func (r *Response) SetContentType(contentType string) {
	r.AddHeader("Content-Type", contentType)
}

// AddHeader appends a header value.
func (r *Response) AddHeader(key, value string) {
	r.headerMu.Lock()
	defer r.headerMu.Unlock()
	r.header.add(key, value)
}

// AddTrailer appends a trailer value.
func (r *Response) AddTrailer(key, value string) {
	r.headerMu.Lock()
	defer r.headerMu.Unlock()
	r.trailer.add(key, value)
}

// AddCookie appends a "Set-Cookie: name=value[; attrs]" header. Cookies are
// not deduplicated; multiple calls append multiple Set-Cookie lines.
func (r *Response) AddCookie(name, value, attributes string) {
	cookie := name + "=" + value
	if attributes != "" {
		cookie += "; " + attributes
	}
	r.AddHeader("Set-Cookie", cookie)
}

func (r *Response) bodyLen() int {
	if r.buf == nil {
		return 0
	}
	return r.buf.Len()
}

func (r *Response) bodyBytes() []byte {
	if r.buf == nil {
		return nil
	}
	return r.buf.B
}

// SendJSON sets Content-Type: application/json, the body, Content-Length,
// then sends.
func (r *Response) SendJSON(jsonData string) {
	r.headerMu.Lock()
	r.header.add("Content-Type", "application/json")
	r.buf.Reset()
	r.buf.WriteString(jsonData)
	r.header.add("Content-Length", strconv.Itoa(len(jsonData)))
	r.headerMu.Unlock()
	r.Send()
}

// SendHTML sets Content-Type: text/html, the body, Content-Length, then
// sends.
func (r *Response) SendHTML(htmlData string) {
	r.headerMu.Lock()
	r.header.add("Content-Type", "text/html")
	r.buf.Reset()
	r.buf.WriteString(htmlData)
	r.header.add("Content-Length", strconv.Itoa(len(htmlData)))
	r.headerMu.Unlock()
	r.Send()
}

// SendText sets Content-Type: text/plain, the body, Content-Length, then
// sends.
func (r *Response) SendText(textData string) {
	r.headerMu.Lock()
	r.header.add("Content-Type", "text/plain")
	r.buf.Reset()
	r.buf.WriteString(textData)
	r.header.add("Content-Length", strconv.Itoa(len(textData)))
	r.headerMu.Unlock()
	r.Send()
}

// Send transmits the response exactly once. A second call (from a handler
// mistake, or a defensive retry after a caught exception) is a silent no-op.
// Missing Connection/Content-Length headers are auto-supplied before
// transmission; any error from the sink is logged and followed by End().
func (r *Response) Send() {
	if r.sent.Swap(true) {
		return
	}

	r.headerMu.Lock()
	if len(r.header.values("Connection")) == 0 {
		r.header.add("Connection", "close")
	}
	if len(r.header.values("Content-Length")) == 0 {
		r.header.add("Content-Length", strconv.Itoa(r.bodyLen()))
	}
	status, reason, header, trailer, body := r.status, r.reason, r.header, r.trailer, r.bodyBytes()
	r.headerMu.Unlock()

	r.sendMu.Lock()
	err := r.sink.WriteResponse(status, reason, header, trailer, body)
	r.sendMu.Unlock()

	if err != nil {
		logger.Error(fmt.Sprintf("error sending response: %v", err))
		r.End()
	}
}

// End finalizes the underlying connection exactly once; subsequent calls
// are silent no-ops.
func (r *Response) End() {
	if r.ended.Swap(true) {
		return
	}
	r.endMu.Lock()
	defer r.endMu.Unlock()
	if err := r.sink.Close(); err != nil {
		logger.Error(fmt.Sprintf("error ending response: %v", err))
	}
}
