// Package nethttpx adapts net/http to the engine's transport contract. This
// is the adapter the test suite drives via httptest.Server, and the one
// available to anyone embedding the engine behind the standard library's
// server instead of fasthttp.
package nethttpx

import (
	"io"
	"net/http"

	"webcore/pkg/transport"
	"webcore/pkg/web"
)

// Adapter builds an http.Handler that constructs a web.Request and
// web.Response per request and invokes onRequest with them. The handler
// does not return until the Response has been ended, so a dispatcher may
// send and end it from another goroutine.
func Adapter(onRequest transport.OnRequestReceived, onHeaders transport.OnHeadersReceived) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		header := make(web.Header)
		for name, values := range r.Header {
			for _, v := range values {
				header.Add(name, v)
			}
		}

		method := r.Method
		uri := r.URL.RequestURI()
		version := r.Proto

		if onHeaders != nil {
			hj, ok := w.(http.Hijacker)
			var conn transport.Conn
			if ok {
				conn = hijackCloser{hj: hj}
			} else {
				conn = noopConn{}
			}
			if !onHeaders(conn, transport.Headers{
				Method: method, URI: uri, Version: version, Header: header, Body: body,
			}) {
				w.Header().Set("Connection", "close")
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}

		req := web.NewRequest(method, uri, version, header, body)
		s := &sink{w: w, done: make(chan struct{})}
		res := web.NewResponse(s)

		onRequest(req, res)
		<-s.done
	})
}

type hijackCloser struct{ hj http.Hijacker }

func (h hijackCloser) Close() error {
	conn, _, err := h.hj.Hijack()
	if err != nil {
		return err
	}
	return conn.Close()
}

type noopConn struct{}

func (noopConn) Close() error { return nil }

// sink implements web.Sink over an http.ResponseWriter. net/http's
// ResponseWriter has no distinct "end" primitive beyond returning from the
// handler, so Close releases the waiting handler; the write happens
// entirely in WriteResponse.
type sink struct {
	w    http.ResponseWriter
	done chan struct{}
}

func (s *sink) WriteResponse(status int, reason string, header, trailer web.Header, body []byte) error {
	h := s.w.Header()
	for name, values := range header {
		for _, v := range values {
			h.Add(name, v)
		}
	}
	for name, values := range trailer {
		for _, v := range values {
			h.Add("Trailer-"+name, v)
		}
	}
	s.w.WriteHeader(status)
	_, err := s.w.Write(body)
	return err
}

func (s *sink) Close() error {
	close(s.done)
	return nil
}
