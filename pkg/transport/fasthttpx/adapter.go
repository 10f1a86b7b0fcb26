// Package fasthttpx adapts github.com/valyala/fasthttp to the engine's
// transport contract. This is the production transport the example binary
// listens with.
package fasthttpx

import (
	"github.com/valyala/fasthttp"

	"webcore/pkg/transport"
	"webcore/pkg/web"
)

// Adapter builds a fasthttp.RequestHandler that constructs a web.Request and
// web.Response per request and invokes onRequest with them. If
// onHeaders is non-nil it runs first; returning false from it closes the
// connection without constructing a Request/Response pair. The handler
// does not return until the Response has been ended, so a dispatcher may
// send and end it from another goroutine.
func Adapter(onRequest transport.OnRequestReceived, onHeaders transport.OnHeadersReceived) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		header := make(web.Header)
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			header.Add(string(k), string(v))
		})

		body := ctx.PostBody()
		method := string(ctx.Method())
		uri := string(ctx.RequestURI())
		version := "HTTP/1.1"

		if onHeaders != nil {
			conn := connCloser{ctx: ctx}
			if !onHeaders(conn, transport.Headers{
				Method: method, URI: uri, Version: version, Header: header, Body: body,
			}) {
				ctx.SetConnectionClose()
				return
			}
		}

		req := web.NewRequest(method, uri, version, header, body)
		s := &sink{ctx: ctx, done: make(chan struct{})}
		res := web.NewResponse(s)

		onRequest(req, res)
		<-s.done
	}
}

type connCloser struct{ ctx *fasthttp.RequestCtx }

func (c connCloser) Close() error {
	c.ctx.SetConnectionClose()
	return nil
}

// sink implements web.Sink over a *fasthttp.RequestCtx.
type sink struct {
	ctx  *fasthttp.RequestCtx
	done chan struct{}
}

func (s *sink) WriteResponse(status int, reason string, header, trailer web.Header, body []byte) error {
	s.ctx.SetStatusCode(status)
	if reason != "" {
		s.ctx.Response.Header.SetStatusMessage([]byte(reason))
	}
	for name, values := range header {
		for _, v := range values {
			s.ctx.Response.Header.Add(name, v)
		}
	}
	for name, values := range trailer {
		for _, v := range values {
			s.ctx.Response.Header.Add("Trailer-"+name, v)
		}
	}
	_, err := s.ctx.Write(body)
	return err
}

func (s *sink) Close() error {
	s.ctx.SetConnectionClose()
	close(s.done)
	return nil
}
