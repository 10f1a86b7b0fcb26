// Package server implements the dispatcher that sits between a transport
// adapter and the routing engine: static-file serving, worker-pool
// dispatch, and the default/overridable hooks.
package server

import (
	"fmt"
	"time"

	"webcore/pkg/logger"
	"webcore/pkg/metrics"
	"webcore/pkg/router"
	"webcore/pkg/transport"
	"webcore/pkg/uri"
	"webcore/pkg/web"
	"webcore/pkg/workerpool"
)

// UnhandledExceptionHook renders a response for an HTTPError the pipeline
// did not otherwise handle. It is responsible for status/body; the server
// only guarantees it runs before Send/End.
type UnhandledExceptionHook func(req *web.Request, res *web.Response, err *web.HTTPError)

// Server adapts transport callbacks onto the routing engine: it owns the
// registered routers, static-asset roots, and worker pool for its
// lifetime. Registration methods (UseRouter, UseStatic, Get/Post/...) may
// only be called before Listen; Listen freezes the configuration.
type Server struct {
	routers    []*router.Router
	staticDirs []string
	pool       *workerpool.Pool

	defaultHandler     web.HandlerFunc
	onHeadersReceived  transport.OnHeadersReceived
	onTransportError   transport.OnTransportError
	unhandledException UnhandledExceptionHook

	listening bool
}

// New constructs a Server with a worker pool sized workers (<=0 defaults to
// host parallelism, per pkg/workerpool.New).
func New(workers int) *Server {
	s := &Server{
		pool: workerpool.New(workers),
	}
	s.defaultHandler = defaultUnmatchedRouteHandler
	s.unhandledException = defaultUnhandledExceptionHook
	return s
}

func (s *Server) requireNotListening(op string) {
	if s.listening {
		panic(fmt.Sprintf("server: %s called after Listen", op))
	}
}

// UseRouter registers a router. Routers are consulted in registration
// order.
func (s *Server) UseRouter(r *router.Router) {
	s.requireNotListening("UseRouter")
	s.routers = append(s.routers, r)
}

// primaryRouter returns (creating if necessary) the first registered
// router, the target of the Get/Post/Put/Delete convenience methods.
func (s *Server) primaryRouter() *router.Router {
	if len(s.routers) == 0 {
		s.routers = append(s.routers, router.New())
	}
	return s.routers[0]
}

// UseStatic appends a static-asset root directory, tried in registration
// order.
func (s *Server) UseStatic(dir string) {
	s.requireNotListening("UseStatic")
	s.staticDirs = append(s.staticDirs, dir)
}

// UseDefault replaces the unmatched-route handler.
func (s *Server) UseDefault(h web.HandlerFunc) {
	s.requireNotListening("UseDefault")
	s.defaultHandler = h
}

// UseHeadersReceived registers the headers-received hook.
func (s *Server) UseHeadersReceived(hook transport.OnHeadersReceived) {
	s.requireNotListening("UseHeadersReceived")
	s.onHeadersReceived = hook
}

// UseError registers the transport-error hook.
func (s *Server) UseError(hook transport.OnTransportError) {
	s.requireNotListening("UseError")
	s.onTransportError = hook
}

// UseUnhandledException replaces the unhandled-exception hook.
func (s *Server) UseUnhandledException(hook UnhandledExceptionHook) {
	s.requireNotListening("UseUnhandledException")
	s.unhandledException = hook
}

// Get, Post, Put, Delete register a route on the primary router.
func (s *Server) Get(path string, handlers ...web.HandlerFunc) (*router.Route, error) {
	return s.route(web.MethodGet, path, handlers...)
}
func (s *Server) Post(path string, handlers ...web.HandlerFunc) (*router.Route, error) {
	return s.route(web.MethodPost, path, handlers...)
}
func (s *Server) Put(path string, handlers ...web.HandlerFunc) (*router.Route, error) {
	return s.route(web.MethodPut, path, handlers...)
}
func (s *Server) Delete(path string, handlers ...web.HandlerFunc) (*router.Route, error) {
	return s.route(web.MethodDelete, path, handlers...)
}

func (s *Server) route(method, path string, handlers ...web.HandlerFunc) (*router.Route, error) {
	s.requireNotListening("route registration")
	return s.primaryRouter().AddRoute(method, path, handlers...)
}

// TransportError forwards a transport-reported exception to the transport
// error hook (if any), and always logs it.
func (s *Server) TransportError(err error) {
	logger.Error(fmt.Sprintf("transport error: %v", err))
	if s.onTransportError != nil {
		s.onTransportError(err)
	}
}

// HeadersReceived returns the headers-received hook to hand to a transport
// adapter (may be nil).
func (s *Server) HeadersReceived() transport.OnHeadersReceived { return s.onHeadersReceived }

// Listen freezes registration, starts the worker pool, invokes
// onListenSuccess, and returns the OnRequestReceived callback a transport
// adapter should be built with.
func (s *Server) Listen(onListenSuccess func()) transport.OnRequestReceived {
	s.listening = true
	s.pool.Start()
	if onListenSuccess != nil {
		onListenSuccess()
	}
	return s.onRequestReceived
}

// WorkerCount returns the dispatch worker pool's configured worker count.
func (s *Server) WorkerCount() int { return s.pool.Workers() }

// Stop drains the worker pool and joins its workers.
func (s *Server) Stop() {
	s.pool.CloseAndDrain()
}

// onRequestReceived implements spec step (a): validate method, then enqueue
// dispatch onto the worker pool. Runs on the transport's calling goroutine
// and must do only O(1) work before returning.
func (s *Server) onRequestReceived(req *web.Request, res *web.Response) {
	metrics.RequestsReceived.WithLabelValues(req.Method()).Inc()

	if !web.IsKnownMethod(req.Method()) {
		metrics.MethodRejected.Inc()
		res.SetStatus(405, "Method Not Allowed")
		res.SendText("405 Method Not Allowed")
		res.End()
		res.Release()
		return
	}

	enqueueErr := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("workerpool enqueue panic: %v", r)
			}
		}()
		s.pool.Enqueue(func() { s.requestHandler(req, res) })
		metrics.QueueDepth.Set(float64(s.pool.Len()))
		return nil
	}()
	if enqueueErr != nil {
		herr := web.NewHTTPError(enqueueErr.Error())
		logger.Error(fmt.Sprintf("dispatch: %v", herr))
		s.unhandledException(req, res, herr)
		res.Send()
		res.End()
		res.Release()
	}
}

// requestHandler implements spec step (b): static vs. routed vs. unmatched
// dispatch, with panic recovery mapped onto the unhandled-exception hook,
// and an unconditional (idempotent) send+end.
func (s *Server) requestHandler(req *web.Request, res *web.Response) {
	start := time.Now()
	outcome := metrics.OutcomeUnmatched

	defer func() {
		if r := recover(); r != nil {
			herr := toHTTPError(r)
			logger.Error(fmt.Sprintf("request_handler: %v", herr))
			s.unhandledException(req, res, herr)
			outcome = metrics.OutcomePanicked
		}
		res.Send()
		res.End()
		res.Release()
		metrics.DispatchOutcomes.WithLabelValues(outcome).Inc()
		metrics.DispatchDuration.Observe(time.Since(start).Seconds())
	}()

	var handled bool
	if uri.IsStaticAsset(req.Path()) {
		handled = s.serveStatic(req, res)
		outcome = metrics.OutcomeStatic
	} else {
		for _, r := range s.routers {
			h, err := r.Handle(req, res)
			if err != nil {
				panic(err)
			}
			if h {
				handled = true
				outcome = metrics.OutcomeMatched
				break
			}
		}
	}

	if !handled {
		s.defaultHandler(req, res)
		return
	}
	if err := res.Err(); err != nil && !res.Sent() {
		s.unhandledException(req, res, err)
	}
}

func toHTTPError(r any) *web.HTTPError {
	switch e := r.(type) {
	case *web.HTTPError:
		return e
	case error:
		return web.NewHTTPError(e.Error())
	default:
		return web.NewHTTPError(fmt.Sprintf("%v", e))
	}
}

func defaultUnmatchedRouteHandler(_ *web.Request, res *web.Response) web.FlowCode {
	res.SetStatus(404, "Not Found")
	res.SendText("404 Not Found")
	return web.Exit
}

func defaultUnhandledExceptionHook(_ *web.Request, res *web.Response, err *web.HTTPError) {
	res.SetStatus(err.Code(), err.Reason())
	res.SendText(fmt.Sprintf("%d %s", err.Code(), err.Reason()))
}
