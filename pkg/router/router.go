package router

import (
	"fmt"

	"webcore/pkg/logger"
	"webcore/pkg/web"
)

// Router groups an ordered middleware chain with an ordered set of routes.
// Routers are registered on a Server in insertion order; within a router,
// routes are matched in insertion order. The first route across all
// registered routers whose Match returns true wins (the server consults
// routers in registration order and stops at the first that handles).
type Router struct {
	middleware []web.HandlerFunc
	routes     []*Route
}

// New constructs an empty Router.
func New() *Router {
	return &Router{}
}

// Use appends a middleware handler, run before route matching.
func (r *Router) Use(h web.HandlerFunc) {
	r.middleware = append(r.middleware, h)
}

// AddRoute registers a route. An empty expression is rejected.
func (r *Router) AddRoute(method, expression string, handlers ...web.HandlerFunc) (*Route, error) {
	if expression == "" {
		return nil, fmt.Errorf("router: route expression must not be empty")
	}
	route, err := NewRoute(method, expression, handlers...)
	if err != nil {
		return nil, err
	}
	r.routes = append(r.routes, route)
	return route, nil
}

// Routes returns the router's routes in registration order.
func (r *Router) Routes() []*Route { return r.routes }

// Handle runs the middleware chain, then, if every middleware returned
// Continue, iterates routes in order and invokes the first one whose Match
// succeeds. It reports whether the request was handled (a middleware
// short-circuited, or a route was found) — the caller (Server) performs
// send/end regardless of outcome.
//
// An HTTPError a handler raises via panic (rather than recording it with
// Response.SetError and returning Error) is logged and re-raised: the router never renders a response for it, that is the
// server's unhandled-exception hook's job. Any other panic is logged and
// re-raised the same way.
func (r *Router) Handle(req *web.Request, res *web.Response) (handled bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			switch e := rec.(type) {
			case *web.HTTPError:
				logger.Error(fmt.Sprintf("router: http error: %v", e))
			case error:
				logger.Error(fmt.Sprintf("router: error: %v", e))
			default:
				logger.Error(fmt.Sprintf("router: panic: %v", rec))
			}
			panic(rec)
		}
	}()

	for _, mw := range r.middleware {
		switch code := mw(req, res); code {
		case web.Continue:
			continue
		case web.Exit, web.Error:
			return true, nil
		default:
			return true, fmt.Errorf("router: middleware returned invalid flow code %v", code)
		}
	}

	for _, route := range r.routes {
		if route.Match(req) {
			_, herr := route.Handle(req, res)
			return true, herr
		}
	}
	return false, nil
}
