// Package router implements the routing/middleware pipeline: pattern-matched
// routes grouped under routers, dispatched with first-match precedence.
package router

import (
	"fmt"
	"strings"

	"webcore/pkg/uri"
	"webcore/pkg/web"
)

// Route binds one (method, path expression) pair to an ordered, non-empty
// chain of handlers.
type Route struct {
	method     string
	expression string
	handlers   []web.HandlerFunc
}

// NewRoute constructs a Route. Constructing with an empty handler chain
// fails with an error, mirroring the invalid-argument failure the source
// implementation raises from its constructor.
func NewRoute(method, expression string, handlers ...web.HandlerFunc) (*Route, error) {
	if len(handlers) == 0 {
		return nil, fmt.Errorf("router: route %s %s requires at least one handler", method, expression)
	}
	return &Route{
		method:     strings.ToUpper(method),
		expression: expression,
		handlers:   handlers,
	}, nil
}

// Method returns the route's HTTP method.
func (r *Route) Method() string { return r.method }

// Path returns the route's path expression.
func (r *Route) Path() string { return r.expression }

// Match runs the path-pattern matcher against req's path. On a path match it
// stores the captured parameters onto req regardless of method match (this
// mirrors the source's intentional, harmless side effect). Returns true iff
// the method also matches.
func (r *Route) Match(req *web.Request) bool {
	matched, params := uri.MatchPath(r.expression, req.Path())
	if matched {
		req.SetPathParams(params)
	}
	return matched && r.method == req.Method()
}

// Handle runs the handler chain in order. Each handler's flow code
// determines whether the chain continues, stops successfully, or stops on
// error; an unrecognized flow code is an invariant violation. If the chain
// is exhausted without an explicit Exit/Error, the route reports Exit.
func (r *Route) Handle(req *web.Request, res *web.Response) (web.FlowCode, error) {
	for _, h := range r.handlers {
		switch code := h(req, res); code {
		case web.Continue:
			continue
		case web.Exit:
			return web.Exit, nil
		case web.Error:
			return web.Error, nil
		default:
			return web.Error, fmt.Errorf("router: handler returned invalid flow code %v", code)
		}
	}
	return web.Exit, nil
}
