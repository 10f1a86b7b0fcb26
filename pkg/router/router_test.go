package router

import (
	"testing"

	"webcore/pkg/web"
)

type nopSink struct{}

func (nopSink) WriteResponse(int, string, web.Header, web.Header, []byte) error { return nil }
func (nopSink) Close() error                                                    { return nil }

func newReqRes(method, path string) (*web.Request, *web.Response) {
	return web.NewRequest(method, path, "HTTP/1.1", nil, nil), web.NewResponse(nopSink{})
}

func TestRouteRequiresHandlers(t *testing.T) {
	if _, err := NewRoute("GET", "/a"); err == nil {
		t.Fatal("expected error constructing a route with no handlers")
	}
}

func TestRouteParamCapture(t *testing.T) {
	var captured string
	route, err := NewRoute("GET", "/stress/:id", func(req *web.Request, res *web.Response) web.FlowCode {
		id, _ := req.PathParam("id")
		captured = id
		return web.Exit
	})
	if err != nil {
		t.Fatal(err)
	}
	req, res := newReqRes("GET", "/stress/42")
	if !route.Match(req) {
		t.Fatal("expected match")
	}
	code, err := route.Handle(req, res)
	if err != nil || code != web.Exit {
		t.Fatalf("Handle = %v, %v", code, err)
	}
	if captured != "42" {
		t.Fatalf("captured = %q, want 42", captured)
	}
}

func TestRouteMethodMismatchStillSetsParams(t *testing.T) {
	route, _ := NewRoute("POST", "/stress/:id", func(*web.Request, *web.Response) web.FlowCode { return web.Exit })
	req, _ := newReqRes("GET", "/stress/42")
	if route.Match(req) {
		t.Fatal("expected method mismatch to report no match")
	}
	if _, ok := req.PathParam("id"); !ok {
		t.Fatal("expected path params to be set even on method mismatch")
	}
}

func TestRouteChainExhaustedReturnsExit(t *testing.T) {
	route, _ := NewRoute("GET", "/a",
		func(*web.Request, *web.Response) web.FlowCode { return web.Continue },
		func(*web.Request, *web.Response) web.FlowCode { return web.Continue },
	)
	req, res := newReqRes("GET", "/a")
	code, err := route.Handle(req, res)
	if err != nil || code != web.Exit {
		t.Fatalf("Handle = %v, %v", code, err)
	}
}

func TestRouterFirstMatchPrecedence(t *testing.T) {
	rtr := New()
	var which string

	routeTwo, _ := NewRoute("GET", "/stress/:id/:name", func(req *web.Request, res *web.Response) web.FlowCode {
		which = "two"
		return web.Exit
	})
	routeOne, _ := NewRoute("GET", "/stress/:id", func(req *web.Request, res *web.Response) web.FlowCode {
		which = "one"
		return web.Exit
	})
	rtr.routes = append(rtr.routes, routeTwo, routeOne)

	req, res := newReqRes("GET", "/stress/7/foo")
	handled, err := rtr.Handle(req, res)
	if err != nil || !handled {
		t.Fatalf("Handle = %v, %v", handled, err)
	}
	if which != "two" {
		t.Fatalf("expected two-segment route to win, got %q", which)
	}

	which = ""
	req, res = newReqRes("GET", "/stress/7")
	handled, err = rtr.Handle(req, res)
	if err != nil || !handled {
		t.Fatalf("Handle = %v, %v", handled, err)
	}
	if which != "one" {
		t.Fatalf("expected one-segment route to win, got %q", which)
	}
}

func TestRouterMiddlewareShortCircuit(t *testing.T) {
	rtr := New()
	routeRan := false
	rtr.Use(func(req *web.Request, res *web.Response) web.FlowCode {
		res.SendText("Unauthorized access")
		return web.Exit
	})
	route, _ := NewRoute("GET", "/a", func(*web.Request, *web.Response) web.FlowCode {
		routeRan = true
		return web.Exit
	})
	rtr.routes = append(rtr.routes, route)

	req, res := newReqRes("GET", "/a")
	handled, err := rtr.Handle(req, res)
	if err != nil || !handled {
		t.Fatalf("Handle = %v, %v", handled, err)
	}
	if routeRan {
		t.Fatal("expected route handler not to run after middleware short-circuit")
	}
}

func TestRouterNoMatch(t *testing.T) {
	rtr := New()
	req, res := newReqRes("GET", "/nope")
	handled, err := rtr.Handle(req, res)
	if err != nil || handled {
		t.Fatalf("Handle = %v, %v, want handled=false", handled, err)
	}
}
