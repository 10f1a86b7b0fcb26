// Package app wires the bundled demo application: a handful of routes and
// middleware exercising every invariant of the dispatch engine, registered
// onto a *server.Server before Listen.
package app

import (
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"webcore/pkg/config"
	"webcore/pkg/router"
	"webcore/pkg/server"
	"webcore/pkg/web"
)

// Register installs the demo routes, middleware, and static root onto srv,
// using cfg for the auth token and rate-limit budget.
func Register(srv *server.Server, cfg *config.Config) {
	rtr := router.New()

	limiters := newLimiterPool(cfg.Demo.RateLimitRPS, cfg.Demo.RateLimitBurst)
	rtr.Use(requireDemoToken(cfg.Demo.AuthToken))
	rtr.Use(rateLimit(limiters))

	// Scenario 2 (first-match precedence) requires the two-segment route to
	// be registered ahead of the one-segment route below.
	rtr.AddRoute(web.MethodGet, "/stress/:id/:name", stressWithName)
	rtr.AddRoute(web.MethodGet, "/stress/:id", stressByID)
	rtr.AddRoute(web.MethodGet, "/demo/double-send", doubleSend)

	srv.UseRouter(rtr)
	srv.UseStatic("./viewer")
}

// requireDemoToken rejects requests whose X-Demo-Token header is missing or
// does not equal token.
func requireDemoToken(token string) web.HandlerFunc {
	return func(req *web.Request, res *web.Response) web.FlowCode {
		if req.HeaderValue("X-Demo-Token") != token {
			res.SetStatus(401, "Unauthorized")
			res.SendText("Unauthorized access")
			return web.Exit
		}
		return web.Continue
	}
}

// limiterPool hands out a token-bucket limiter per caller token.
type limiterPool struct {
	mu    sync.Mutex
	byKey map[string]*rate.Limiter
	rps   float64
	burst int
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &limiterPool{byKey: make(map[string]*rate.Limiter), rps: rps, burst: burst}
}

func (p *limiterPool) allow(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.byKey[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(p.rps), p.burst)
		p.byKey[key] = l
	}
	return l.Allow()
}

// rateLimit returns ERROR with a 429 HTTPError once a caller's token bucket
// is exhausted — the one demo handler that demonstrates the ERROR flow code
// distinctly from EXIT.
func rateLimit(limiters *limiterPool) web.HandlerFunc {
	return func(req *web.Request, res *web.Response) web.FlowCode {
		key := req.HeaderValue("X-Demo-Token")
		if key == "" {
			key = "anonymous"
		}
		if !limiters.allow(key) {
			res.SetError(web.NewHTTPErrorStatus("rate limit exceeded", 429, "Too Many Requests"))
			return web.Error
		}
		return web.Continue
	}
}

func stressByID(req *web.Request, res *web.Response) web.FlowCode {
	id, _ := req.PathParam("id")
	res.SendJSON(fmt.Sprintf(`{"status":"success","message":"Stress test id: %s"}`, id))
	return web.Exit
}

func stressWithName(req *web.Request, res *web.Response) web.FlowCode {
	id, _ := req.PathParam("id")
	name, _ := req.PathParam("name")
	res.SendJSON(fmt.Sprintf(`{"status":"success","message":"Stress test id: %s, name: %s"}`, id, name))
	return web.Exit
}

// doubleSend demonstrates that only the first Send call transmits anything;
// the second is a silent no-op.
func doubleSend(req *web.Request, res *web.Response) web.FlowCode {
	res.SendText("first")
	res.SendJSON(`{"ignored":true}`)
	return web.Exit
}
