package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

// chiRouter serves both the root mux and the scoped routers chi hands to
// Group and Route callbacks. root stays the top-level mux for Routes.
type chiRouter struct {
	root *chi.Mux
	r    chi.Router
}

// AdaptChi wraps a *chi.Mux in the Router seam
func AdaptChi(m *chi.Mux) Router { return chiRouter{root: m, r: m} }

func (c chiRouter) Get(p string, h Handler)  { c.Method(http.MethodGet, p, h) }
func (c chiRouter) Post(p string, h Handler) { c.Method(http.MethodPost, p, h) }

func (c chiRouter) Method(method, p string, h Handler) {
	c.r.Method(strings.ToUpper(method), p, http.HandlerFunc(h))
}

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(c.scoped(sub)) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(c.scoped(sub)) })
}

func (c chiRouter) Mux() http.Handler { return c.r }

func (c chiRouter) scoped(sub chi.Router) chiRouter { return chiRouter{root: c.root, r: sub} }

// Routes lists every method and pattern reachable from r's root mux,
// sorted by pattern then method. Routers not built by AdaptChi yield nil.
func Routes(r Router) []Route {
	c, ok := r.(chiRouter)
	if !ok {
		return nil
	}
	var out []Route
	_ = chi.Walk(c.root, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		pattern = strings.ReplaceAll(pattern, "/*/", "/")
		if len(pattern) > 1 {
			pattern = strings.TrimSuffix(pattern, "/")
		}
		out = append(out, Route{Method: method, Pattern: pattern})
		return nil
	})
	slices.SortFunc(out, func(a, b Route) int {
		if n := strings.Compare(a.Pattern, b.Pattern); n != 0 {
			return n
		}
		return strings.Compare(a.Method, b.Method)
	})
	return slices.Compact(out)
}
