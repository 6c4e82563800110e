package http

import "net/http"

// Handler is the plain function form every route is registered with
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount against. The chart API only reads and
// computes, so there are no write verbs beyond POST.
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Method(method, path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}

// Route is one registered method and pattern
type Route struct {
	Method  string `json:"method"  example:"POST"`
	Pattern string `json:"pattern" example:"/api/v1/chart/bazi"`
}
