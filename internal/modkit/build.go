package modkit

import (
	"net/http"
	"time"

	"bazi/internal/modkit/httpkit"
	"bazi/internal/platform/net/middleware"
	str "bazi/internal/platform/strings"
)

// Built is the resolved module configuration
type Built struct {
	Name    string
	Prefix  string
	Mw      []func(http.Handler) http.Handler // includes the timeout middleware when Timeout > 0
	Timeout time.Duration

	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	mw := append([]func(http.Handler) http.Handler(nil), c.mw...)
	if c.timeout > 0 {
		mw = append(mw, middleware.Timeout(c.timeout))
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        mw,
		Timeout:   c.timeout,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount opens a route group at Prefix, applies Mw and Subrouter, then
// registers own followed by any caller-supplied Register
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		rr = b.Subrouter(rr)
		if own != nil {
			own(rr)
		}
		b.Register(rr)
	})
}
