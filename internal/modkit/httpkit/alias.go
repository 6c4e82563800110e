// Package httpkit is the handler surface API modules build on. It re-exports
// the platform transport so modules never import internal/platform/net/http.
package httpkit

import (
	"net/http"

	phttp "bazi/internal/platform/net/http"
	"bazi/internal/platform/net/http/bind"
)

type (
	// Envelope is the JSON body every endpoint answers with
	Envelope = phttp.Envelope

	// Response lets a handler set status or headers
	Response = phttp.Response

	// Handler is a plain net/http handler func
	Handler = phttp.Handler

	// Router is the chi-backed routing seam
	Router = phttp.Router

	// RouteInfo is one mounted method and pattern
	RouteInfo = phttp.Route
)

// Routes lists every route mounted on r's root
func Routes(r Router) []RouteInfo { return phttp.Routes(r) }

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// respond turns a handler result into a Response; a returned Response passes through
func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// JSON decodes and validates the body into T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(fn(r, in))
	})
}

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return respond(fn(r)) })
}
