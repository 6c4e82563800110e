// Package http is the transport layer: the chi-backed Router, the Server and
// return-style handlers that write the shared JSON envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "bazi/internal/platform/net"
)

// Envelope is the body of every API response
type Envelope = pnet.Wire

// Response is what a return-style handler hands back. Err wins over Body
// and decides the status; Status defaults to 200.
type Response struct {
	Status int
	Body   any
	Err    error
	Header stdhttp.Header
}

// OK wraps data in a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error answers with err's mapped status and envelope
func Error(err error) Response { return Response{Err: err} }

// WithHeader returns a copy of resp carrying an extra header
func (resp Response) WithHeader(key, value string) Response {
	h := resp.Header.Clone()
	if h == nil {
		h = stdhttp.Header{}
	}
	h.Set(key, value)
	resp.Header = h
	return resp
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())
	if resp.Err != nil {
		status, env := pnet.Error(resp.Err, reqID)
		writeJSON(w, status, env)
		return
	}
	status, env := pnet.OK(resp.Body, reqID)
	if resp.Status != 0 && resp.Status != status {
		status = resp.Status
		env.StatusCode, env.Status = status, stdhttp.StatusText(status)
	}
	writeJSON(w, status, env)
}

func writeJSON(w stdhttp.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
