package modkit

import (
	"testing"

	"bazi/internal/modkit/httpkit"
)

func TestOptionsApplyInOrder(t *testing.T) {
	var calls []string
	b := Build(
		WithName("chart"),
		WithPrefix("/chart"),
		WithPrefix("/api/v1/chart"),
		WithSubrouter(func(r httpkit.Router) httpkit.Router { calls = append(calls, "sub"); return r }),
		WithRegister(func(httpkit.Router) { calls = append(calls, "reg") }),
	)
	if b.Name != "chart" || b.Prefix != "/api/v1/chart" {
		t.Fatalf("name=%q prefix=%q", b.Name, b.Prefix)
	}
	b.Register(b.Subrouter(nil))
	if len(calls) != 2 || calls[0] != "sub" || calls[1] != "reg" {
		t.Fatalf("hook calls = %v", calls)
	}
}

func TestWithMiddlewaresAccumulates(t *testing.T) {
	b := Build(WithMiddlewares(nil), WithMiddlewares(nil, nil))
	if len(b.Mw) != 3 {
		t.Fatalf("middlewares = %d, want 3", len(b.Mw))
	}
}
