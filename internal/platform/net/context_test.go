package net_test

import (
	"context"
	"testing"

	pnet "bazi/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets both ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123", "6f1c")

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.ChartKey(ctx); got != "6f1c" {
			t.Fatalf("ChartKey got %q want %q", got, "6f1c")
		}
	})

	t.Run("sets only request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "r-only", "")

		if got := pnet.RequestID(ctx); got != "r-only" {
			t.Fatalf("RequestID got %q want %q", got, "r-only")
		}
		if got := pnet.ChartKey(ctx); got != "" {
			t.Fatalf("ChartKey got %q want empty", got)
		}
	})

	t.Run("no ids returns same ctx and empty getters", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "")

		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when both ids empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.ChartKey(ctx); got != "" {
			t.Fatalf("ChartKey got %q want empty", got)
		}
	})
}

func TestWithLanguage(t *testing.T) {
	base := context.Background()
	if ctx := pnet.WithLanguage(base, ""); ctx != base || pnet.Language(ctx) != "" {
		t.Fatalf("empty header should leave ctx untouched")
	}
	ctx := pnet.WithLanguage(base, "zh-TW,zh;q=0.9")
	if got := pnet.Language(ctx); got != "zh-TW,zh;q=0.9" {
		t.Fatalf("Language got %q", got)
	}
}
