package modkit

import (
	"testing"

	"bazi/internal/modkit/module"
	phttp "bazi/internal/platform/net/http"
)

type stub struct {
	deps    Deps
	built   Built
	mounted bool
}

func (s *stub) MountRoutes(phttp.Router) { s.mounted = true }
func (s *stub) Ports() any               { return s.deps.HasEngine() }
func (s *stub) Name() string             { return s.built.Name }
func (s *stub) Prefix() string           { return s.built.Prefix }

func TestBuilderProducesRegistrableModule(t *testing.T) {
	var b Builder = func(d Deps, opts ...Option) Module {
		return &stub{deps: d, built: Build(append([]Option{WithName("chart")}, opts...)...)}
	}

	m := b(Deps{}, WithName("terms"))
	var _ module.Module = m

	if m.Name() != "terms" {
		t.Fatalf("later option should win, got %q", m.Name())
	}
	if m.Ports() != false {
		t.Fatalf("stub ports should report missing engine")
	}
	m.MountRoutes(nil)
	if !m.(*stub).mounted {
		t.Fatalf("MountRoutes not called")
	}
}
