// Package module mounts the meta endpoints
package module

import (
	"time"

	"bazi/internal/core/version"
	modkit "bazi/internal/modkit"
	"bazi/internal/modkit/httpkit"
	str "bazi/internal/platform/strings"

	metahttp "bazi/internal/services/api/meta/http"
)

// Module serves health, readiness and build info; it exports no ports
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New builds the meta module; an engine in deps enables /ready and /engine
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	md := metahttp.Deps{ServiceName: version.Info().Service, StartedAt: time.Now()}
	if deps.HasEngine() {
		md.Engine = deps.Engine
	}
	return &Module{
		b: modkit.Build(append([]modkit.Option{
			modkit.WithName("meta"),
			modkit.WithPrefix("/meta"),
		}, opts...)...),
		deps: md,
	}
}

// MountRoutes registers the meta endpoints under Prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name is the registry name
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix is the mount point under /api/v1
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports is always nil
func (m *Module) Ports() any { return nil }
