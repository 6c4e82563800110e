// Package api provides the HTTP API for the application
package api

import (
	"bazi/internal/core/chart"
	"bazi/internal/platform/config"
	"bazi/internal/platform/logger"
	phttp "bazi/internal/platform/net/http"

	"bazi/internal/modkit"
	"bazi/internal/modkit/httpkit"
	"bazi/internal/modkit/module"
	"bazi/internal/modkit/swaggerkit"

	chartmod "bazi/internal/services/api/chart/module"
	metamod "bazi/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Engine         *chart.Engine
	Logger         *logger.Logger
	Docs           swaggerkit.Options
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:    opt.Logger,
		Cfg:    opt.Config,
		Engine: opt.Engine,
	}

	log := deps.Logger("api")
	mods := []module.Module{
		metamod.New(deps),
		chartmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		// Swagger + profiler
		docs := opt.Docs
		docs.BasePath = httpkit.APIPrefix(httpkit.APIVersion)
		swaggerkit.Mount(r, docs)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Str("prefix", httpkit.APIPrefix(httpkit.APIVersion)+m.Prefix()).Msg("module mounted")
		}
	})
}
