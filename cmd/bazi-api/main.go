// Command bazi-api serves charts and solar terms over HTTP under /api/v1
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"bazi/internal/core/chart"
	"bazi/internal/core/ephemeris"
	"bazi/internal/core/ephemeris/vsop87"
	"bazi/internal/modkit/swaggerkit"
	"bazi/internal/platform/config"
	"bazi/internal/platform/logger"
	phttp "bazi/internal/platform/net/http"

	"bazi/internal/services/api"
)

func main() {
	// engine config under BAZI_*, HTTP under BAZI_API_*
	root := config.New().Prefix("BAZI_")
	apiCfg := root.Prefix("API_")

	// bring up logging early
	l := logger.Get()

	reg := ephemeris.NewRegistry()
	vsop87.Register(reg)
	engine := chart.New(reg, chart.FromConfig(root, reg)...)
	l.Info().
		Str("default_backend", engine.DefaultBackend()).
		Strs("backends", engine.Backends()).
		Msg("chart engine ready")

	// http server (reads BAZI_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Engine:         engine,
			Logger:         l,
			Docs:           swaggerkit.FromConfig(apiCfg),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("http server drained")
}
