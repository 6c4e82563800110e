// Command bazi computes four pillar charts from the command line
//
//	bazi chart 2024-02-10T14:30:00 --tz Europe/Berlin --lon 13.405
//	bazi batch charts.yaml --concurrency 8 --json
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"bazi/internal/core/chart"
	"bazi/internal/core/ephemeris"
	"bazi/internal/core/ephemeris/vsop87"
	"bazi/internal/core/version"
	"bazi/internal/platform/config"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree writing results to out
func newRootCmd(out io.Writer) *cobra.Command {
	cfg := config.New().Prefix("BAZI_")
	root := &cobra.Command{
		Use:           "bazi",
		Short:         "Four pillar (BaZi) charts from a local birth time",
		Version:       version.Info().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(newChartCmd(cfg), newBatchCmd(cfg))
	return root
}

// newEngine wires the built-in ephemeris backends with BAZI_EPHEMERIS and BAZI_NUDGE applied
func newEngine(cfg config.Conf) *chart.Engine {
	reg := ephemeris.NewRegistry()
	vsop87.Register(reg)
	return chart.New(reg, chart.FromConfig(cfg, reg)...)
}
