package main

import (
	"fmt"

	"bazi/internal/core/sexagenary"
	"bazi/internal/platform/config"
	chartdomain "bazi/internal/services/api/chart/domain"
	chartsvc "bazi/internal/services/api/chart/service"
	batchsvc "bazi/internal/services/batch/service"

	"github.com/spf13/cobra"
)

// batchLine is one entry of the --json output
type batchLine struct {
	Index int                        `json:"index"`
	ID    string                     `json:"id,omitempty"`
	Chart *chartdomain.ChartResponse `json:"chart,omitempty"`
	Error string                     `json:"error,omitempty"`
}

func newBatchCmd(cfg config.Conf) *cobra.Command {
	var (
		concurrency int
		failFast    bool
		asJSON      bool
		lang        string
	)
	cmd := &cobra.Command{
		Use:   "batch FILE.yaml",
		Short: "Compute every chart listed in a yaml job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := batchsvc.LoadFile(args[0])
			if err != nil {
				return err
			}
			opt := batchsvc.FromConfig(cfg)
			if cmd.Flags().Changed("concurrency") {
				opt.Concurrency = concurrency
			}
			if cmd.Flags().Changed("fail-fast") {
				opt.FailFast = failFast
			}

			results, sum, runErr := batchsvc.New(newEngine(cfg), opt).Run(cmd.Context(), job)
			script := sexagenary.ScriptFromAcceptLanguage(lang)
			names := sexagenary.NamesFor(script)
			out := cmd.OutOrStdout()

			if asJSON {
				lines := make([]batchLine, len(results))
				for i, r := range results {
					lines[i] = batchLine{Index: r.Index, ID: r.ID}
					if r.Err != nil {
						lines[i].Error = r.Err.Error()
						continue
					}
					c := chartsvc.Render(r.Chart, script)
					lines[i].Chart = &c
				}
				if err := writeJSON(out, lines); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					label := r.ID
					if label == "" {
						label = fmt.Sprintf("#%d", r.Index+1)
					}
					if r.Err != nil {
						fmt.Fprintf(out, "%s\terror: %v\n", label, r.Err)
						continue
					}
					p := r.Chart.Pillars
					fmt.Fprintf(out, "%s\t%s %s %s %s\n", label,
						names.Pillar(p.Year), names.Pillar(p.Month), names.Pillar(p.Day), names.Pillar(p.Hour))
				}
				fmt.Fprintf(out, "%d charts, %d ok, %d failed in %s\n", sum.Total, sum.OK, sum.Failed, sum.Took.Round(1e6))
			}

			if runErr != nil {
				return runErr
			}
			if sum.Failed > 0 {
				return fmt.Errorf("%d of %d charts failed", sum.Failed, sum.Total)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&concurrency, "concurrency", 0, "charts computed at once (default BAZI_BATCH_CONCURRENCY or GOMAXPROCS)")
	fl.BoolVar(&failFast, "fail-fast", false, "stop after the first failed chart")
	fl.BoolVar(&asJSON, "json", false, "print results as a JSON array")
	fl.StringVar(&lang, "lang", "", "naming language as an Accept-Language value, e.g. zh-Hant")
	return cmd
}
