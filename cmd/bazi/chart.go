package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"bazi/internal/core/chart"
	"bazi/internal/core/localtime"
	"bazi/internal/core/sexagenary"
	"bazi/internal/platform/config"
	chartsvc "bazi/internal/services/api/chart/service"

	"github.com/spf13/cobra"
)

type chartFlags struct {
	tz          string
	lon, lat    float64
	standard    string
	boundary    string
	accuracy    float64
	strict      bool
	noStrict    bool
	fold        int
	anchorDate  string
	anchorIndex int
	backend     string
	lang        string
	json        bool
}

func newChartCmd(cfg config.Conf) *cobra.Command {
	f := &chartFlags{}
	cmd := &cobra.Command{
		Use:   "chart DATE",
		Short: "Compute the chart for a local ISO 8601 date and time",
		Example: "  bazi chart 2024-02-10T14:30:00\n" +
			"  bazi chart 2024-02-04T23:30:00 --tz Europe/Madrid --lon -3.7038 --lat 40.4168 --standard LMT --boundary zi",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.input(args[0], cfg)
			if err != nil {
				return err
			}
			res, err := newEngine(cfg).Compute(cmd.Context(), in)
			if err != nil {
				return err
			}
			script := sexagenary.ScriptFromAcceptLanguage(f.lang)
			if f.json {
				return writeJSON(cmd.OutOrStdout(), chartsvc.Render(res, script))
			}
			writeChart(cmd.OutOrStdout(), res, sexagenary.NamesFor(script))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.tz, "tz", "Europe/Berlin", "IANA time zone of the birth place")
	fl.Float64Var(&f.lon, "lon", 13.405, "longitude in degrees, east positive")
	fl.Float64Var(&f.lat, "lat", 52.52, "latitude in degrees, north positive")
	fl.StringVar(&f.standard, "standard", string(localtime.Civil), "time standard: CIVIL or LMT")
	fl.StringVar(&f.boundary, "boundary", string(localtime.Midnight), "day boundary: midnight or zi")
	fl.Float64Var(&f.accuracy, "accuracy", 0, "crossing accuracy in seconds (default BAZI_ACCURACY_SECONDS or 1)")
	fl.BoolVar(&f.strict, "strict", true, "reject nonexistent local times")
	fl.BoolVar(&f.noStrict, "no-strict", false, "shift nonexistent local times instead of rejecting them")
	fl.IntVar(&f.fold, "fold", 0, "occurrence of a repeated local time: 0 earlier, 1 later")
	fl.StringVar(&f.anchorDate, "anchor-date", "", "recalibrate the day cycle from this date (YYYY-MM-DD)")
	fl.IntVar(&f.anchorIndex, "anchor-index", 0, "60-cycle index of --anchor-date")
	fl.StringVar(&f.backend, "backend", "", "ephemeris backend (default BAZI_EPHEMERIS or vsop87)")
	fl.StringVar(&f.lang, "lang", "", "naming language as an Accept-Language value, e.g. zh-Hans")
	fl.BoolVar(&f.json, "json", false, "print the chart as JSON")
	cmd.MarkFlagsMutuallyExclusive("strict", "no-strict")
	return cmd
}

func (f *chartFlags) input(date string, cfg config.Conf) (chart.Input, error) {
	in := chart.Input{
		BirthLocal:  date,
		Timezone:    f.tz,
		Longitude:   f.lon,
		Latitude:    f.lat,
		Standard:    localtime.Standard(f.standard),
		DayBoundary: localtime.DayBoundary(f.boundary),
		Strict:      f.strict && !f.noStrict,
		Fold:        localtime.Fold(f.fold),
		Accuracy:    cfg.MaySeconds("ACCURACY_SECONDS", chart.DefaultAccuracy),
		Backend:     f.backend,
	}
	if f.accuracy != 0 {
		in.Accuracy = time.Duration(f.accuracy * float64(time.Second))
	}
	if f.anchorDate != "" {
		a, err := sexagenary.ParseAnchor(f.anchorDate, f.anchorIndex)
		if err != nil {
			return chart.Input{}, err
		}
		in.Anchor = &a
	}
	return in, nil
}

func writeChart(w io.Writer, res *chart.Result, names sexagenary.Names) {
	in := res.Input
	p := res.Pillars
	fmt.Fprintf(w, "Input: %s %s (%g, %g)\n", in.BirthLocal, in.Timezone, in.Longitude, in.Latitude)
	fmt.Fprintf(w, "Pillars: %s\n", strings.Join([]string{
		names.Pillar(p.Year), names.Pillar(p.Month), names.Pillar(p.Day), names.Pillar(p.Hour),
	}, " "))
	fmt.Fprintf(w, "Chart time: %s (%s)\n", res.ChartLocal, in.Standard)
	fmt.Fprintf(w, "LiChun local: %s\n", res.LiChun)
	if n := len(res.SolarTerms); n > 0 {
		fmt.Fprintf(w, "Solar terms: %d\n", n)
	}
	if d := res.Diagnostics.SolarTermsError; d != "" {
		fmt.Fprintf(w, "Solar terms unavailable: %s\n", d)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
