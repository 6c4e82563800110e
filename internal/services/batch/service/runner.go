// Package service runs batch chart jobs over a bounded worker group
package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"runtime"
	"time"

	"bazi/internal/core/chart"
	"bazi/internal/platform/config"
	perr "bazi/internal/platform/errors"
	"bazi/internal/platform/logger"
	"bazi/internal/platform/net/http/bind"
	"bazi/internal/services/batch/domain"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Options configures a Runner
type Options struct {
	Concurrency int  // charts computed at once; <= 0 uses GOMAXPROCS
	FailFast    bool // stop scheduling after the first failed entry
}

// FromConfig reads runner options from cfg (BATCH_CONCURRENCY, BATCH_FAIL_FAST)
func FromConfig(cfg config.Conf) Options {
	bc := cfg.Prefix("BATCH_")
	return Options{
		Concurrency: bc.MayInt("CONCURRENCY", runtime.GOMAXPROCS(0)),
		FailFast:    bc.MayBool("FAIL_FAST", false),
	}
}

// Runner computes every entry of a job with one shared engine
type Runner struct {
	engine *chart.Engine
	opt    Options
}

// New constructs a runner
func New(engine *chart.Engine, opt Options) *Runner {
	if engine == nil {
		panic("batch.Runner requires a non nil engine")
	}
	if opt.Concurrency <= 0 {
		opt.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &Runner{engine: engine, opt: opt}
}

// LoadFile reads a job from a yaml file
func LoadFile(path string) (domain.Job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Job{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read batch file %q", path), "file")
	}
	return Load(bytes.NewReader(b))
}

// Load decodes a job; unknown keys are rejected so typos do not silently fall back to defaults
func Load(r io.Reader) (domain.Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var job domain.Job
	if err := dec.Decode(&job); err != nil {
		if err == io.EOF {
			return domain.Job{}, perr.InvalidArgf("batch file is empty")
		}
		return domain.Job{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "decode batch file")
	}
	if len(job.Charts) == 0 {
		return domain.Job{}, perr.WithField(perr.InvalidArgf("batch file has no charts"), "charts")
	}
	return job, nil
}

// Run computes every chart of job and returns the results in input order
// Entry failures are recorded on their result; the returned error is set only when
// ctx is cancelled or FailFast stopped the run
func (r *Runner) Run(ctx context.Context, job domain.Job) ([]domain.Result, domain.Summary, error) {
	started := time.Now()
	log := logger.C(ctx).With().Str("component", "batch").Logger()

	results := make([]domain.Result, len(job.Charts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opt.Concurrency)

	for i, e := range job.Charts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := r.one(gctx, i, e.Merge(job.Defaults))
			results[i] = res
			if res.Err != nil {
				log.Debug().Err(res.Err).Int("index", i).Str("id", res.ID).Msg("batch entry failed")
				if r.opt.FailFast {
					return res.Err
				}
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	sum := domain.Summary{Total: len(job.Charts), Took: time.Since(started)}
	for i := range results {
		switch {
		case results[i].Chart != nil:
			sum.OK++
		case results[i].Err != nil:
			sum.Failed++
		default:
			// never scheduled
			results[i] = domain.Result{Index: i, ID: job.Charts[i].ID, Err: perr.Unavailablef("not computed")}
			sum.Failed++
		}
	}
	log.Info().Int("total", sum.Total).Int("ok", sum.OK).Int("failed", sum.Failed).Dur("took", sum.Took).Msg("batch done")
	return results, sum, err
}

func (r *Runner) one(ctx context.Context, i int, e domain.Entry) domain.Result {
	out := domain.Result{Index: i, ID: e.ID}
	if err := bind.Struct(e); err != nil {
		out.Err = perr.WithOpIfEmpty(err, string(chart.StageParseInput))
		return out
	}
	in, err := e.Input()
	if err != nil {
		out.Err = err
		return out
	}
	out.Chart, out.Err = r.engine.Compute(ctx, in)
	return out
}
