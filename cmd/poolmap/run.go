package main

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/utkarsh5026/poolmap/internal/logger"
	"github.com/utkarsh5026/poolmap/internal/report"
	"github.com/utkarsh5026/poolmap/pool"
)

// runBatch is the entry point that actually spawns a pool. Nothing in this
// program creates workers outside of it.
func runBatch[T, R any](
	ctx context.Context,
	a *app,
	name string,
	fn pool.ProcessFunc[T, R],
	inputs []T,
	format func(R) string,
) error {
	log, err := logger.New(a.errOut, a.cfg.LogFormat, a.cfg.LogLevel)
	if err != nil {
		return err
	}

	opts := append(a.cfg.Options(), pool.WithLogger(log))
	if a.cfg.Progress {
		bar := report.NewProgressBar(a.errOut, len(inputs), name)
		defer func() { _ = bar.Finish() }()
		opts = append(opts, pool.WithCompletionHook(report.ProgressHook(bar)))
	}

	log.Info().
		Str("workload", name).
		Int("inputs", len(inputs)).
		Int("pool_size", a.cfg.PoolSize).
		Str("dispatch", a.cfg.Dispatch).
		Msg("starting batch")

	batch, runErr := pool.NewPooledMapper[T, R](opts...).Run(ctx, fn, inputs)
	if batch == nil {
		return runErr
	}

	rows := lo.Map(batch.Results, func(r pool.Result[R], i int) report.Row {
		row := report.Row{
			Index:    r.Index,
			Input:    fmt.Sprint(inputs[i]),
			Worker:   r.Worker,
			Duration: r.Duration,
			Err:      r.Err,
		}
		if r.OK() {
			row.Output = format(r.Value)
		}
		return row
	})

	if err := report.RenderTable(a.out, rows); err != nil {
		return err
	}

	failed := lo.CountBy(batch.Results, func(r pool.Result[R]) bool { return !r.OK() })
	report.RenderSummary(a.out, report.Summary{
		Workload: name,
		Items:    len(batch.Results),
		Failed:   failed,
		PoolSize: batch.PoolSize,
		Dispatch: a.cfg.Dispatch,
		Elapsed:  batch.Elapsed,
	})

	if batch.TeardownErr != nil {
		log.Warn().Err(batch.TeardownErr).Msg("workers still running at exit")
	}

	switch {
	case runErr != nil:
		return runErr
	case failed > 0:
		return errItemsFailed
	default:
		return nil
	}
}
