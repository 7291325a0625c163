package pool

import (
	"time"

	"github.com/rs/zerolog"
)

// CompletionEvent describes one finished work item. Events are delivered
// on the coordinating goroutine, one at a time, in arrival order (which is
// not input order).
type CompletionEvent struct {
	Index    int
	Worker   int
	Duration time.Duration
	Err      error
}

// observer fans lifecycle and completion events out to the configured
// hooks, the logger and the metrics.
type observer struct {
	log        zerolog.Logger
	metrics    *Metrics
	onComplete func(CompletionEvent)
	onPhase    func(Phase)
}

func (o *observer) phase(p Phase) {
	o.log.Debug().Str("phase", p.String()).Msg("batch phase")
	if o.onPhase != nil {
		o.onPhase(p)
	}
}

func (o *observer) completed(ev CompletionEvent) {
	e := o.log.Debug()
	if ev.Err != nil {
		e = o.log.Warn().Err(ev.Err)
	}
	e.Int("index", ev.Index).
		Int("worker", ev.Worker).
		Dur("duration", ev.Duration).
		Msg("item completed")

	o.metrics.observeItem(ev)

	if o.onComplete != nil {
		o.onComplete(ev)
	}
}
