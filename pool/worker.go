package pool

import (
	"context"
	"time"

	"github.com/utkarsh5026/poolmap/internal/cpu"
)

// worker is the event loop of one pool worker. It brings itself up, reports
// readiness to the coordinator and then processes items from its queue until
// the queue is closed or the batch context is done. An item taken after the
// context is done is left unprocessed so its slot is marked ErrNotRun.
func (h *poolHandle[T, R]) worker(ctx context.Context, id int) error {
	h.alive.Add(1)
	defer h.alive.Add(-1)
	h.conf.metrics.workerUp()
	defer h.conf.metrics.workerDown()

	release, err := h.setup(ctx, id)
	h.ready <- err
	if err != nil {
		return err
	}
	defer release()

	queue := h.queueOf(id)
	for {
		select {
		case <-ctx.Done():
			return nil
		case item, ok := <-queue:
			if !ok {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			if h.limit != nil {
				if err := h.limit.Wait(ctx); err != nil {
					return nil
				}
			}
			h.reports <- h.execute(ctx, id, item)
		}
	}
}

// setup runs the per-worker startup steps and returns the matching cleanup.
func (h *poolHandle[T, R]) setup(ctx context.Context, id int) (func(), error) {
	release := func() {}

	if h.conf.pinWorkers {
		unpin, err := cpu.Pin(id)
		if err != nil {
			if h.conf.strictPinning {
				unpin()
				return release, &WorkerStartupError{Worker: id, Err: err}
			}
			h.obs.log.Warn().Err(err).Int("worker", id).Msg("cpu pinning failed, running unpinned")
		}
		release = unpin
	}

	if h.conf.workerInit != nil {
		if err := h.conf.workerInit(ctx, id); err != nil {
			release()
			return func() {}, &WorkerStartupError{Worker: id, Err: err}
		}
	}
	return release, nil
}

// execute applies the process function to one item and packages the
// outcome for the coordinator.
func (h *poolHandle[T, R]) execute(ctx context.Context, id int, item workItem[T]) report[R] {
	start := time.Now()
	value, err := callWithRecovery(ctx, h.fn, item.value)
	return report[R]{
		index:    item.index,
		worker:   id,
		value:    value,
		err:      err,
		duration: time.Since(start),
	}
}

func (h *poolHandle[T, R]) queueOf(id int) <-chan workItem[T] {
	if len(h.queues) == 1 {
		return h.queues[0]
	}
	return h.queues[id]
}
