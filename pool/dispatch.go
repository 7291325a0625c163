package pool

import "context"

// dispatch tags every input with its index and hands it to a queue. With a
// single shared queue the first idle worker takes the item; with per-worker
// queues item i goes to worker i mod n. The dispatcher owns the queues and
// closes them on every exit path, which is what lets workers drain and stop.
func (h *poolHandle[T, R]) dispatch(ctx context.Context) error {
	defer func() {
		for _, q := range h.queues {
			close(q)
		}
	}()

	select {
	case <-h.release:
	case <-ctx.Done():
		return nil
	}

	for i, v := range h.inputs {
		select {
		case h.queueFor(i) <- workItem[T]{index: i, value: v}:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

func (h *poolHandle[T, R]) queueFor(index int) chan<- workItem[T] {
	return h.queues[index%len(h.queues)]
}
