package system

// packet wraps a queued item with an optional completion signal. done is nil
// for fire-and-forget items; when set, the consumer closes it exactly once
// after the handler finishes.
type packet[T any] struct {
	item T
	done chan struct{}
}

func (p packet[T]) markHandled() {
	if p.done != nil {
		close(p.done)
	}
}

// queue is an unbounded FIFO: Push never blocks on a slow consumer. A pump
// goroutine buffers items between the in and out channels.
type queue[T any] struct {
	in  chan T
	out chan T
}

func newQueue[T any]() *queue[T] {
	q := &queue[T]{
		in:  make(chan T),
		out: make(chan T),
	}

	go q.pump()

	return q
}

func (q *queue[T]) pump() {
	var buf []T

	for {
		var (
			out  chan T
			head T
		)
		if len(buf) > 0 {
			out = q.out
			head = buf[0]
		}

		select {
		case item, ok := <-q.in:
			if !ok {
				for _, item := range buf {
					q.out <- item
				}
				close(q.out)
				return
			}
			buf = append(buf, item)

		case out <- head:
			buf = buf[1:]
		}
	}
}

func (q *queue[T]) push(item T) {
	q.in <- item
}

func (q *queue[T]) close() {
	close(q.in)
}
