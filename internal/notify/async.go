package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"budget/internal/ledger"
	applog "budget/internal/log"
)

type queued struct {
	ctx context.Context
	n   ledger.Notification
}

// Async hands notifications to a slower sink without blocking the caller.
// When the buffer is full the notification is dropped and counted. Once
// Run has returned, notifications are delivered inline.
type Async struct {
	sink    ledger.Notifier
	queue   chan queued
	dropped atomic.Int64

	mu      sync.RWMutex
	stopped bool
}

func NewAsync(sink ledger.Notifier, buffer int) *Async {
	if buffer <= 0 {
		buffer = 64
	}
	return &Async{sink: sink, queue: make(chan queued, buffer)}
}

func (a *Async) Notify(ctx context.Context, n ledger.Notification) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.stopped {
		a.sink.Notify(context.WithoutCancel(ctx), n)
		return
	}
	select {
	case a.queue <- queued{ctx: context.WithoutCancel(ctx), n: n}:
	default:
		a.dropped.Add(1)
		slog.WarnContext(ctx, "Notification queue full, dropping event",
			"component", applog.ComponentNotify,
			"op", n.Op,
			"transaction_id", n.TransactionID)
	}
}

// Dropped reports how many notifications were discarded on a full buffer.
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

// Run delivers queued notifications until ctx is cancelled, then flushes
// whatever is still buffered. Cancel ctx only after the producers have
// stopped; later notifications bypass the queue.
func (a *Async) Run(ctx context.Context) error {
	for {
		select {
		case q := <-a.queue:
			a.sink.Notify(q.ctx, q.n)
		case <-ctx.Done():
			a.mu.Lock()
			a.stopped = true
			a.mu.Unlock()
			a.flush()
			return nil
		}
	}
}

func (a *Async) flush() {
	for {
		select {
		case q := <-a.queue:
			a.sink.Notify(q.ctx, q.n)
		default:
			return
		}
	}
}
