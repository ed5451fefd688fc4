package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"budget/internal/events"
	applog "budget/internal/log"
)

// Source delivers transaction events to a handler until ctx is cancelled.
// *amqp.Client satisfies it.
type Source interface {
	ConsumeEvents(ctx context.Context, handler func(context.Context, *events.TransactionEvent) error) error
}

// OpStats counts the events seen for one operation.
type OpStats struct {
	Changed int `json:"changed"`
	NoOp    int `json:"noop"`
}

// EventWorker consumes transaction events and keeps per-operation
// counters.
type EventWorker struct {
	logger        *applog.Logger
	statsInterval time.Duration

	mu          sync.Mutex
	stats       map[string]OpStats
	lastVersion uint64
}

func NewEventWorker(logger *applog.Logger, statsInterval time.Duration) *EventWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &EventWorker{
		logger:        logger.WithComponent(applog.ComponentWorker),
		statsInterval: statsInterval,
		stats:         make(map[string]OpStats),
	}
}

// HandleEvent records ev. Invalid events are rejected with
// events.ErrMalformedEvent so the consumer drops them.
func (w *EventWorker) HandleEvent(ctx context.Context, ev *events.TransactionEvent) error {
	if ev == nil {
		return fmt.Errorf("%w: nil event", events.ErrMalformedEvent)
	}
	if err := ev.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	s := w.stats[ev.Op]
	if ev.Changed {
		s.Changed++
	} else {
		s.NoOp++
	}
	w.stats[ev.Op] = s
	w.lastVersion = max(w.lastVersion, ev.Version)
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Transaction event received",
		applog.FieldOperation, ev.Op,
		applog.FieldTransactionID, ev.TransactionID,
		applog.FieldChanged, ev.Changed,
		applog.FieldVersion, ev.Version,
		"message", ev.Message)
	return nil
}

// Stats returns a copy of the counters and the highest version seen.
func (w *EventWorker) Stats() (map[string]OpStats, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]OpStats, len(w.stats))
	for op, s := range w.stats {
		out[op] = s
	}
	return out, w.lastVersion
}

// Run consumes from src until ctx is cancelled, logging the counters
// every statsInterval. Cancellation is not an error.
func (w *EventWorker) Run(ctx context.Context, src Source) error {
	if w.statsInterval > 0 {
		go w.reportStats(ctx)
	}
	w.logger.InfoContext(ctx, "Event worker started")
	err := src.ConsumeEvents(ctx, w.HandleEvent)
	w.logStats(context.WithoutCancel(ctx))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (w *EventWorker) reportStats(ctx context.Context) {
	ticker := time.NewTicker(w.statsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.logStats(ctx)
		}
	}
}

func (w *EventWorker) logStats(ctx context.Context) {
	stats, version := w.Stats()
	args := []any{applog.FieldVersion, version}
	for op, s := range stats {
		args = append(args, op+"_changed", s.Changed, op+"_noop", s.NoOp)
	}
	w.logger.InfoContext(ctx, "Event worker stats", args...)
}
