package notify

import (
	"context"
	"log/slog"
	"sync"

	"budget/internal/events"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

// LogSink writes every notification to the structured log.
type LogSink struct {
	logger *applog.StructuredLogger
}

func NewLogSink(logger *applog.Logger) *LogSink {
	return &LogSink{logger: applog.NewStructuredLogger(logger.WithComponent(applog.ComponentNotify))}
}

func (s *LogSink) Notify(ctx context.Context, n ledger.Notification) {
	s.logger.LogTransactionChange(ctx, string(n.Op), n.TransactionID, n.Message, n.Changed, n.Version)
}

// Multi fans a notification out to every sink in order.
type Multi []ledger.Notifier

func (m Multi) Notify(ctx context.Context, n ledger.Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(ctx, n)
		}
	}
}

// BrokerSink publishes notifications through a Publisher. Failures are
// logged under component; the store never learns about them.
type BrokerSink struct {
	component string
	pub       Publisher
}

func NewBrokerSink(component string, pub Publisher) *BrokerSink {
	return &BrokerSink{component: component, pub: pub}
}

func (s *BrokerSink) Notify(ctx context.Context, n ledger.Notification) {
	ev := events.FromNotification(n)
	if err := s.pub.PublishEvent(ctx, ev); err != nil {
		slog.WarnContext(ctx, "Failed to publish transaction event",
			applog.FieldComponent, s.component,
			applog.FieldOperation, applog.OpPublish,
			"op", ev.Op,
			applog.FieldTransactionID, ev.TransactionID,
			applog.FieldError, err)
	}
}

type toastsKey struct{}

// Toasts collects the messages of operations performed while handling one
// request, so the response can show them to the user.
type Toasts struct {
	mu   sync.Mutex
	msgs []string
}

// WithToasts returns a context that collects notification messages.
func WithToasts(ctx context.Context) (context.Context, *Toasts) {
	t := &Toasts{}
	return context.WithValue(ctx, toastsKey{}, t), t
}

// Messages returns the collected messages in emission order.
func (t *Toasts) Messages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.msgs...)
}

// Last returns the most recent message, or "" when none was collected.
func (t *Toasts) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.msgs) == 0 {
		return ""
	}
	return t.msgs[len(t.msgs)-1]
}

// ToastSink records messages into the Toasts carried by the context, if any.
type ToastSink struct{}

func (ToastSink) Notify(ctx context.Context, n ledger.Notification) {
	t, ok := ctx.Value(toastsKey{}).(*Toasts)
	if !ok {
		return
	}
	t.mu.Lock()
	t.msgs = append(t.msgs, n.Message)
	t.mu.Unlock()
}
