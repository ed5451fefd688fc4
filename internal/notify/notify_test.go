package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/events"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

type recordingPublisher struct {
	mu   sync.Mutex
	evs  []*events.TransactionEvent
	err  error
	gate chan struct{}
}

func (p *recordingPublisher) PublishEvent(_ context.Context, ev *events.TransactionEvent) error {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.evs = append(p.evs, ev)
	return p.err
}

func (p *recordingPublisher) published() []*events.TransactionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*events.TransactionEvent(nil), p.evs...)
}

func added(id string) ledger.Notification {
	return ledger.Notification{Op: ledger.OpAdd, TransactionID: id, Message: ledger.MsgAdded, Changed: true, Version: 1, At: time.Now()}
}

func TestToastSinkCollectsPerRequest(t *testing.T) {
	ctx, toasts := WithToasts(context.Background())

	ToastSink{}.Notify(ctx, added("1"))
	ToastSink{}.Notify(ctx, ledger.Notification{Op: ledger.OpDelete, Message: ledger.MsgDeleted})
	// A context without a collector is ignored.
	ToastSink{}.Notify(context.Background(), added("2"))

	assert.Equal(t, []string{ledger.MsgAdded, ledger.MsgDeleted}, toasts.Messages())
	assert.Equal(t, ledger.MsgDeleted, toasts.Last())
}

func TestToastsLastEmpty(t *testing.T) {
	_, toasts := WithToasts(context.Background())
	assert.Empty(t, toasts.Last())
}

func TestMultiFansOutInOrder(t *testing.T) {
	var order []string
	mk := func(name string) ledger.Notifier {
		return ledger.NotifierFunc(func(context.Context, ledger.Notification) { order = append(order, name) })
	}

	Multi{mk("a"), nil, mk("b")}.Notify(context.Background(), added("1"))

	assert.Equal(t, []string{"a", "b"}, order)
}

func TestLogSinkWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Format: "json", Output: &buf})

	NewLogSink(logger).Notify(context.Background(), added("42"))

	assert.Contains(t, buf.String(), `"transaction_id":"42"`)
	assert.Contains(t, buf.String(), ledger.MsgAdded)
}

func TestBrokerSinkSwallowsErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	NewBrokerSink(applog.ComponentAMQP, pub).Notify(context.Background(), added("1"))

	evs := pub.published()
	require.Len(t, evs, 1)
	assert.Equal(t, "add", evs[0].Op)
	assert.Equal(t, "1", evs[0].TransactionID)
	assert.Contains(t, buf.String(), `"component":"amqp"`)
	assert.Contains(t, buf.String(), `"operation":"publish"`)
}

func TestAsyncDeliversAndFlushes(t *testing.T) {
	pub := &recordingPublisher{}
	async := NewAsync(NewBrokerSink(applog.ComponentKafka, pub), 8)

	for _, id := range []string{"1", "2", "3"} {
		async.Notify(context.Background(), added(id))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, async.Run(ctx))

	assert.Len(t, pub.published(), 3)
	assert.Zero(t, async.Dropped())
}

func TestAsyncDeliversNotificationsAfterRunReturns(t *testing.T) {
	pub := &recordingPublisher{}
	async := NewAsync(NewBrokerSink(applog.ComponentKafka, pub), 8)

	async.Notify(context.Background(), added("1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, async.Run(ctx))

	// A request still draining during shutdown.
	async.Notify(context.Background(), added("2"))

	evs := pub.published()
	require.Len(t, evs, 2)
	assert.Equal(t, "2", evs[1].TransactionID)
	assert.Zero(t, async.Dropped())
}

func TestAsyncDropsWhenFull(t *testing.T) {
	async := NewAsync(ledger.Discard, 1)

	async.Notify(context.Background(), added("1"))
	async.Notify(context.Background(), added("2"))

	assert.Equal(t, int64(1), async.Dropped())
}

func TestAsyncSurvivesCancelledRequestContext(t *testing.T) {
	var got context.Context
	async := NewAsync(ledger.NotifierFunc(func(ctx context.Context, _ ledger.Notification) { got = ctx }), 1)

	reqCtx, cancel := context.WithCancel(context.Background())
	async.Notify(reqCtx, added("1"))
	cancel()

	runCtx, stop := context.WithCancel(context.Background())
	stop()
	require.NoError(t, async.Run(runCtx))

	require.NotNil(t, got)
	assert.NoError(t, got.Err())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"log", Config{Type: LogBackend}, false},
		{"unknown", Config{Type: "smtp"}, true},
		{"amqp missing url", Config{Type: AMQPBackend, AMQPExchange: "x", AMQPQueue: "q"}, true},
		{"amqp ok", Config{Type: AMQPBackend, AMQPURL: "amqp://", AMQPExchange: "x", AMQPQueue: "q"}, false},
		{"kafka missing brokers", Config{Type: KafkaBackend, KafkaTopic: "t"}, true},
		{"kafka ok", Config{Type: KafkaBackend, KafkaBrokers: []string{"b:9092"}, KafkaTopic: "t"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigValidateListsBackends(t *testing.T) {
	err := Config{Type: "smtp"}.Validate()
	require.Error(t, err)
	for _, bt := range BackendTypes() {
		assert.Contains(t, err.Error(), bt.String())
	}
}

func TestFactoryLogBackend(t *testing.T) {
	res, err := NewFactory(nil).Build(context.Background(), Config{Type: LogBackend})
	require.NoError(t, err)

	assert.NotNil(t, res.Notifier)
	assert.Nil(t, res.Run)
	assert.Nil(t, res.Cleanup)

	ctx, toasts := WithToasts(context.Background())
	res.Notifier.Notify(ctx, added("1"))
	assert.Equal(t, []string{ledger.MsgAdded}, toasts.Messages())
}

func TestFactoryKafkaBackend(t *testing.T) {
	res, err := NewFactory(nil).Build(context.Background(), Config{
		Type:         KafkaBackend,
		KafkaBrokers: []string{"localhost:9092"},
		KafkaTopic:   "transaction_events",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Async)
	assert.NotNil(t, res.Run)
	assert.NoError(t, res.Cleanup())
}

func TestFactoryRejectsInvalidConfig(t *testing.T) {
	_, err := NewFactory(nil).Build(context.Background(), Config{Type: AMQPBackend})
	assert.Error(t, err)
}
