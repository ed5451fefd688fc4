package worker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"budget/internal/events"
	applog "budget/internal/log"
)

type fakeSource struct {
	events []*events.TransactionEvent
	errs   []error
	err    error
}

func (f *fakeSource) ConsumeEvents(ctx context.Context, handler func(context.Context, *events.TransactionEvent) error) error {
	for _, ev := range f.events {
		f.errs = append(f.errs, handler(ctx, ev))
	}
	if f.err != nil {
		return f.err
	}
	return context.Canceled
}

func TestEventWorkerCountsByOperation(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWorker(applog.New(applog.Config{Output: &buf}), 0)

	src := &fakeSource{events: []*events.TransactionEvent{
		{Op: "add", TransactionID: "1", Changed: true, Version: 1},
		{Op: "edit", TransactionID: "1", Changed: true, Version: 2},
		{Op: "edit", TransactionID: "missing", Changed: false, Version: 2},
		{Op: "delete", TransactionID: "1", Changed: true, Version: 3},
	}}
	if err := w.Run(context.Background(), src); err != nil {
		t.Fatalf("Run: %v", err)
	}

	stats, version := w.Stats()
	if version != 3 {
		t.Errorf("version = %d, want 3", version)
	}
	if stats["edit"] != (OpStats{Changed: 1, NoOp: 1}) {
		t.Errorf("edit stats = %+v", stats["edit"])
	}
	if stats["add"].Changed != 1 || stats["delete"].Changed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if !strings.Contains(buf.String(), "Event worker stats") {
		t.Error("final stats should be logged")
	}
}

func TestEventWorkerRejectsIncompleteEvents(t *testing.T) {
	w := NewEventWorker(nil, 0)
	ctx := context.Background()

	for _, ev := range []*events.TransactionEvent{
		nil,
		{TransactionID: "1"},
		{Op: "add"},
	} {
		if err := w.HandleEvent(ctx, ev); !errors.Is(err, events.ErrMalformedEvent) {
			t.Errorf("HandleEvent(%+v) error = %v, want ErrMalformedEvent", ev, err)
		}
	}
	if stats, _ := w.Stats(); len(stats) != 0 {
		t.Errorf("rejected events must not be counted: %+v", stats)
	}
}

func TestEventWorkerReturnsSourceError(t *testing.T) {
	boom := errors.New("access refused")
	w := NewEventWorker(nil, 0)
	if err := w.Run(context.Background(), &fakeSource{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want %v", err, boom)
	}
}
