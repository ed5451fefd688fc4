// Package ledger holds the in-memory transaction store.
//
// The store keeps exactly one current Snapshot. Add, Edit and Delete each
// compute the next snapshot from the current one and replace it wholesale,
// so readers holding an older snapshot never observe a change. Every
// operation reports to the configured Notifier, including edits and
// deletes whose target id does not exist (those leave the state untouched).
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"budget/internal/core"
)

type Store struct {
	mu     sync.Mutex
	state  Snapshot
	ids    IDGenerator
	notify Notifier
	now    func() time.Time
}

type Option func(*Store)

// WithIDGenerator sets the identifier source used by Add.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithNotifier sets the sink that receives one Notification per operation.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notify = n
		}
	}
}

// WithTransactions seeds the initial snapshot. Duplicate ids after the first
// occurrence are dropped.
func WithTransactions(items ...core.Transaction) Option {
	return func(s *Store) {
		seen := make(map[string]struct{}, len(items))
		out := make([]core.Transaction, 0, len(items))
		for _, t := range items {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			out = append(out, t)
		}
		s.state = NewSnapshot(out...)
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		ids:    NewTimeIDGenerator(),
		notify: Discard,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Add stores a new transaction built from f and a freshly generated id.
// The fields are not validated.
func (s *Store) Add(ctx context.Context, f core.Fields) Snapshot {
	s.mu.Lock()
	t := core.Transaction{ID: s.uniqueID(), Fields: f}
	s.state = s.state.Add(t)
	next := s.state
	s.mu.Unlock()

	s.emit(ctx, OpAdd, t.ID, MsgAdded, true, next.Version())
	return next
}

// Edit replaces the transaction whose id matches t.ID. An unknown id leaves
// the state unchanged.
func (s *Store) Edit(ctx context.Context, t core.Transaction) Snapshot {
	s.mu.Lock()
	next, changed := s.state.Replace(t)
	s.state = next
	s.mu.Unlock()

	s.emit(ctx, OpEdit, t.ID, MsgUpdated, changed, next.Version())
	return next
}

// Delete removes the transaction with the given id. An unknown id leaves the
// state unchanged.
func (s *Store) Delete(ctx context.Context, id string) Snapshot {
	s.mu.Lock()
	next, changed := s.state.Remove(id)
	s.state = next
	s.mu.Unlock()

	s.emit(ctx, OpDelete, id, MsgDeleted, changed, next.Version())
	return next
}

// uniqueID must be called with mu held. A monotonic generator finds a free
// id within len+1 attempts; past that a random UUID is used.
func (s *Store) uniqueID() string {
	for i := 0; i <= s.state.Len(); i++ {
		id := s.ids.NewID()
		if !s.state.Contains(id) {
			return id
		}
	}
	id := uuid.NewString()
	slog.Warn("ID generator kept colliding, falling back to uuid", "component", "ledger", "id", id)
	return id
}

func (s *Store) emit(ctx context.Context, op Op, id, msg string, changed bool, version uint64) {
	s.notify.Notify(ctx, Notification{
		Op:            op,
		TransactionID: id,
		Message:       msg,
		Changed:       changed,
		Version:       version,
		At:            s.now(),
	})
}
