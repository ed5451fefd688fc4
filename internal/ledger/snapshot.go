package ledger

import (
	"sort"

	"budget/internal/core"
)

// Snapshot is an immutable view of the transaction collection at one point
// in time. Every transition returns a new Snapshot and leaves the receiver
// untouched; accessors hand out copies of the backing slice.
type Snapshot struct {
	version uint64
	items   []core.Transaction
}

// NewSnapshot builds a snapshot holding a copy of items.
func NewSnapshot(items ...core.Transaction) Snapshot {
	return Snapshot{items: append([]core.Transaction(nil), items...)}
}

// Version increases by one for every transition that changed the collection.
func (s Snapshot) Version() uint64 { return s.version }

func (s Snapshot) Len() int { return len(s.items) }

// Transactions returns the collection in store order.
func (s Snapshot) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), s.items...)
}

// Find returns the transaction with the given id.
func (s Snapshot) Find(id string) (core.Transaction, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return core.Transaction{}, false
}

func (s Snapshot) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

func (s Snapshot) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add returns a snapshot with t appended.
func (s Snapshot) Add(t core.Transaction) Snapshot {
	items := make([]core.Transaction, len(s.items), len(s.items)+1)
	copy(items, s.items)
	return Snapshot{version: s.version + 1, items: append(items, t)}
}

// Replace swaps the transaction whose id matches t.ID for t, keeping its
// position. When no transaction matches, the receiver is returned as is and
// the second result is false.
func (s Snapshot) Replace(t core.Transaction) (Snapshot, bool) {
	i := s.indexOf(t.ID)
	if i < 0 {
		return s, false
	}
	items := s.Transactions()
	items[i] = t
	return Snapshot{version: s.version + 1, items: items}, true
}

// Remove drops the transaction with the given id. When no transaction
// matches, the receiver is returned as is and the second result is false.
func (s Snapshot) Remove(id string) (Snapshot, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return s, false
	}
	items := make([]core.Transaction, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	items = append(items, s.items[i+1:]...)
	return Snapshot{version: s.version + 1, items: items}, true
}

// ByDateDesc returns the transactions newest first. Transactions sharing a
// date keep their store order.
func (s Snapshot) ByDateDesc() []core.Transaction {
	items := s.Transactions()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
	return items
}
