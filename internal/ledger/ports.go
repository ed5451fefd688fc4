package ledger

import (
	"context"
	"time"
)

// Op names a store operation.
type Op string

const (
	OpAdd    Op = "add"
	OpEdit   Op = "edit"
	OpDelete Op = "delete"
)

const (
	MsgAdded   = "Transaction added successfully"
	MsgUpdated = "Transaction updated successfully"
	MsgDeleted = "Transaction deleted successfully"
)

// Notification is emitted after every store operation. Changed is false
// when an edit or delete targeted an id that was not in the collection;
// the message still reports success.
type Notification struct {
	Op            Op
	TransactionID string
	Message       string
	Changed       bool
	Version       uint64
	At            time.Time
}

// Ports for collaborators of the store.
type (
	// Notifier is a fire-and-forget sink for operation outcomes.
	Notifier interface {
		Notify(ctx context.Context, n Notification)
	}

	// IDGenerator supplies a new transaction identifier per call.
	IDGenerator interface {
		NewID() string
	}
)

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

type discard struct{}

func (discard) Notify(context.Context, Notification) {}

// Discard drops every notification.
var Discard Notifier = discard{}
