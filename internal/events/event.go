// Package events defines the wire format of transaction notifications
// published to message brokers.
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"budget/internal/ledger"
)

// TransactionEvent is a lightweight record of one store operation. It
// carries the outcome only; consumers never receive the transaction body.
type TransactionEvent struct {
	Op            string    `json:"op"`
	TransactionID string    `json:"transaction_id"`
	Message       string    `json:"message"`
	Changed       bool      `json:"changed"`
	Version       uint64    `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
}

// FromNotification converts a store notification into its wire form.
func FromNotification(n ledger.Notification) *TransactionEvent {
	ts := n.At
	if ts.IsZero() {
		ts = time.Now()
	}
	return &TransactionEvent{
		Op:            string(n.Op),
		TransactionID: n.TransactionID,
		Message:       n.Message,
		Changed:       n.Changed,
		Version:       n.Version,
		Timestamp:     ts.UTC(),
	}
}

// Key is the partitioning key used by brokers that support one.
func (e *TransactionEvent) Key() []byte {
	return []byte(e.TransactionID)
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ErrMalformedEvent marks events that can never be processed. Consumers
// drop them instead of redelivering.
var ErrMalformedEvent = errors.New("malformed transaction event")

// TransactionEventFromJSON decodes an event and checks the operation name
// and transaction id.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Validate checks the fields every consumer relies on.
func (e *TransactionEvent) Validate() error {
	switch ledger.Op(e.Op) {
	case ledger.OpAdd, ledger.OpEdit, ledger.OpDelete:
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrMalformedEvent, e.Op)
	}
	if e.TransactionID == "" {
		return fmt.Errorf("%w: %s event without transaction id", ErrMalformedEvent, e.Op)
	}
	return nil
}
