// Package store defines the contract between logging handlers and a
// persistent log store, plus the value types the store can durably record.
package store

import (
	"context"
	"time"
)

// Message is a single log record as handed to a store.
type Message struct {
	Label    string
	Severity Severity
	Text     string
	Metadata map[string]Value
	File     string
	Function string
	Line     uint

	// Time may be left zero by the caller; stores stamp it on append.
	Time time.Time
}

// Store accepts single log records. Append returns only after the record
// has been handed off to the store's own write path; implementations
// define their own durability and ordering guarantees. Implementations
// must be safe for concurrent Append calls.
type Store interface {
	Append(ctx context.Context, msg Message) error
}
