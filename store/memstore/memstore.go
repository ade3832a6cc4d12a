// Package memstore is a Store kept entirely in memory, for tests and as
// the fallback default store.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/logward/go-logstore/store"
)

type Store struct {
	mu   sync.Mutex
	msgs []store.Message
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, msg store.Message) error {
	if msg.Time.IsZero() {
		msg.Time = time.Now()
	}

	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()

	return nil
}

// Messages returns a copy of everything appended so far, in append order.
func (s *Store) Messages() []store.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func (s *Store) Reset() {
	s.mu.Lock()
	s.msgs = nil
	s.mu.Unlock()
}
