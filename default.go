package logstore

import (
	"sync"

	"github.com/logward/go-logstore/store"
	"github.com/logward/go-logstore/store/memstore"
)

var (
	defaultMu    sync.Mutex
	defaultStore store.Store
)

// Default returns the process-wide store used by handlers constructed
// without an explicit one. It is created on first use and lives for the
// rest of the process; out of the box it is an in-memory store, so
// anything that should outlive the process must set a persistent store
// via SetDefault before constructing handlers.
func Default() store.Store {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultStore == nil {
		defaultStore = memstore.New()
	}

	return defaultStore
}

// SetDefault replaces the process-wide store. Handlers already holding
// the previous store keep it; only handlers constructed afterwards see
// the replacement.
func SetDefault(st store.Store) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultStore = st
}
