// Package logstore bridges a structured-logging facade to a persistent
// log store. A Handler carries static metadata, an optional per-call
// metadata provider and a minimum severity; every log call merges the
// three metadata sources, narrows the values to the store's persistable
// union and appends one message to the store, synchronously.
package logstore

import (
	"context"
	"sync"

	"github.com/logward/go-logstore/store"
)

type HandlerOptions struct {
	// Store receives the handler's messages. Defaults to Default().
	Store store.Store

	// Provider supplies per-call metadata with the lowest merge
	// precedence. Invoked once per Log call.
	Provider Provider

	// Metadata seeds the handler's static metadata.
	Metadata Metadata

	// Level is the initial minimum severity. Defaults to INFO; TRACE is
	// the zero value, so a trace-level handler needs SetLevel after
	// construction.
	Level Severity

	// Context is passed to the store on every append. Defaults to
	// context.Background().
	Context context.Context
}

func (opt *HandlerOptions) setDefaults() {
	if opt.Store == nil {
		opt.Store = Default()
	}

	if opt.Context == nil {
		opt.Context = context.Background()
	}

	// Zero is a valid severity (TRACE), but an unconfigured handler
	// should not persist trace chatter.
	if opt.Level == 0 {
		opt.Level = INFO
	}
}

// Handler forwards log calls to a store. Label, store, provider and
// context are fixed at construction; static metadata and minimum level
// stay mutable for the handler's lifetime. Handlers sharing a store are
// independent: configuring one never affects another.
type Handler struct {
	ctx      context.Context
	st       store.Store
	provider Provider
	label    string

	mu     sync.RWMutex
	static Metadata
	level  Severity
}

func NewHandler(label string, options ...HandlerOptions) *Handler {
	var opt HandlerOptions

	if options != nil {
		opt = options[0]
	}

	opt.setDefaults()

	return &Handler{
		ctx:      opt.Context,
		st:       opt.Store,
		provider: opt.Provider,
		label:    label,
		static:   opt.Metadata.clone(),
		level:    opt.Level,
	}
}

func (h *Handler) Label() string {
	return h.label
}

// Metadata reads one entry of the handler's static metadata.
func (h *Handler) Metadata(key string) (Value, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	v, ok := h.static[key]
	return v, ok
}

// SetMetadata writes one entry of the handler's static metadata. It
// affects subsequent Log calls only, never calls already in flight.
func (h *Handler) SetMetadata(key string, value Value) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.static == nil {
		h.static = Metadata{}
	}

	h.static[key] = value
}

func (h *Handler) Level() Severity {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.level
}

// SetLevel stores the minimum severity. The handler itself never filters
// on it; the facade consults it before dispatching.
func (h *Handler) SetLevel(severity Severity) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.level = severity
}

// Log merges metadata (provider lowest, static middle, call highest),
// narrows the merged values, translates the severity and appends one
// message to the store. It returns when the store's append returns; any
// append failure, or a panic from a describable value's String, surfaces
// to the caller untouched. No retry, buffering or batching happens here.
func (h *Handler) Log(severity Severity, message string, metadata Metadata, file, function string, line uint) error {
	h.mu.RLock()
	static := h.static.clone()
	h.mu.RUnlock()

	merged := mergeMetadata(h.provider, static, metadata)

	return h.st.Append(h.ctx, store.Message{
		Label:    h.label,
		Severity: storeSeverity(severity),
		Text:     message,
		Metadata: persistMetadata(merged),
		File:     file,
		Function: function,
		Line:     line,
	})
}
