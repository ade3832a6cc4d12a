package logstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/logward/go-logstore/store"
	"github.com/logward/go-logstore/store/memstore"
)

var _ LogHandler = (*Handler)(nil)

type failingStore struct {
	err error
}

func (f failingStore) Append(context.Context, store.Message) error {
	return f.err
}

func lastMessage(t *testing.T, st *memstore.Store) store.Message {
	t.Helper()

	msgs := st.Messages()
	if len(msgs) == 0 {
		t.Fatal("no messages in store")
	}

	return msgs[len(msgs)-1]
}

func TestLogCallOverridesStatic(t *testing.T) {
	st := memstore.New()

	h := NewHandler("api", HandlerOptions{
		Store:    st,
		Metadata: Metadata{"env": String("prod")},
	})

	if err := h.Log(INFO, "request", Metadata{
		"env": String("staging"),
		"req": String("123"),
	}, "api.go", "handle", 42); err != nil {
		t.Fatal(err)
	}

	msg := lastMessage(t, st)

	if len(msg.Metadata) != 2 {
		t.Fatalf("got %d metadata entries, want 2", len(msg.Metadata))
	}

	if msg.Metadata["env"] != store.Text("staging") {
		t.Fatalf("env = %+v, want staging", msg.Metadata["env"])
	}

	if msg.Metadata["req"] != store.Text("123") {
		t.Fatalf("req = %+v, want 123", msg.Metadata["req"])
	}
}

func TestLogPrecedenceAcrossCalls(t *testing.T) {
	st := memstore.New()

	h := NewHandler("api", HandlerOptions{
		Store:    st,
		Provider: func() Metadata { return Metadata{"key": String("provider-value")} },
	})

	if err := h.Log(INFO, "first", nil, "", "", 0); err != nil {
		t.Fatal(err)
	}

	if got := lastMessage(t, st).Metadata["key"]; got != store.Text("provider-value") {
		t.Fatalf("key = %+v, want provider-value", got)
	}

	h.SetMetadata("key", String("store-value"))

	if err := h.Log(INFO, "second", nil, "", "", 0); err != nil {
		t.Fatal(err)
	}

	if got := lastMessage(t, st).Metadata["key"]; got != store.Text("store-value") {
		t.Fatalf("key = %+v, want store-value", got)
	}

	if err := h.Log(INFO, "third", Metadata{"key": String("entry-value")}, "", "", 0); err != nil {
		t.Fatal(err)
	}

	if got := lastMessage(t, st).Metadata["key"]; got != store.Text("entry-value") {
		t.Fatalf("key = %+v, want entry-value", got)
	}
}

func TestLogDescribableMetadata(t *testing.T) {
	st := memstore.New()
	h := NewHandler("api", HandlerOptions{Store: st})

	if err := h.Log(ERR, "boom", Metadata{"system": Stringify(subsystem("auth"))}, "", "", 0); err != nil {
		t.Fatal(err)
	}

	if got := lastMessage(t, st).Metadata["system"]; got != store.Described("auth") {
		t.Fatalf("system = %+v, want described auth", got)
	}
}

func TestLogForwardsFields(t *testing.T) {
	st := memstore.New()
	h := NewHandler("worker", HandlerOptions{Store: st})

	if err := h.Log(CRIT, "it broke", nil, "worker.go", "run", 17); err != nil {
		t.Fatal(err)
	}

	msg := lastMessage(t, st)

	if msg.Label != "worker" {
		t.Fatalf("label = %q", msg.Label)
	}

	if msg.Severity != store.CRIT {
		t.Fatalf("severity = %v, want store.CRIT", msg.Severity)
	}

	if msg.Text != "it broke" {
		t.Fatalf("text = %q", msg.Text)
	}

	if msg.File != "worker.go" || msg.Function != "run" || msg.Line != 17 {
		t.Fatalf("source location = %q %q %d", msg.File, msg.Function, msg.Line)
	}
}

func TestConcurrentHandlersSharingStore(t *testing.T) {
	st := memstore.New()

	a := NewHandler("alpha", HandlerOptions{Store: st})
	b := NewHandler("beta", HandlerOptions{Store: st})

	var wg sync.WaitGroup

	for _, h := range []*Handler{a, b} {
		wg.Add(1)

		go func(h *Handler) {
			defer wg.Done()

			if err := h.Log(INFO, "hello from "+h.Label(), nil, "", "", 0); err != nil {
				t.Error(err)
			}
		}(h)
	}

	wg.Wait()

	msgs := st.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}

	byLabel := map[string]string{}
	for _, m := range msgs {
		byLabel[m.Label] = m.Text
	}

	if byLabel["alpha"] != "hello from alpha" || byLabel["beta"] != "hello from beta" {
		t.Fatalf("messages misattributed: %v", byLabel)
	}
}

func TestHandlersAreIndependent(t *testing.T) {
	st := memstore.New()

	a := NewHandler("alpha", HandlerOptions{Store: st})
	b := NewHandler("beta", HandlerOptions{Store: st})

	a.SetMetadata("env", String("prod"))
	a.SetLevel(DEBUG)

	if _, ok := b.Metadata("env"); ok {
		t.Fatal("metadata leaked between handlers")
	}

	if b.Level() == DEBUG {
		t.Fatal("level leaked between handlers")
	}
}

func TestMetadataAccessors(t *testing.T) {
	h := NewHandler("api", HandlerOptions{Store: memstore.New()})

	if _, ok := h.Metadata("missing"); ok {
		t.Fatal("unexpected entry")
	}

	h.SetMetadata("env", String("prod"))

	v, ok := h.Metadata("env")
	if !ok || v.str != "prod" {
		t.Fatalf("got %+v %v, want prod", v, ok)
	}
}

func TestLevelDefaultsToInfo(t *testing.T) {
	h := NewHandler("api", HandlerOptions{Store: memstore.New()})

	if h.Level() != INFO {
		t.Fatalf("level = %v, want INFO", h.Level())
	}

	h.SetLevel(WARNING)

	if h.Level() != WARNING {
		t.Fatalf("level = %v, want WARNING", h.Level())
	}
}

func TestAppendErrorPropagates(t *testing.T) {
	sentinel := errors.New("disk on fire")
	h := NewHandler("api", HandlerOptions{Store: failingStore{err: sentinel}})

	if err := h.Log(INFO, "hello", nil, "", "", 0); !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want the store's error unchanged", err)
	}
}

func BenchmarkHandlerLog(b *testing.B) {
	h := NewHandler("bench", HandlerOptions{
		Store:    discardStore{},
		Provider: func() Metadata { return Metadata{"host": String("node-1")} },
		Metadata: Metadata{"env": String("prod")},
	})

	call := Metadata{"req": String("123")}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = h.Log(INFO, "hello", call, "bench.go", "BenchmarkHandlerLog", 1)
	}
}

type discardStore struct{}

func (discardStore) Append(context.Context, store.Message) error {
	return nil
}

func TestDefaultStoreIsLazySingleton(t *testing.T) {
	SetDefault(nil)

	first := Default()
	if first == nil {
		t.Fatal("Default returned nil")
	}

	if second := Default(); second != first {
		t.Fatal("Default returned a different instance")
	}

	replacement := memstore.New()
	SetDefault(replacement)

	if Default() != replacement {
		t.Fatal("SetDefault did not take effect")
	}

	h := NewHandler("api")
	if err := h.Log(INFO, "hello", nil, "", "", 0); err != nil {
		t.Fatal(err)
	}

	if len(replacement.Messages()) != 1 {
		t.Fatal("handler did not use the default store")
	}

	SetDefault(nil)
}
