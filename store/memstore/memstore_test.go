package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/logward/go-logstore/store"
)

func TestAppendOrderAndCopy(t *testing.T) {
	st := New()
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		if err := st.Append(ctx, store.Message{Text: text}); err != nil {
			t.Fatal(err)
		}
	}

	msgs := st.Messages()
	if len(msgs) != 3 || msgs[0].Text != "one" || msgs[2].Text != "three" {
		t.Fatalf("got %+v", msgs)
	}

	msgs[0].Text = "mutated"

	if st.Messages()[0].Text != "one" {
		t.Fatal("Messages returned shared backing storage")
	}

	st.Reset()

	if len(st.Messages()) != 0 {
		t.Fatal("Reset did not clear the store")
	}
}

func TestAppendStampsTime(t *testing.T) {
	st := New()

	if err := st.Append(context.Background(), store.Message{Text: "x"}); err != nil {
		t.Fatal(err)
	}

	if st.Messages()[0].Time.IsZero() {
		t.Fatal("append left zero time")
	}
}

func TestConcurrentAppend(t *testing.T) {
	st := New()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			_ = st.Append(context.Background(), store.Message{Text: "x"})
		}()
	}

	wg.Wait()

	if got := len(st.Messages()); got != 50 {
		t.Fatalf("got %d messages, want 50", got)
	}
}
