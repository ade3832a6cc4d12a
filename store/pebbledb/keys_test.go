package pebbledb

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

func TestMessageKeysSortByTime(t *testing.T) {
	session := uuid.New()
	base := time.Unix(1724800000, 0)

	earlier := keyMessage(session, xid.NewWithTime(base))
	later := keyMessage(session, xid.NewWithTime(base.Add(2*time.Second)))

	if bytes.Compare(earlier, later) >= 0 {
		t.Fatal("earlier message key does not sort before later one")
	}
}

func TestMessageKeysStayInsidePrefix(t *testing.T) {
	session := uuid.New()
	prefix := prefixMessages(session)
	key := keyMessage(session, xid.New())

	if !bytes.HasPrefix(key, prefix) {
		t.Fatal("message key outside its session prefix")
	}

	if end := prefixEnd(prefix); bytes.Compare(key, end) >= 0 {
		t.Fatalf("key %x not below prefix end %x", key, end)
	}

	other := prefixMessages(uuid.New())
	if bytes.HasPrefix(key, other) {
		t.Fatal("message key matches a foreign session prefix")
	}
}

func TestKeyLengths(t *testing.T) {
	session := uuid.New()

	if got := len(keySession(session)); got != sessionKeyLen {
		t.Fatalf("session key length %d, want %d", got, sessionKeyLen)
	}

	if got := len(keyMessage(session, xid.New())); got != messageKeyLen {
		t.Fatalf("message key length %d, want %d", got, messageKeyLen)
	}
}

func TestPrefixEnd(t *testing.T) {
	if got := prefixEnd([]byte{'m', '/'}); !bytes.Equal(got, []byte{'m', '0'}) {
		t.Fatalf("got %x", got)
	}

	if got := prefixEnd([]byte{0xff, 0xff}); got != nil {
		t.Fatalf("got %x, want nil for all-0xff prefix", got)
	}
}
