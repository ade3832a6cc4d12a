package pebbledb

import (
	"encoding/binary"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
	"github.com/rs/xid"

	"github.com/logward/go-logstore/store"
)

// SessionInfo describes one recorded session.
type SessionInfo struct {
	ID        uuid.UUID
	StartedAt time.Time
}

// Message is a read-back record with its store-assigned identity.
type Message struct {
	ID xid.ID
	store.Message
}

type ReadOptions struct {
	// Verbosity is the most verbose severity to include; messages less
	// severe than it are skipped. UNSPECIFIED includes everything.
	Verbosity store.Severity

	// Label keeps only messages from one handler label, when non-empty.
	Label string

	// Limit caps the number of returned messages. Zero means no cap.
	Limit int
}

func (opt *ReadOptions) setDefaults() {
	if opt.Verbosity == store.UNSPECIFIED {
		opt.Verbosity = store.TRACE
	}
}

// Sessions lists all recorded sessions in key order.
func (s *Store) Sessions() ([]SessionInfo, error) {
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: sessionPrefix,
		UpperBound: prefixEnd(sessionPrefix),
	})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []SessionInfo

	for it.First(); it.Valid(); it.Next() {
		key := it.Key()
		if len(key) != sessionKeyLen {
			return nil, ErrCorruptRecord
		}

		val := it.Value()
		if len(val) < 8 {
			return nil, ErrCorruptRecord
		}

		var info SessionInfo
		copy(info.ID[:], key[2:])
		info.StartedAt = time.Unix(0, int64(binary.BigEndian.Uint64(val)))
		out = append(out, info)
	}

	return out, it.Error()
}

// Messages reads back one session's messages in time order.
func (s *Store) Messages(session uuid.UUID, options ...ReadOptions) ([]Message, error) {
	var opt ReadOptions

	if options != nil {
		opt = options[0]
	}

	opt.setDefaults()

	prefix := prefixMessages(session)

	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []Message

	for it.First(); it.Valid(); it.Next() {
		key := it.Key()
		if len(key) != messageKeyLen {
			return nil, ErrCorruptRecord
		}

		msg, err := decodeMessage(it.Value())
		if err != nil {
			return nil, err
		}

		if msg.Severity > opt.Verbosity {
			continue
		}

		if opt.Label != "" && msg.Label != opt.Label {
			continue
		}

		var id xid.ID
		copy(id[:], key[len(prefix):])

		out = append(out, Message{ID: id, Message: msg})

		if opt.Limit > 0 && len(out) >= opt.Limit {
			break
		}
	}

	return out, it.Error()
}
