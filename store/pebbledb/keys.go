package pebbledb

import (
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Keyspace (byte-wise, lexicographically sortable):
// - s/{session_uuid_16}            session record
// - m/{session_uuid_16}/{xid_12}   message record
//
// XIDs embed their creation time in the leading bytes, so messages of a
// session iterate in time order.

var (
	sep           = byte('/')
	sessionPrefix = []byte("s/")
	messagePrefix = []byte("m/")
	sessionKeyLen = 2 + 16
	messageKeyLen = 2 + 16 + 1 + 12
)

func keySession(id uuid.UUID) []byte {
	k := make([]byte, 0, sessionKeyLen)
	k = append(k, sessionPrefix...)
	k = append(k, id[:]...)
	return k
}

func keyMessage(session uuid.UUID, id xid.ID) []byte {
	k := make([]byte, 0, messageKeyLen)
	k = append(k, messagePrefix...)
	k = append(k, session[:]...)
	k = append(k, sep)
	k = append(k, id[:]...)
	return k
}

func prefixMessages(session uuid.UUID) []byte {
	k := make([]byte, 0, 2+16+1)
	k = append(k, messagePrefix...)
	k = append(k, session[:]...)
	k = append(k, sep)
	return k
}

// prefixEnd returns the exclusive upper bound for iterating a prefix.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)

	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}

	return nil
}
