// Package pebbledb implements a persistent log store over Pebble. Each
// Open starts a new session; messages append to the current session and
// can be read back per session, in time order.
package pebbledb

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
	"github.com/rs/xid"

	"github.com/logward/go-logstore/store"
)

// FsyncMode defines durability behavior for appends.
type FsyncMode int

const (
	FsyncModeUnspecified FsyncMode = iota

	// FsyncModeAlways requests a WAL fsync on every append.
	FsyncModeAlways

	// FsyncModeInterval lets Pebble coalesce WAL syncs for appends within
	// FsyncInterval.
	FsyncModeInterval

	// FsyncModeNever leaves syncing entirely to Pebble's own policies.
	FsyncModeNever
)

var ErrReadOnly = errors.New("store is read-only")

type Options struct {
	Fsync         FsyncMode
	FsyncInterval time.Duration

	// ReadOnly opens the database for reading; no session is started and
	// Append fails with ErrReadOnly.
	ReadOnly bool

	// TimeNow stamps appended messages. Defaults to time.Now; pass
	// FastTimeNow(ctx) for high append rates.
	TimeNow func() time.Time

	// PebbleOptions allows advanced tuning. If nil, defaults are used.
	PebbleOptions *pebble.Options
}

func (opt *Options) setDefaults() {
	if opt.TimeNow == nil {
		opt.TimeNow = time.Now
	}

	if opt.Fsync == FsyncModeInterval && opt.FsyncInterval <= 0 {
		opt.FsyncInterval = 5 * time.Millisecond
	}
}

type Store struct {
	db       *pebble.DB
	session  uuid.UUID
	now      func() time.Time
	sync     *pebble.WriteOptions
	readOnly bool
}

func Open(dir string, options ...Options) (*Store, error) {
	var opt Options

	if options != nil {
		opt = options[0]
	}

	opt.setDefaults()

	po := opt.PebbleOptions
	if po == nil {
		po = &pebble.Options{}
	}

	po.ReadOnly = opt.ReadOnly

	sync := pebble.NoSync

	switch opt.Fsync {
	case FsyncModeAlways:
		sync = pebble.Sync
	case FsyncModeInterval:
		interval := opt.FsyncInterval
		po.WALMinSyncInterval = func() time.Duration { return interval }
		sync = pebble.Sync
	case FsyncModeNever:
	default:
		// Group-commit with a small window as the default tradeoff.
		po.WALMinSyncInterval = func() time.Duration { return 5 * time.Millisecond }
		sync = pebble.Sync
	}

	db, err := pebble.Open(dir, po)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:       db,
		now:      opt.TimeNow,
		sync:     sync,
		readOnly: opt.ReadOnly,
	}

	if opt.ReadOnly {
		return s, nil
	}

	s.session = uuid.New()

	var started [8]byte
	binary.BigEndian.PutUint64(started[:], uint64(s.now().UnixNano()))

	if err := db.Set(keySession(s.session), started[:], pebble.Sync); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Session identifies the session started by this Open. Zero when the
// store is read-only.
func (s *Store) Session() uuid.UUID {
	return s.session
}

// Append durably records one message under the current session. The
// message is stamped with the store clock if its time is zero. Safe for
// concurrent use; ordering between concurrent appends is whatever the
// key order of their timestamps gives.
func (s *Store) Append(ctx context.Context, msg store.Message) error {
	if s.readOnly {
		return ErrReadOnly
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if msg.Time.IsZero() {
		msg.Time = s.now()
	}

	id := xid.NewWithTime(msg.Time)

	return s.db.Set(keyMessage(s.session, id), encodeMessage(msg), s.sync)
}

func (s *Store) Close() error {
	return s.db.Close()
}
