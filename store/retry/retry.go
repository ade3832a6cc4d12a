// Package retry decorates a Store with exponential-backoff retries on
// append failure. Handlers themselves never retry; wrap their store with
// this package when the sink is flaky.
package retry

import (
	"context"
	"time"

	"github.com/jpillora/backoff"

	"github.com/logward/go-logstore/store"
)

type Options struct {
	// Attempts is the total number of Append tries. Default: 3.
	Attempts int

	// Min and Max bound the backoff between tries. Defaults: 50ms, 2s.
	Min time.Duration
	Max time.Duration

	Factor float64
	Jitter bool
}

func (opt *Options) setDefaults() {
	if opt.Attempts <= 0 {
		opt.Attempts = 3
	}

	if opt.Min <= 0 {
		opt.Min = 50 * time.Millisecond
	}

	if opt.Max <= 0 {
		opt.Max = 2 * time.Second
	}

	if opt.Factor <= 0 {
		opt.Factor = 2
	}
}

type Store struct {
	inner store.Store
	opt   Options
}

func New(inner store.Store, options ...Options) *Store {
	var opt Options

	if options != nil {
		opt = options[0]
	}

	opt.setDefaults()

	return &Store{
		inner: inner,
		opt:   opt,
	}
}

// Append tries the wrapped store until it succeeds, attempts run out or
// ctx is done. The last append error is returned unchanged.
func (s *Store) Append(ctx context.Context, msg store.Message) (err error) {
	b := backoff.Backoff{
		Min:    s.opt.Min,
		Max:    s.opt.Max,
		Factor: s.opt.Factor,
		Jitter: s.opt.Jitter,
	}

	for attempt := 0; attempt < s.opt.Attempts; attempt++ {
		if err = s.inner.Append(ctx, msg); err == nil {
			return nil
		}

		if attempt == s.opt.Attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(b.Duration()):
		}
	}

	return err
}
