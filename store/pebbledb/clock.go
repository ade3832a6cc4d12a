package pebbledb

import (
	"context"
	"time"

	"github.com/kpango/fastime"
)

// FastTimeNow returns a cached clock suitable for Options.TimeNow on
// stores with high append rates. The clock refreshes every millisecond
// and stops when ctx is done.
func FastTimeNow(ctx context.Context) func() time.Time {
	t := fastime.New().StartTimerD(ctx, time.Millisecond)
	return t.Now
}
