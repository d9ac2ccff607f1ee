package mastery

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Timestamp is a millisecond-precision instant, serialized as epoch milliseconds.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: time.UnixMilli(t.UnixMilli())}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse epoch milliseconds %s > %w", data, err)
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

// Clock hands out strictly increasing timestamps, even when the wall clock
// stalls or goes backwards between two calls.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

func (c *Clock) Now() Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return Timestamp{Time: time.UnixMilli(ms)}
}

// Observe makes sure later timestamps are strictly after ts.
func (c *Clock) Observe(ts Timestamp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ms := ts.UnixMilli(); ms > c.last {
		c.last = ms
	}
}
