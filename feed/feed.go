// Package feed supplies price events to the simulated broker and drives
// replay runs.
package feed

import (
	"github.com/rustyeddy/simbroker/market"
)

// Feed yields price events one at a time, in time order. Implementations
// should be deterministic and return ok=false with a nil error at EOF.
type Feed interface {
	Next() (ev *market.Event, ok bool, err error)
	Close() error
}

// SliceFeed replays an in-memory list of events. Handy for tests and
// scripted demos.
type SliceFeed struct {
	events []*market.Event
	next   int
}

func NewSliceFeed(events ...*market.Event) *SliceFeed {
	return &SliceFeed{events: events}
}

func (f *SliceFeed) Next() (*market.Event, bool, error) {
	if f.next >= len(f.events) {
		return nil, false, nil
	}
	ev := f.events[f.next]
	f.next++
	return ev, true, nil
}

func (f *SliceFeed) Close() error { return nil }
