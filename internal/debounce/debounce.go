// Package debounce runs the last task scheduled for a key once the key has
// been quiet for a window.
package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const DefaultWindow = 400 * time.Millisecond

type pending struct {
	timer clockwork.Timer
	seq   uint64
}

// Debouncer keeps at most one armed timer per key.
type Debouncer struct {
	clock  clockwork.Clock
	window time.Duration

	mu      sync.Mutex
	seq     uint64
	pending map[string]pending
}

func New(clock clockwork.Clock, window time.Duration) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{clock: clock, window: window, pending: make(map[string]pending)}
}

// Schedule replaces any task waiting on key with fn.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}

	d.seq++
	seq := d.seq
	timer := d.clock.AfterFunc(d.window, func() {
		d.mu.Lock()
		p, ok := d.pending[key]
		if !ok || p.seq != seq {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()

		fn()
	})
	d.pending[key] = pending{timer: timer, seq: seq}
}

func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}
