package usecase

import (
	"strings"
	"sync"
	"time"
)

// Debouncer delays an effect until a quiet period follows the triggering
// input. Scheduling a key cancels any not-yet-fired effect for the same
// key, so only the last pending value within a window is committed.
type Debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewDebouncer() *Debouncer {
	return &Debouncer{
		timers: make(map[string]*time.Timer),
	}
}

func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[key]; ok {
		timer.Stop()
	}

	// Stop cannot prevent a callback that is already in flight, so the
	// callback must check it still owns the key before firing. A stale
	// callback that deleted the entry blindly would orphan the
	// replacement timer from Cancel and CancelPrefix.
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		current := d.timers[key] == timer
		if current {
			delete(d.timers, key)
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
	d.timers[key] = timer
}

func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[key]; ok {
		timer.Stop()
		delete(d.timers, key)
	}
}

// CancelPrefix drops every pending effect whose key starts with prefix.
// Used when an item is deleted while edits to it are still in flight.
func (d *Debouncer) CancelPrefix(prefix string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, timer := range d.timers {
		if strings.HasPrefix(key, prefix) {
			timer.Stop()
			delete(d.timers, key)
		}
	}
}
