package strip

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of per-key updates into a single trailing
// callback after a quiet period. Keys debounce independently: re-arming one
// key never delays another. Re-arming cancels the key's pending callback
// atomically — a timer that has already fired but not yet acquired the lock
// observes a newer generation and gives up instead of firing stale.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fire    func(key int)
	gens    map[int]uint64
	timers  map[int]*time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer invoking fire after delay of quiet per key.
func NewDebouncer(delay time.Duration, fire func(key int)) *Debouncer {
	return &Debouncer{
		delay:  delay,
		fire:   fire,
		gens:   make(map[int]uint64),
		timers: make(map[int]*time.Timer),
	}
}

// Arm schedules (or reschedules) the callback for key. Any pending callback
// for the same key is canceled.
func (d *Debouncer) Arm(key int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.gens[key]++
	gen := d.gens[key]
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.expire(key, gen)
	})
}

// Cancel drops any pending callback for key.
func (d *Debouncer) Cancel(key int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
	d.gens[key]++
}

// Stop cancels every pending callback. The debouncer is unusable afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}

func (d *Debouncer) expire(key int, gen uint64) {
	d.mu.Lock()
	if d.stopped || d.gens[key] != gen {
		d.mu.Unlock()
		return
	}
	delete(d.timers, key)
	d.mu.Unlock()

	d.fire(key)
}
