package schedule

import (
	"sync"
	"time"
)

// Debounce runs fn once delay has passed without a further Call, with the
// argument of the last Call.
type Debounce[T any] struct {
	clock Clock
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending bool
	args    T
	stopped bool
}

// NewDebounce creates a debounce owned by s.
func NewDebounce[T any](s *Scheduler, delay time.Duration, fn func(T)) *Debounce[T] {
	d := newDebounce(s.clock, delay, fn)
	s.adopt(d)
	return d
}

func newDebounce[T any](clock Clock, delay time.Duration, fn func(T)) *Debounce[T] {
	return &Debounce[T]{clock: clock, delay: delay, fn: fn}
}

// Call restarts the quiet period with v as the pending argument.
func (d *Debounce[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.args = v
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debounce[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.fn(v)
}

// Flush runs the pending call now, if any.
func (d *Debounce[T]) Flush() {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	v := d.take()
	d.mu.Unlock()

	d.fn(v)
}

// Cancel drops the pending call. Later calls are accepted.
func (d *Debounce[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// Stop drops the pending call and ignores all later calls.
func (d *Debounce[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
	d.stopped = true
}

// Pending reports whether a call is waiting for the quiet period.
func (d *Debounce[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debounce[T]) take() T {
	v := d.args
	var zero T
	d.args = zero
	d.pending = false
	d.timer = nil
	return v
}

func (d *Debounce[T]) reset() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.take()
}

// KeyedDebounce keeps one independent debounce per key, so a burst on one
// key never swallows the trailing call of another.
type KeyedDebounce[K comparable, T any] struct {
	clock Clock
	delay time.Duration
	fn    func(K, T)

	mu      sync.Mutex
	entries map[K]*Debounce[T]
	stopped bool
}

// NewKeyedDebounce creates a keyed debounce owned by s.
func NewKeyedDebounce[K comparable, T any](s *Scheduler, delay time.Duration, fn func(K, T)) *KeyedDebounce[K, T] {
	k := &KeyedDebounce[K, T]{
		clock:   s.clock,
		delay:   delay,
		fn:      fn,
		entries: make(map[K]*Debounce[T]),
	}
	s.adopt(k)
	return k
}

// Call restarts the quiet period for key.
func (k *KeyedDebounce[K, T]) Call(key K, v T) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.stopped {
		return
	}
	d, ok := k.entries[key]
	if !ok {
		d = k.newEntry(key)
		k.entries[key] = d
	}
	d.Call(v)
}

// newEntry returns a debounce for key that drops itself from entries once it
// has fired, unless a later Call rearmed it.
func (k *KeyedDebounce[K, T]) newEntry(key K) *Debounce[T] {
	var d *Debounce[T]
	d = newDebounce(k.clock, k.delay, func(v T) {
		k.mu.Lock()
		if k.entries[key] == d && !d.Pending() {
			delete(k.entries, key)
		}
		k.mu.Unlock()
		k.fn(key, v)
	})
	return d
}

// Pending reports whether key has a call waiting.
func (k *KeyedDebounce[K, T]) Pending(key K) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	d, ok := k.entries[key]
	return ok && d.Pending()
}

// Len returns the number of keys with a call waiting.
func (k *KeyedDebounce[K, T]) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// Flush runs every pending call now.
func (k *KeyedDebounce[K, T]) Flush() {
	for _, d := range k.snapshot() {
		d.Flush()
	}
}

// Cancel drops every pending call.
func (k *KeyedDebounce[K, T]) Cancel() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, d := range k.entries {
		d.Cancel()
		delete(k.entries, key)
	}
}

// Stop drops every pending call and ignores all later calls.
func (k *KeyedDebounce[K, T]) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.stopped = true
	for key, d := range k.entries {
		d.Stop()
		delete(k.entries, key)
	}
}

func (k *KeyedDebounce[K, T]) snapshot() []*Debounce[T] {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]*Debounce[T], 0, len(k.entries))
	for _, d := range k.entries {
		out = append(out, d)
	}
	return out
}
