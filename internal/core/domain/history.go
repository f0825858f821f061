package domain

import "time"

// DefaultHistoryLength is the number of samples kept per rolling window.
const DefaultHistoryLength = 100

// RollingWindow is a fixed-capacity FIFO ring buffer. Pushing past capacity
// evicts the oldest value.
type RollingWindow[T any] struct {
	buf   []T
	head  int
	count int
}

// NewRollingWindow creates a window; a non-positive capacity falls back to
// DefaultHistoryLength.
func NewRollingWindow[T any](capacity int) *RollingWindow[T] {
	if capacity <= 0 {
		capacity = DefaultHistoryLength
	}
	return &RollingWindow[T]{buf: make([]T, capacity)}
}

// Push appends v and reports whether the oldest value was evicted.
func (w *RollingWindow[T]) Push(v T) bool {
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
		return false
	}
	return true
}

func (w *RollingWindow[T]) Len() int { return w.count }

func (w *RollingWindow[T]) Cap() int { return len(w.buf) }

// Values returns a copy of the window contents, oldest first.
func (w *RollingWindow[T]) Values() []T {
	out := make([]T, w.count)
	start := (w.head - w.count + len(w.buf)) % len(w.buf)
	for i := 0; i < w.count; i++ {
		out[i] = w.buf[(start+i)%len(w.buf)]
	}
	return out
}

// Last returns the most recent value.
func (w *RollingWindow[T]) Last() (T, bool) {
	var zero T
	if w.count == 0 {
		return zero, false
	}
	return w.buf[(w.head-1+len(w.buf))%len(w.buf)], true
}

// Reset empties the window without changing its capacity.
func (w *RollingWindow[T]) Reset() {
	var zero T
	for i := range w.buf {
		w.buf[i] = zero
	}
	w.head = 0
	w.count = 0
}

// HourlyEarnings accumulates positive currency deltas by local hour of day.
type HourlyEarnings [24]int64

// Add credits delta to hour. Non-positive deltas and out-of-range hours are ignored.
func (h *HourlyEarnings) Add(hour int, delta int64) {
	if delta <= 0 || hour < 0 || hour >= len(h) {
		return
	}
	h[hour] += delta
}

func (h *HourlyEarnings) Reset() {
	*h = HourlyEarnings{}
}

// Total is the sum over all hours.
func (h HourlyEarnings) Total() int64 {
	var sum int64
	for _, v := range h {
		sum += v
	}
	return sum
}

// HourlyReset selects when the hourly earnings bucket is cleared.
type HourlyReset string

const (
	// HourlyResetNever keeps accumulating for the lifetime of the process.
	HourlyResetNever HourlyReset = "never"
	// HourlyResetMidnight clears the bucket on the first sample of a new local day.
	HourlyResetMidnight HourlyReset = "midnight"
)

func (r HourlyReset) IsValid() bool {
	return r == HourlyResetNever || r == HourlyResetMidnight
}

// HistoryState is a read-only copy of everything the aggregator owns.
type HistoryState struct {
	Timestamps []time.Time        `json:"timestamps"`
	Currency   []int64            `json:"currency"`
	Commands   map[string][]int64 `json:"commands"`
	CPU        []float64          `json:"cpu"`
	Memory     []float64          `json:"memory"`
	Latency    []float64          `json:"latency"`
	Hourly     HourlyEarnings     `json:"hourly"`
	Latest     *Snapshot          `json:"latest,omitempty"`
	Samples    int                `json:"samples"`
}
