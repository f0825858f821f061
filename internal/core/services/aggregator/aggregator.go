package aggregator

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"github.com/lcalzada-xor/duskboard/internal/telemetry"
)

// resourceSample keeps cpu, memory and latency in one slot so the three
// series always evict together.
type resourceSample struct {
	cpu     float64
	memory  float64
	latency float64
}

// Aggregator owns the rolling history derived from successive snapshots.
type Aggregator struct {
	mu       sync.RWMutex
	capacity int
	now      func() time.Time
	reset    domain.HourlyReset
	archive  ports.SampleArchiver

	timestamps *domain.RollingWindow[time.Time]
	currency   *domain.RollingWindow[int64]
	commands   map[string]*domain.RollingWindow[int64]
	resources  *domain.RollingWindow[resourceSample]
	hourly     domain.HourlyEarnings

	lastIngest time.Time
	latest     *domain.Snapshot
	samples    int
}

type Option func(*Aggregator)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func WithHistoryLength(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.capacity = n
		}
	}
}

func WithHourlyReset(r domain.HourlyReset) Option {
	return func(a *Aggregator) {
		if r.IsValid() {
			a.reset = r
		}
	}
}

// WithArchive forwards one sample per ingest to the archive.
func WithArchive(archive ports.SampleArchiver) Option {
	return func(a *Aggregator) { a.archive = archive }
}

// New creates an aggregator with empty history.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		capacity: domain.DefaultHistoryLength,
		now:      time.Now,
		reset:    domain.HourlyResetNever,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.allocate()
	return a
}

func (a *Aggregator) allocate() {
	a.timestamps = domain.NewRollingWindow[time.Time](a.capacity)
	a.currency = domain.NewRollingWindow[int64](a.capacity)
	a.commands = make(map[string]*domain.RollingWindow[int64])
	a.resources = domain.NewRollingWindow[resourceSample](a.capacity)
	a.hourly = domain.HourlyEarnings{}
	a.lastIngest = time.Time{}
	a.latest = nil
	a.samples = 0
}

// Ingest appends one snapshot to every window and credits positive currency
// deltas to the current local hour. It never fails on missing fields.
func (a *Aggregator) Ingest(snap domain.Snapshot) {
	now := a.now()

	a.mu.Lock()
	a.timestamps.Push(now)
	a.currency.Push(snap.TotalCurrency)

	for name, cmd := range snap.Commands() {
		w, ok := a.commands[name]
		if !ok {
			w = domain.NewRollingWindow[int64](a.capacity)
			a.commands[name] = w
		}
		w.Push(cmd.Count)
	}

	a.resources.Push(resourceSample{
		cpu:     snap.System.CPU,
		memory:  snap.System.Memory,
		latency: float64(snap.System.Latency),
	})

	if a.reset == domain.HourlyResetMidnight && !a.lastIngest.IsZero() && !sameDay(a.lastIngest, now) {
		slog.Info("Resetting hourly earnings for new day", "day", now.Format("2006-01-02"))
		a.hourly.Reset()
	}
	a.lastIngest = now

	if a.currency.Len() >= 2 {
		vals := a.currency.Values()
		a.hourly.Add(now.Hour(), vals[len(vals)-1]-vals[len(vals)-2])
	}

	latest := snap
	a.latest = &latest
	a.samples++
	hourly := a.hourly
	a.mu.Unlock()

	telemetry.CurrencyTotal.Set(float64(snap.TotalCurrency))
	telemetry.CommandsTotal.Set(float64(snap.TotalCommands))
	publishHourly(hourly)

	if a.archive != nil {
		a.archive.Persist(domain.NewSample(now, snap))
	}
}

// State returns a copy of the current history.
func (a *Aggregator) State() domain.HistoryState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	res := a.resources.Values()
	state := domain.HistoryState{
		Timestamps: a.timestamps.Values(),
		Currency:   a.currency.Values(),
		Commands:   make(map[string][]int64, len(a.commands)),
		CPU:        make([]float64, len(res)),
		Memory:     make([]float64, len(res)),
		Latency:    make([]float64, len(res)),
		Hourly:     a.hourly,
		Samples:    a.samples,
	}
	for name, w := range a.commands {
		state.Commands[name] = w.Values()
	}
	for i, r := range res {
		state.CPU[i] = r.cpu
		state.Memory[i] = r.memory
		state.Latency[i] = r.latency
	}
	if a.latest != nil {
		latest := *a.latest
		state.Latest = &latest
	}
	return state
}

// Latest returns the most recently ingested snapshot.
func (a *Aggregator) Latest() (domain.Snapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.latest == nil {
		return domain.Snapshot{}, false
	}
	return *a.latest, true
}

// Hourly returns a copy of the hourly earnings bucket.
func (a *Aggregator) Hourly() domain.HourlyEarnings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.hourly
}

// Reset clears all history.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	a.allocate()
	hourly := a.hourly
	a.mu.Unlock()

	publishHourly(hourly)
}

// publishHourly mirrors every bucket, so cleared hours read zero too.
func publishHourly(h domain.HourlyEarnings) {
	for hour, v := range h {
		telemetry.HourlyEarnings.WithLabelValues(strconv.Itoa(hour)).Set(float64(v))
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
