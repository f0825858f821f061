package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"github.com/lcalzada-xor/duskboard/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultInterval = 10 * time.Second

// Status describes the outcome of recent ticks.
type Status struct {
	Interval    time.Duration `json:"interval"`
	LastSuccess time.Time     `json:"lastSuccess"`
	LastError   string        `json:"lastError,omitempty"`
	Failures    int           `json:"consecutiveFailures"`
}

// Poller fetches a snapshot on a fixed cadence and feeds it through the
// aggregator and projector.
type Poller struct {
	source   ports.SnapshotSource
	ingester ports.Ingester
	renderer ports.Renderer
	health   ports.HealthReporter
	timeout  time.Duration

	interval atomic.Int64
	changed  chan time.Duration

	// tickMu keeps ticks serial even when Tick is called outside the loop.
	tickMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

type Option func(*Poller)

func WithHealth(h ports.HealthReporter) Option {
	return func(p *Poller) { p.health = h }
}

// WithRequestTimeout bounds each fetch. Zero means "same as the interval".
func WithRequestTimeout(d time.Duration) Option {
	return func(p *Poller) { p.timeout = d }
}

func New(source ports.SnapshotSource, ingester ports.Ingester, renderer ports.Renderer, opts ...Option) *Poller {
	p := &Poller{
		source:   source,
		ingester: ingester,
		renderer: renderer,
		changed:  make(chan time.Duration, 1),
	}
	p.interval.Store(int64(DefaultInterval))
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start ticks once immediately and then every interval until ctx is done.
func (p *Poller) Start(ctx context.Context, interval time.Duration) {
	if interval > 0 {
		p.interval.Store(int64(interval))
	}
	slog.Info("Poller started", "interval", p.Interval())

	p.Tick(ctx)

	ticker := time.NewTicker(p.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Poller stopped")
			return
		case d := <-p.changed:
			ticker.Reset(d)
			slog.Info("Poll interval changed", "interval", d)
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// SetInterval changes the cadence of a running loop. Non-positive values are
// ignored.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 || time.Duration(p.interval.Load()) == d {
		return
	}
	p.interval.Store(int64(d))

	// keep only the newest pending change
	select {
	case <-p.changed:
	default:
	}
	select {
	case p.changed <- d:
	default:
	}
}

func (p *Poller) Interval() time.Duration {
	return time.Duration(p.interval.Load())
}

// Tick performs exactly one fetch. A failed fetch leaves all state untouched.
func (p *Poller) Tick(ctx context.Context) error {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()

	start := time.Now()
	ctx, span := otel.Tracer("duskboard/poller").Start(ctx, "Tick",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("poll.interval", p.Interval().String())),
	)
	defer span.End()

	timeout := p.timeout
	if timeout <= 0 {
		timeout = p.Interval()
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	snap, err := p.source.FetchSnapshot(fetchCtx)
	cancel()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		slog.Warn("Failed to fetch stats", "error", err)
		telemetry.PollsTotal.WithLabelValues("error").Inc()
		p.setHealth(false)

		p.statusMu.Lock()
		p.status.LastError = err.Error()
		p.status.Failures++
		p.statusMu.Unlock()
		return err
	}

	span.SetAttributes(
		attribute.Int64("stats.total_commands", snap.TotalCommands),
		attribute.Int64("stats.total_currency", snap.TotalCurrency),
	)

	p.ingester.Ingest(snap)
	p.renderer.RenderAll(ctx)

	telemetry.PollsTotal.WithLabelValues("ok").Inc()
	telemetry.PollDuration.Observe(time.Since(start).Seconds())
	p.setHealth(true)

	p.statusMu.Lock()
	p.status.LastSuccess = time.Now()
	p.status.LastError = ""
	p.status.Failures = 0
	p.statusMu.Unlock()

	slog.Debug("Poll complete", "commands", snap.TotalCommands, "currency", snap.TotalCurrency)
	return nil
}

func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	s := p.status
	s.Interval = p.Interval()
	return s
}

func (p *Poller) setHealth(ok bool) {
	if p.health != nil {
		p.health.SetServing(ok)
	}
}
