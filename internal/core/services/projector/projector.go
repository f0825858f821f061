package projector

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Projector turns aggregator state into the dashboard view model.
type Projector struct {
	reader ports.HistoryReader
	layout Layout
	now    func() time.Time

	sinksMu sync.RWMutex
	sinks   []ports.DashboardSink

	latest atomic.Pointer[domain.Dashboard]
}

// New binds the projector to a layout. A nil layout mounts every target.
func New(reader ports.HistoryReader, layout Layout, sinks ...ports.DashboardSink) *Projector {
	if layout == nil {
		layout = FullLayout()
	}
	return &Projector{
		reader: reader,
		layout: layout,
		now:    time.Now,
		sinks:  sinks,
	}
}

// SetClock overrides time.Now, used for "time ago" columns.
func (p *Projector) SetClock(now func() time.Time) {
	p.now = now
}

// AddSink registers another receiver for rendered dashboards.
func (p *Projector) AddSink(s ports.DashboardSink) {
	p.sinksMu.Lock()
	p.sinks = append(p.sinks, s)
	p.sinksMu.Unlock()
}

func (p *Projector) Layout() Layout {
	return p.layout
}

// RenderAll recomputes every mounted target from the current history and the
// latest snapshot, stores the result and publishes it.
func (p *Projector) RenderAll(ctx context.Context) domain.Dashboard {
	ctx, span := otel.Tracer("duskboard/projector").Start(ctx, "RenderAll")
	defer span.End()

	state := p.reader.State()
	var snap domain.Snapshot
	if state.Latest != nil {
		snap = *state.Latest
	}

	now := p.now()
	d := domain.NewDashboard(uuid.NewString(), now)
	span.SetAttributes(
		attribute.String("dashboard.revision", d.Revision),
		attribute.Int("history.samples", state.Samples),
	)

	if p.layout.Mounted(domain.TargetIncomeChart) {
		d.Charts[domain.TargetIncomeChart] = incomeChart(snap)
	}
	if p.layout.Mounted(domain.TargetSuccessChart) {
		d.Charts[domain.TargetSuccessChart] = successChart(snap)
	}
	if p.layout.Mounted(domain.TargetHourlyChart) {
		d.Charts[domain.TargetHourlyChart] = hourlyChart(state.Hourly)
	}
	if p.layout.Mounted(domain.TargetResourceChart) {
		d.Charts[domain.TargetResourceChart] = resourceChart(state)
	}

	p.fillSummary(&d, snap)

	if p.layout.Mounted(domain.TargetCommandTable) {
		d.CommandTable = commandTable(snap, now)
	}
	if p.layout.Mounted(domain.TargetTimeline) {
		d.Timeline = timeline(snap)
	}
	if p.layout.Mounted(domain.TargetPets) {
		d.Pets = petRoster(snap)
	}

	p.latest.Store(&d)

	p.sinksMu.RLock()
	sinks := append([]ports.DashboardSink(nil), p.sinks...)
	p.sinksMu.RUnlock()
	for _, s := range sinks {
		s.PublishDashboard(ctx, d)
	}
	return d
}

// Latest returns the last rendered dashboard.
func (p *Projector) Latest() (domain.Dashboard, bool) {
	d := p.latest.Load()
	if d == nil {
		return domain.Dashboard{}, false
	}
	return *d, true
}
