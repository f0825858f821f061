package ports

import (
	"context"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

// SnapshotSource fetches the current stats snapshot from the bot.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context) (domain.Snapshot, error)
}

// SettingsRemote is the bot's settings API.
type SettingsRemote interface {
	// LoadSettings fetches the full settings document.
	LoadSettings(ctx context.Context) (domain.Settings, error)
	// SaveSettings replaces the bot's settings with doc.
	SaveSettings(ctx context.Context, doc domain.Settings) error
}

// Ingester accumulates snapshots into rolling history.
type Ingester interface {
	Ingest(snap domain.Snapshot)
}

// HistoryReader exposes a consistent copy of the aggregated history.
type HistoryReader interface {
	State() domain.HistoryState
}

// Renderer recomputes every mounted dashboard element.
type Renderer interface {
	RenderAll(ctx context.Context) domain.Dashboard
}

// DashboardSink receives every rendered dashboard.
type DashboardSink interface {
	PublishDashboard(ctx context.Context, d domain.Dashboard)
}

// Notifier delivers transient notices to connected browsers.
type Notifier interface {
	Notify(ctx context.Context, toast domain.Toast)
}

// HealthReporter tracks whether the last poll succeeded.
type HealthReporter interface {
	SetServing(serving bool)
}

// SampleArchiver queues samples for persistence. Implementations must not block.
type SampleArchiver interface {
	Persist(sample domain.Sample)
}
