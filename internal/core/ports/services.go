package ports

import (
	"context"
	"net/url"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

// DashboardReader returns the most recently rendered dashboard.
type DashboardReader interface {
	Latest() (domain.Dashboard, bool)
}

// SnapshotReader returns the most recently ingested raw snapshot.
type SnapshotReader interface {
	Latest() (domain.Snapshot, bool)
}

// SettingsService is the settings store as seen by the web layer.
type SettingsService interface {
	Current() (domain.Settings, error)
	Replace(ctx context.Context, doc domain.Settings) error
	Reset(ctx context.Context) error

	PanelIndex() []domain.PanelView
	RenderPanel(kind domain.PanelKind) (domain.PanelView, error)
	ApplyPanel(ctx context.Context, kind domain.PanelKind, form url.Values) error

	// Export returns the download file name and body.
	Export(ctx context.Context, now time.Time) (string, []byte, error)
	// Import applies an uploaded document and returns the general key
	// paths it lacked.
	Import(ctx context.Context, data []byte) ([]string, error)
}

// PersistenceController toggles the sample archive.
type PersistenceController interface {
	IsEnabled() bool
	SetEnabled(enabled bool)
}
