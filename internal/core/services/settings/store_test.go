package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) LoadSettings(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	doc, _ := args.Get(0).(domain.Settings)
	return doc, args.Error(1)
}

func (m *MockRemote) SaveSettings(ctx context.Context, doc domain.Settings) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	args := m.Called(ctx, action, target, details)
	return args.Error(0)
}

func (m *MockAudit) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// toastRecorder collects notices.
type toastRecorder struct {
	mu     sync.Mutex
	toasts []domain.Toast
}

func (r *toastRecorder) Notify(_ context.Context, t domain.Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

func (r *toastRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.toasts))
	for i, t := range r.toasts {
		out[i] = t.Message
	}
	return out
}

func newTestStore(opts ...Option) (*Store, *MockRemote, *MockAudit, *toastRecorder) {
	remote := new(MockRemote)
	audit := new(MockAudit)
	audit.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	toasts := &toastRecorder{}
	return NewStore(remote, audit, toasts, opts...), remote, audit, toasts
}

func TestLoad(t *testing.T) {
	store, remote, audit, _ := newTestStore()
	remote.On("LoadSettings", mock.Anything).Return(domain.Settings{"setprefix": "owo"}, nil).Once()

	var hooked domain.Settings
	store.OnChange(func(s domain.Settings) { hooked = s })

	require.NoError(t, store.Load(context.Background()))

	doc, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "owo", doc.Text("setprefix"))
	assert.Equal(t, "owo", hooked.Text("setprefix"))
	audit.AssertCalled(t, "Log", mock.Anything, domain.ActionSettingsLoaded, "settings", "")
}

func TestLoad_Failure(t *testing.T) {
	store, remote, _, toasts := newTestStore()
	remote.On("LoadSettings", mock.Anything).Return(nil, errors.New("unreachable")).Once()

	err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{MsgLoadFailed}, toasts.messages())

	_, err = store.Current()
	assert.ErrorIs(t, err, domain.ErrSettingsNotLoaded)
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	store, remote, _, _ := newTestStore()
	remote.On("LoadSettings", mock.Anything).Return(domain.Settings{"setprefix": "owo"}, nil)
	require.NoError(t, store.Load(context.Background()))

	doc, _ := store.Current()
	doc.Set("setprefix", "changed")

	again, _ := store.Current()
	assert.Equal(t, "owo", again.Text("setprefix"))
}

func TestSave(t *testing.T) {
	store, remote, _, toasts := newTestStore()
	remote.On("LoadSettings", mock.Anything).Return(domain.Settings{"a": true}, nil)
	remote.On("SaveSettings", mock.Anything, domain.Settings{"a": true}).Return(nil).Once()
	remote.On("SaveSettings", mock.Anything, domain.Settings{"a": true}).Return(errors.New("503")).Once()
	require.NoError(t, store.Load(context.Background()))

	assert.NoError(t, store.Save(context.Background()))
	assert.Error(t, store.Save(context.Background()))
	assert.Equal(t, []string{MsgSaved, MsgSaveFailed}, toasts.messages())
}

func TestSave_NotLoaded(t *testing.T) {
	store, remote, _, _ := newTestStore()
	assert.ErrorIs(t, store.Save(context.Background()), domain.ErrSettingsNotLoaded)
	remote.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
}

func TestReplace_FillsWebsiteDefaults(t *testing.T) {
	store, remote, _, _ := newTestStore()
	remote.On("SaveSettings", mock.Anything, mock.MatchedBy(func(doc domain.Settings) bool {
		return doc.Text("website.appearance.theme") == "dark" &&
			doc.Bool("website.features.dashboard") &&
			doc.Int("website.security.session_timeout") == 3600 &&
			doc.Text("setprefix") == "!"
	})).Return(nil).Once()

	err := store.Replace(context.Background(), domain.Settings{"setprefix": "!", "website": map[string]any{"port": 2609}})
	require.NoError(t, err)
	remote.AssertExpectations(t)
}

func TestImport_ReplaceThenRender(t *testing.T) {
	store, remote, audit, toasts := newTestStore()
	remote.On("SaveSettings", mock.Anything, domain.Settings{"setprefix": "!"}).Return(nil).Once()

	missing, err := store.Import(context.Background(), []byte(`{"setprefix":"!"}`))
	require.NoError(t, err)
	assert.Contains(t, missing, "offlineStatus")
	assert.Contains(t, missing, "commands.hunt.enabled")
	assert.NotContains(t, missing, "setprefix")
	assert.Len(t, missing, len(domain.GeneralPaths)-1)

	doc, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{"setprefix": "!"}, doc)

	for _, kind := range domain.PanelKinds() {
		view, err := store.RenderPanel(kind)
		require.NoError(t, err, "panel %s", kind)
		assert.NotEmpty(t, view.Markup)
	}

	assert.Equal(t, []string{MsgSaved, MsgImported}, toasts.messages())
	audit.AssertCalled(t, "Log", mock.Anything, domain.ActionSettingsImported, "replace", "")
	remote.AssertExpectations(t)
}

func TestImport_Merge(t *testing.T) {
	store, remote, _, _ := newTestStore(WithImportMode(domain.ImportMerge))
	remote.On("SaveSettings", mock.Anything, mock.Anything).Return(nil).Once()

	missing, err := store.Import(context.Background(), []byte(`{"setprefix":"!","commands":{"hunt":{"enabled":false}}}`))
	require.NoError(t, err)
	assert.Contains(t, missing, "offlineStatus")

	doc, _ := store.Current()
	assert.Equal(t, "!", doc.Text("setprefix"))
	assert.False(t, doc.Bool("commands.hunt.enabled"))
	assert.True(t, doc.Bool("commands.battle.enabled"))
	assert.Equal(t, 15.0, doc.Slice("commands.hunt.cooldown")[0])
}

func TestImport_Invalid(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}
	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("this is not json")},
		{"array", []byte(`[1,2,3]`)},
		{"null", []byte(`null`)},
		{"empty", nil},
		{"binary", png},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, remote, _, toasts := newTestStore()
			remote.On("LoadSettings", mock.Anything).Return(domain.Settings{"setprefix": "owo"}, nil)
			require.NoError(t, store.Load(context.Background()))

			_, err := store.Import(context.Background(), tt.data)
			assert.ErrorIs(t, err, domain.ErrInvalidImport)
			assert.Equal(t, []string{MsgImportInvalid}, toasts.messages())
			remote.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)

			doc, _ := store.Current()
			assert.Equal(t, "owo", doc.Text("setprefix"))
		})
	}
}

func TestExport(t *testing.T) {
	store, remote, _, toasts := newTestStore()
	remote.On("LoadSettings", mock.Anything).Return(domain.Settings{"setprefix": "owo", "website": map[string]any{"port": json.Number("2609")}}, nil)
	require.NoError(t, store.Load(context.Background()))

	now := time.Date(2024, 5, 1, 23, 30, 0, 0, time.FixedZone("X", -5*3600))
	name, body, err := store.Export(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "owo-dusk-settings-2024-05-02.json", name)
	assert.True(t, strings.Contains(string(body), "\n  \"setprefix\": \"owo\""))
	assert.Contains(t, string(body), `"port": 2609`)
	assert.Equal(t, []string{MsgExported}, toasts.messages())

	roundTrip, err := domain.ParseSettings(body)
	require.NoError(t, err)
	assert.Equal(t, "owo", roundTrip.Text("setprefix"))
}

func TestApplyPanel(t *testing.T) {
	store, remote, audit, _ := newTestStore()
	remote.On("LoadSettings", mock.Anything).Return(domain.DefaultSettings(), nil)
	remote.On("SaveSettings", mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, store.Load(context.Background()))

	err := store.ApplyPanel(context.Background(), domain.PanelChannelSwitcher, url.Values{
		"channel_switcher.channels":            {"111, 222"},
		"channel_switcher.switch_interval_min": {"7"},
		"channel_switcher.switch_interval_max": {"9"},
	})
	require.NoError(t, err)

	doc, _ := store.Current()
	assert.Equal(t, []any{int64(111), int64(222)}, doc.Slice("channel_switcher.channels"))
	assert.Equal(t, []any{int64(7), int64(9)}, doc.Slice("channel_switcher.switch_interval"))
	// untouched by the panel
	assert.False(t, doc.Bool("channel_switcher.enabled"))
	assert.True(t, doc.Has("channel_switcher.threads.enabled"))
	audit.AssertCalled(t, "Log", mock.Anything, domain.ActionPanelSaved, "channelSwitcher", "")
}

func TestApplyPanel_Errors(t *testing.T) {
	store, remote, _, _ := newTestStore()

	assert.ErrorIs(t, store.ApplyPanel(context.Background(), "bogus", nil), domain.ErrUnknownPanel)
	assert.ErrorIs(t, store.ApplyPanel(context.Background(), domain.PanelHunt, url.Values{}), domain.ErrSettingsNotLoaded)

	remote.On("LoadSettings", mock.Anything).Return(domain.DefaultSettings(), nil)
	require.NoError(t, store.Load(context.Background()))
	err := store.ApplyPanel(context.Background(), domain.PanelWebsiteAppearance, url.Values{"website.appearance.accent_color": {"red"}})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	remote.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
}

func TestApplyPanel_EnsuresWebsiteDefaults(t *testing.T) {
	store, remote, _, _ := newTestStore()
	remote.On("LoadSettings", mock.Anything).Return(domain.Settings{"website": map[string]any{"port": 2609}}, nil)
	remote.On("SaveSettings", mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, store.Load(context.Background()))

	require.NoError(t, store.ApplyPanel(context.Background(), domain.PanelWebsiteFeatures, url.Values{"website.features.logs": {"on"}}))

	doc, _ := store.Current()
	assert.True(t, doc.Bool("website.features.logs"))
	assert.False(t, doc.Bool("website.features.restart"))
	assert.Equal(t, "#70af87", doc.Text("website.appearance.accent_color"))
	assert.Equal(t, "admin", doc.Text("website.security.username"))
}

func TestReset_ReloadsFromBot(t *testing.T) {
	store, remote, audit, _ := newTestStore()
	remote.On("LoadSettings", mock.Anything).Return(domain.Settings{"setprefix": "owo"}, nil)

	require.NoError(t, store.Reset(context.Background()))
	audit.AssertCalled(t, "Log", mock.Anything, domain.ActionSettingsReset, "settings", "")
}

func TestOnChange_SeesRefreshInterval(t *testing.T) {
	store, remote, _, _ := newTestStore()
	remote.On("SaveSettings", mock.Anything, mock.Anything).Return(nil)

	var seconds int64
	store.OnChange(func(s domain.Settings) { seconds = s.Int("website.refreshInterval") })

	_, err := store.Import(context.Background(), []byte(`{"website":{"refreshInterval":30}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(30), seconds)
}
