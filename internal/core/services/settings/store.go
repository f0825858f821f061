package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/h2non/filetype"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"github.com/lcalzada-xor/duskboard/internal/telemetry"
)

var _ ports.SettingsService = (*Store)(nil)

// Toast messages shown to the browser.
const (
	MsgLoadFailed     = "Failed to load settings. Please try again."
	MsgSaved          = "Settings saved successfully!"
	MsgSaveFailed     = "Failed to save settings. Please try again."
	MsgExported       = "Settings exported successfully!"
	MsgImported       = "Settings imported successfully!"
	MsgImportInvalid  = "Failed to import settings. Invalid file format."
	exportFilePattern = "owo-dusk-settings-%s.json"
)

// Store owns the in-memory settings document and brokers it to the bot.
type Store struct {
	remote   ports.SettingsRemote
	audit    ports.AuditService
	notifier ports.Notifier
	panels   *Registry
	mode     domain.ImportMode

	mu     sync.RWMutex
	doc    domain.Settings
	loaded bool

	hooksMu sync.Mutex
	hooks   []func(domain.Settings)
}

type Option func(*Store)

func WithImportMode(m domain.ImportMode) Option {
	return func(s *Store) {
		if m.IsValid() {
			s.mode = m
		}
	}
}

func WithRegistry(r *Registry) Option {
	return func(s *Store) { s.panels = r }
}

// NewStore creates an empty store. audit and notifier may be nil.
func NewStore(remote ports.SettingsRemote, audit ports.AuditService, notifier ports.Notifier, opts ...Option) *Store {
	s := &Store{
		remote:   remote,
		audit:    audit,
		notifier: notifier,
		panels:   NewRegistry(),
		mode:     domain.ImportReplace,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to run with a copy of the document after every
// change.
func (s *Store) OnChange(fn func(domain.Settings)) {
	s.hooksMu.Lock()
	s.hooks = append(s.hooks, fn)
	s.hooksMu.Unlock()
}

func (s *Store) Panels() *Registry {
	return s.panels
}

func (s *Store) ImportMode() domain.ImportMode {
	return s.mode
}

// Load replaces the document with the bot's current settings.
func (s *Store) Load(ctx context.Context) error {
	return s.load(ctx, domain.ActionSettingsLoaded)
}

// Reset reloads from the bot, which serves its own defaults.
func (s *Store) Reset(ctx context.Context) error {
	return s.load(ctx, domain.ActionSettingsReset)
}

func (s *Store) load(ctx context.Context, action domain.AuditAction) error {
	doc, err := s.remote.LoadSettings(ctx)
	if err != nil {
		slog.Warn("Failed to load settings", "error", err)
		telemetry.SettingsOps.WithLabelValues("load", "error").Inc()
		s.toast(ctx, MsgLoadFailed, domain.ToastError)
		return fmt.Errorf("load settings: %w: %w", domain.ErrUpstream, err)
	}
	telemetry.SettingsOps.WithLabelValues("load", "ok").Inc()

	s.replace(doc)
	s.record(ctx, action, "settings", "")
	s.notifyChange()
	return nil
}

// Current returns a copy of the document.
func (s *Store) Current() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, domain.ErrSettingsNotLoaded
	}
	return s.doc.Clone(), nil
}

// Save pushes the whole document to the bot.
func (s *Store) Save(ctx context.Context) error {
	return s.save(ctx, domain.ActionSettingsSaved, "settings")
}

func (s *Store) save(ctx context.Context, action domain.AuditAction, target string) error {
	doc, err := s.Current()
	if err != nil {
		return err
	}
	if err := s.remote.SaveSettings(ctx, doc); err != nil {
		slog.Warn("Failed to save settings", "error", err)
		telemetry.SettingsOps.WithLabelValues("save", "error").Inc()
		s.toast(ctx, MsgSaveFailed, domain.ToastError)
		return fmt.Errorf("save settings: %w: %w", domain.ErrUpstream, err)
	}
	telemetry.SettingsOps.WithLabelValues("save", "ok").Inc()
	s.toast(ctx, MsgSaved, domain.ToastSuccess)
	s.record(ctx, action, target, "")
	return nil
}

// Replace swaps in a full document (the general settings form), filling the
// website sections the bot may lack, and saves it.
func (s *Store) Replace(ctx context.Context, doc domain.Settings) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", domain.ErrInvalidField)
	}
	next := doc.Clone()
	next.EnsureWebsiteDefaults()
	s.replace(next)
	s.notifyChange()
	return s.save(ctx, domain.ActionSettingsSaved, "settings")
}

// PanelIndex lists every panel without markup.
func (s *Store) PanelIndex() []domain.PanelView {
	panels := s.panels.Panels()
	out := make([]domain.PanelView, len(panels))
	for i, p := range panels {
		out[i] = domain.PanelView{Kind: p.Kind, Title: p.Title}
	}
	return out
}

// RenderPanel renders one sub-form against the current document.
func (s *Store) RenderPanel(kind domain.PanelKind) (domain.PanelView, error) {
	panel, err := s.panels.Get(kind)
	if err != nil {
		return domain.PanelView{}, err
	}
	doc, err := s.Current()
	if err != nil {
		return domain.PanelView{}, err
	}
	markup, err := panel.Render(doc)
	if err != nil {
		return domain.PanelView{}, err
	}
	return domain.PanelView{Kind: kind, Title: panel.Title, Markup: markup}, nil
}

// ApplyPanel parses a submitted sub-form, applies it and saves.
func (s *Store) ApplyPanel(ctx context.Context, kind domain.PanelKind, form url.Values) error {
	panel, err := s.panels.Get(kind)
	if err != nil {
		return err
	}
	patch, err := panel.Parse(form)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return domain.ErrSettingsNotLoaded
	}
	s.doc.EnsureWebsiteDefaults()
	s.doc.Apply(patch)
	s.mu.Unlock()

	slog.Info("Settings panel applied", "panel", kind, "fields", len(patch))
	s.notifyChange()
	return s.save(ctx, domain.ActionPanelSaved, string(kind))
}

// Export serializes the document for download.
func (s *Store) Export(ctx context.Context, now time.Time) (string, []byte, error) {
	doc, err := s.Current()
	if err != nil {
		return "", nil, err
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encode settings: %w", err)
	}
	name := fmt.Sprintf(exportFilePattern, now.UTC().Format("2006-01-02"))

	telemetry.SettingsOps.WithLabelValues("export", "ok").Inc()
	s.toast(ctx, MsgExported, domain.ToastSuccess)
	s.record(ctx, domain.ActionSettingsExported, name, "")
	return name, body, nil
}

// Import applies an uploaded settings file and saves it. It returns the
// general key paths the imported document does not carry.
func (s *Store) Import(ctx context.Context, data []byte) ([]string, error) {
	imported, err := s.decodeImport(data)
	if err != nil {
		slog.Warn("Rejected settings import", "error", err)
		telemetry.SettingsOps.WithLabelValues("import", "error").Inc()
		s.toast(ctx, MsgImportInvalid, domain.ToastError)
		return nil, err
	}
	missing := imported.MissingPaths(domain.GeneralPaths)

	if s.mode == domain.ImportMerge {
		imported = domain.Merge(domain.DefaultSettings(), imported)
	}
	s.replace(imported)
	s.notifyChange()

	if err := s.save(ctx, domain.ActionSettingsImported, string(s.mode)); err != nil {
		return missing, err
	}
	telemetry.SettingsOps.WithLabelValues("import", "ok").Inc()
	s.toast(ctx, MsgImported, domain.ToastSuccess)

	if len(missing) > 0 {
		slog.Info("Imported settings lack known keys", "missing", len(missing), "mode", s.mode)
	}
	return missing, nil
}

func (s *Store) decodeImport(data []byte) (domain.Settings, error) {
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return nil, fmt.Errorf("%w: binary %s upload", domain.ErrInvalidImport, kind.MIME.Value)
	}
	doc, err := domain.ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	return doc, nil
}

func (s *Store) replace(doc domain.Settings) {
	s.mu.Lock()
	s.doc = doc
	s.loaded = true
	s.mu.Unlock()
}

func (s *Store) notifyChange() {
	doc, err := s.Current()
	if err != nil {
		return
	}
	s.hooksMu.Lock()
	hooks := append([]func(domain.Settings){}, s.hooks...)
	s.hooksMu.Unlock()
	for _, fn := range hooks {
		fn(doc.Clone())
	}
}

func (s *Store) toast(ctx context.Context, msg, level string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, domain.Toast{Message: msg, Level: level})
	}
}

func (s *Store) record(ctx context.Context, action domain.AuditAction, target, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(ctx, action, target, details); err != nil {
		slog.Warn("Failed to write audit entry", "action", action, "error", err)
	}
}
