package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/adapters/bot"
	"github.com/lcalzada-xor/duskboard/internal/adapters/reporting"
	"github.com/lcalzada-xor/duskboard/internal/adapters/storage"
	"github.com/lcalzada-xor/duskboard/internal/adapters/web/handlers"
	webserver "github.com/lcalzada-xor/duskboard/internal/adapters/web/server"
	"github.com/lcalzada-xor/duskboard/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/duskboard/internal/config"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"github.com/lcalzada-xor/duskboard/internal/core/services/aggregator"
	"github.com/lcalzada-xor/duskboard/internal/core/services/audit"
	grpcserver "github.com/lcalzada-xor/duskboard/internal/core/services/grpc"
	"github.com/lcalzada-xor/duskboard/internal/core/services/persistence"
	"github.com/lcalzada-xor/duskboard/internal/core/services/poller"
	"github.com/lcalzada-xor/duskboard/internal/core/services/projector"
	"github.com/lcalzada-xor/duskboard/internal/core/services/settings"
	"github.com/lcalzada-xor/duskboard/internal/mock"
	"github.com/lcalzada-xor/duskboard/internal/telemetry"
)

const archiveQueueSize = 1000

// Application holds the core components of the application.
// It acts as the Facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config             *config.Config
	Bot                *bot.Client
	Aggregator         *aggregator.Aggregator
	Projector          *projector.Projector
	Poller             *poller.Poller
	Settings           *settings.Store
	WebServer          *webserver.Server
	HealthServer       *grpcserver.HealthServer
	AuditService       *audit.AuditService
	PersistenceManager *persistence.PersistenceManager
	Storage            *storage.SQLiteAdapter
	MockIntegration    *mock.MockIntegration
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	// 1. Foundation & Infrastructure
	telemetry.InitMetrics()

	if err := app.initStorage(); err != nil {
		log.Printf("Warning: running without history archive or audit log: %v", err)
	}

	// 2. Bot connection
	botURL := app.Config.BotURL
	if app.Config.Mock {
		app.MockIntegration = mock.NewMockIntegration(app.Config.MockAddr, app.Config.BotPassword, 2*time.Second)
		botURL = "http://" + app.Config.MockAddr
		log.Println("Mock Mode Active: serving a simulated bot on", app.Config.MockAddr)
	}
	app.Bot = bot.NewClient(botURL, app.Config.BotPassword)

	// 3. Domain Services
	layout, err := projector.ParseLayout(app.Config.MountedTargets)
	if err != nil {
		return err
	}

	aggOpts := []aggregator.Option{
		aggregator.WithHistoryLength(app.Config.HistoryLength),
		aggregator.WithHourlyReset(domain.HourlyReset(app.Config.HourlyReset)),
	}
	if app.PersistenceManager != nil {
		aggOpts = append(aggOpts, aggregator.WithArchive(app.PersistenceManager))
	}
	app.Aggregator = aggregator.New(aggOpts...)
	app.Projector = projector.New(app.Aggregator, layout)

	app.HealthServer = grpcserver.NewHealthServer()
	app.Poller = poller.New(app.Bot, app.Aggregator, app.Projector,
		poller.WithHealth(app.HealthServer),
		// zero keeps the fetch timeout equal to the live interval
		poller.WithRequestTimeout(app.Config.RequestTimeout),
	)
	app.Poller.SetInterval(app.Config.PollInterval)

	// 4. Servers & Integration
	ws := websocket.NewWSManager(app.Config.AllowedOrigins, app.Projector)
	app.Projector.AddSink(ws)

	var auditSvc ports.AuditService
	if app.AuditService != nil {
		auditSvc = app.AuditService
	}
	app.Settings = settings.NewStore(app.Bot, auditSvc, ws,
		settings.WithImportMode(domain.ImportMode(app.Config.ImportMode)),
	)
	app.Settings.OnChange(app.applyRefreshInterval)

	app.initServers(ws, auditSvc)
	return nil
}

func (app *Application) initStorage() error {
	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init system storage: %w", err)
	}
	app.Storage = store
	app.AuditService = audit.NewAuditService(store)

	app.PersistenceManager = persistence.NewPersistenceManager(store, archiveQueueSize)
	if !app.Config.PersistHistory {
		app.PersistenceManager.SetEnabled(false)
	}
	return nil
}

func (app *Application) initServers(ws *websocket.WSManager, auditSvc ports.AuditService) {
	// nil interfaces, not typed nil pointers, when the database is unavailable
	var store ports.Storage
	var pc ports.PersistenceController
	if app.Storage != nil {
		store = app.Storage
		pc = app.PersistenceManager
	}

	app.WebServer = &webserver.Server{
		Addr:             app.Config.Addr,
		WSManager:        ws,
		DashboardHandler: handlers.NewDashboardHandler(app.Projector, app.Aggregator, app.Aggregator, app.Settings),
		SettingsHandler:  handlers.NewSettingsHandler(app.Settings),
		ExportHandler:    handlers.NewExportHandler(store),
		ReportHandler:    handlers.NewReportHandler(app.Projector, app.Aggregator, store, app.Settings, reporting.NewPDFExporter()),
		ConfigHandler: handlers.NewConfigHandler(pc, app.Poller, handlers.ServiceInfo{
			BotURL:         app.Bot.BaseURL(),
			HistoryLength:  app.Config.HistoryLength,
			HourlyReset:    app.Config.HourlyReset,
			ImportMode:     app.Config.ImportMode,
			MountedTargets: app.Config.MountedTargets,
		}),
		AuditHandler:  handlers.NewAuditHandler(auditSvc),
		HealthHandler: handlers.NewHealthHandler(app.Poller),
	}
}

// applyRefreshInterval keeps the poll cadence in step with the bot's
// website.refreshInterval setting.
func (app *Application) applyRefreshInterval(doc domain.Settings) {
	secs := doc.Int("website.refreshInterval")
	if secs <= 0 {
		return
	}
	app.Poller.SetInterval(time.Duration(secs) * time.Second)
}

// Run starts the application components and manages their execution lifecycle.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting duskboard components...")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 1. Auxiliary Loops
	if app.MockIntegration != nil {
		app.MockIntegration.Start(ctx)
	}
	if app.PersistenceManager != nil {
		app.PersistenceManager.Start(ctx)
	}

	// 2. Servers
	errChan := make(chan error, 2)
	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	if app.Config.GRPCPort > 0 {
		go func() {
			log.Printf("gRPC health server listening on :%d", app.Config.GRPCPort)
			lis, err := net.Listen("tcp", fmt.Sprintf(":%d", app.Config.GRPCPort))
			if err != nil {
				errChan <- fmt.Errorf("grpc listen error: %w", err)
				return
			}
			if err := app.HealthServer.Serve(ctx, lis); err != nil {
				errChan <- fmt.Errorf("grpc server error: %w", err)
			}
		}()
	}

	// 3. Settings and polling
	go func() {
		if app.MockIntegration != nil {
			time.Sleep(500 * time.Millisecond) // let the mock bot bind
		}
		loadCtx, cancelLoad := context.WithTimeout(ctx, app.Config.LoadTimeout())
		if err := app.Settings.Load(loadCtx); err != nil {
			slog.Warn("Initial settings load failed", "error", err)
		}
		cancelLoad()
		// a loaded refreshInterval has already replaced the configured one
		app.Poller.Start(ctx, 0)
	}()

	slog.Info("Duskboard ready. Press Ctrl+C to terminate.", "addr", app.Config.Addr, "bot", app.Bot.BaseURL())

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case err := <-errChan:
		runErr = err
	}

	cancel()
	app.cleanup()
	return runErr
}

// cleanup waits for queued samples to reach the database before closing it.
func (app *Application) cleanup() {
	slog.Info("Cleaning up resources...")

	if app.PersistenceManager != nil {
		select {
		case <-app.PersistenceManager.Done():
		case <-time.After(10 * time.Second):
			slog.Warn("Timed out waiting for the archive to flush")
		}
	}
	if app.Storage != nil {
		if err := app.Storage.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}
}
