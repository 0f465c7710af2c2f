// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/audio/beepengine"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/spectrum"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/surface/raster"
	fyneui "github.com/tejashwikalptaru/wavescope/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/wavescope/internal/config"
	"github.com/tejashwikalptaru/wavescope/internal/logger"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
	"github.com/tejashwikalptaru/wavescope/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for the CLI
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App
	config  Config

	// Infrastructure
	eventBus  *eventbus.SyncEventBus
	player    ports.Player
	clock     ports.Clock
	surface   *raster.Surface
	scheduler *fyneui.AnimationScheduler

	// Services
	visualizer        *service.VisualizationService
	playbackService   *service.PlaybackService
	preferenceService *service.PreferenceService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// Settings are the engine, analyser and logging settings
	Settings *config.Config

	// TrackPath is played as soon as the window is up (optional)
	TrackPath string

	// UseMockAudio replaces the speaker and analyser with a silent player
	// and a synthetic spectrum
	UseMockAudio bool

	// Logger overrides the logger built from Settings (optional)
	Logger *slog.Logger

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	return Config{
		AppID:    "io.github.tejashwikalptaru.wavescope",
		Settings: config.DefaultConfig(),
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(cfg Config) (*Application, error) {
	if cfg.Settings == nil {
		cfg.Settings = config.DefaultConfig()
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	engineCfg, err := cfg.Settings.Engine()
	if err != nil {
		return nil, err
	}

	app := &Application{config: cfg}

	// Step 1: Logger
	app.logger = cfg.Logger
	if app.logger == nil {
		app.logger = logger.NewLogger(cfg.Settings.LoggerConfig())
	}
	app.logger.Info("initializing application",
		slog.String("app_id", cfg.AppID),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 2: Fyne application
	if cfg.TestFyneApp != nil {
		app.fyneApp = cfg.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(cfg.AppID)
	}

	// Step 3: Event bus and clock
	app.eventBus = eventbus.NewSyncEventBus(app.logger.With(slog.String("component", "eventbus")))
	app.clock = scheduler.NewMonotonicClock()

	// Step 4: Audio
	var source ports.SpectrumSource
	if cfg.UseMockAudio {
		player := mock.NewPlayer()
		player.SetLogger(app.logger.With(slog.String("engine", "mock")))
		app.player = player
		source = mock.NewSyntheticSpectrum(engineCfg.BufferLength, app.clock)
	} else {
		player := beepengine.NewPlayer(app.logger, max(beepengine.DefaultTapSize, 2*engineCfg.BufferLength))
		analyser, err := spectrum.NewAnalyser(player.Tap(), cfg.Settings.AnalyserConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create analyser: %w", err)
		}
		app.player = player
		source = analyser
	}

	// Step 5: Drawing surface and frame pacing
	app.surface = raster.New(cfg.Settings.Width, cfg.Settings.Height)
	visualizerWidget := widgets.NewVisualizer(app.surface)
	app.scheduler = fyneui.NewAnimationScheduler(app.clock, visualizerWidget.Refresh)

	// Step 6: Services
	app.visualizer, err = service.NewVisualizationService(app.logger, engineCfg, service.Dependencies{
		Spectrum:  source,
		Playback:  app.player,
		Scheduler: app.scheduler,
		Clock:     app.clock,
		Bus:       app.eventBus,
		Surface:   app.surface,
	})
	if err != nil {
		_ = app.player.Close()
		return nil, err
	}

	visualizerWidget.SetOnResize(func(width, height float64) {
		if err := app.visualizer.Resize(width, height); err != nil {
			app.logger.Warn("failed to resize surface", slog.Any("error", err))
		}
	})

	app.playbackService = service.NewPlaybackService(app.logger, app.player, app.eventBus, app.visualizer, 0)
	app.preferenceService = service.NewPreferenceService(app.logger, memory.NewPreferencesRepository())

	// Step 7: UI
	app.mainWindow = fyneui.NewMainWindow(
		app.fyneApp,
		app.logger,
		visualizerWidget,
		float32(cfg.Settings.Width),
		float32(cfg.Settings.Height),
	)
	app.presenter = fyneui.NewPresenter(
		app.logger,
		app.playbackService,
		app.visualizer,
		app.preferenceService,
		app.eventBus,
		app.mainWindow,
	)
	app.mainWindow.SetPresenter(app.presenter)

	app.fyneApp.Lifecycle().SetOnStarted(app.onStarted)

	return app, nil
}

// onStarted runs on the Fyne main goroutine once the app is up.
func (a *Application) onStarted() {
	a.scheduler.Start()

	if a.config.TrackPath == "" {
		return
	}
	if err := a.presenter.OnFileOpened(a.config.TrackPath); err != nil {
		a.logger.Error("failed to play track", slog.String("path", a.config.TrackPath), slog.Any("error", err))
	}
}

// Run shows the window and blocks until it is closed.
func (a *Application) Run() error {
	a.logger.Info("wavescope started")
	a.mainWindow.ShowAndRun()
	return nil
}

// Shutdown gracefully shuts down the application. It is safe to call more
// than once; only the first call does any work.
func (a *Application) Shutdown() error {
	var err error
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		if a.presenter != nil {
			a.presenter.Shutdown()
		}
		a.scheduler.Stop()

		// Stops the visualizer and closes the player.
		if shutdownErr := a.playbackService.Shutdown(); shutdownErr != nil {
			a.logger.Warn("failed to shutdown playback service", slog.Any("error", shutdownErr))
			err = shutdownErr
		}

		if closeErr := a.eventBus.Close(); closeErr != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", closeErr))
		}

		a.logger.Info("application shutdown complete")
	})
	return err
}

// GetEventBus returns the application event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// GetServices returns the application services.
func (a *Application) GetServices() (*service.VisualizationService, *service.PlaybackService, *service.PreferenceService) {
	return a.visualizer, a.playbackService, a.preferenceService
}

// GetPresenter returns the presenter driving the main window.
func (a *Application) GetPresenter() *fyneui.Presenter {
	return a.presenter
}
