package app

import (
	"fmt"
	"runtime"
	"time"

	"timing-grid/internal/animation"
	"timing-grid/internal/config"
	"timing-grid/internal/controllers"
	"timing-grid/internal/logger"
	"timing-grid/internal/models"
	"timing-grid/internal/shutdown"
	"timing-grid/internal/timing"
	"timing-grid/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "timing-grid"
	AppTitle   = "Timing Example with Grid"
	AppID      = "com.example.timinggrid"
	AppVersion = "1.0.0"

	shutdownTimeout = 5 * time.Second
)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	cfg     *config.Config
	cfgPath string
	logger  logger.Logger

	grid       *models.Grid
	ticker     *animation.FyneTicker
	animation  *animation.Controller
	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager

	// dispatch runs fn on the main goroutine.
	dispatch func(fn func())
}

// NewApplication loads configuration from cfgPath and builds the window.
// An empty cfgPath runs with defaults and never persists settings.
func NewApplication(cfgPath string) (*Application, error) {
	return newApplication(app.NewWithID(AppID), cfgPath)
}

func newApplication(fyneApp fyne.App, cfgPath string) (*Application, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	window := fyneApp.NewWindow(AppTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	grid := models.NewSeededGrid()
	ticker := animation.NewFyneTicker()
	anim := animation.NewController(grid, ticker, animation.WithLogger(log))
	tracker := timing.NewTracker(log)

	controller := controllers.NewMainController(grid, anim, tracker, cfg, cfgPath, log)
	view := views.NewMainView(window, grid, anim.PaintData)
	controller.SetView(view)

	a := &Application{
		fyneApp:    fyneApp,
		window:     window,
		cfg:        cfg,
		cfgPath:    cfgPath,
		logger:     log,
		grid:       grid,
		ticker:     ticker,
		animation:  anim,
		controller: controller,
		view:       view,
		shutdown:   shutdown.NewManager(log, shutdownTimeout),
		dispatch:   fyne.Do,
	}

	a.setupMenus()
	a.setupShutdown()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":     AppVersion,
		"config_path": cfgPath,
		"go_version":  runtime.Version(),
		"duration_s":  cfg.Run.DurationS,
		"speed_mps":   cfg.Run.SpeedMps,
	})
	return a, nil
}

func (a *Application) setupShutdown() {
	a.shutdown.Register("ticker", shutdown.Func(a.ticker.Stop))
	a.shutdown.Register("config", shutdown.Func(a.saveConfig))

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		a.beginShutdown()
		a.window.Close()
	})
}

// beginShutdown records the window size and runs the shutdown sequence.
// It must run on the main goroutine.
func (a *Application) beginShutdown() {
	size := a.window.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		a.cfg.Window = config.WindowConfig{Width: size.Width, Height: size.Height}
	}
	a.animation.Stop()
	a.shutdown.Shutdown()
}

func (a *Application) saveConfig() {
	if a.cfgPath == "" {
		return
	}
	if err := config.Save(a.cfgPath, a.cfg); err != nil {
		a.logger.Error("Application", err, map[string]interface{}{"path": a.cfgPath})
	}
}

// handleSignal runs on the signal goroutine and moves the whole shutdown,
// window size and config included, onto the main goroutine.
func (a *Application) handleSignal() {
	a.dispatch(a.quit)
}

func (a *Application) quit() {
	a.beginShutdown()
	a.fyneApp.Quit()
}

// Run shows the window and blocks until the application exits.
func (a *Application) Run() error {
	a.shutdown.Listen(a.handleSignal)

	a.view.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
