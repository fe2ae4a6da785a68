package controllers

import (
	"errors"
	"fmt"
	"time"

	"timing-grid/internal/animation"
	"timing-grid/internal/config"
	"timing-grid/internal/logger"
	"timing-grid/internal/models"
	"timing-grid/internal/timing"
)

const (
	component = "MainController"

	workloadOperation = "workload"
)

// View is the toolkit side of the application as seen by the controller.
// Path and settings callbacks receive models.ErrUserCancelled when the user
// dismisses the dialog.
type View interface {
	TrackBounds() animation.Bounds
	SetElapsed(seconds int)
	RefreshTrack()
	RefreshGrid()
	UpdateStatus(status string)
	ShowError(title string, err error)
	ShowInfo(title, message string)
	ChooseOpenPath(callback func(path string, err error))
	ChooseSavePath(callback func(path string, err error))
	EditRunSettings(current config.RunSettings, callback func(config.RunSettings, error))
}

// MainController binds menu commands to the grid and the animation.
type MainController struct {
	grid      *models.Grid
	animation *animation.Controller
	tracker   *timing.Tracker
	cfg       *config.Config
	cfgPath   string
	log       logger.Logger

	view        View
	workload    func()
	lastElapsed int
}

func NewMainController(
	grid *models.Grid,
	anim *animation.Controller,
	tracker *timing.Tracker,
	cfg *config.Config,
	cfgPath string,
	log logger.Logger,
) *MainController {
	mc := &MainController{
		grid:      grid,
		animation: anim,
		tracker:   tracker,
		cfg:       cfg,
		cfgPath:   cfgPath,
		log:       log,
	}
	mc.workload = mc.printMessage
	return mc
}

// SetView connects the view and routes animation events to it.
func (mc *MainController) SetView(view View) {
	mc.view = view

	mc.animation.SetElapsedHandler(mc.onElapsed)
	mc.animation.SetRedrawHandler(view.RefreshTrack)
	mc.animation.SetFinishedHandler(mc.onRunFinished)
}

// SetWorkload replaces the computation timed on every Run.
func (mc *MainController) SetWorkload(fn func()) {
	mc.workload = fn
}

func (mc *MainController) Settings() config.RunSettings {
	return mc.cfg.Run
}

// Run times the workload, then starts a new animation run.
func (mc *MainController) Run() {
	elapsed := mc.tracker.Measure(workloadOperation, mc.workload)
	mc.view.UpdateStatus(fmt.Sprintf("Execution time: %.6f seconds", elapsed.Seconds()))

	mc.lastElapsed = -1
	mc.animation.Start(mc.cfg.Run.DurationS, mc.cfg.Run.SpeedMps, mc.view.TrackBounds())
	mc.view.RefreshGrid()
}

func (mc *MainController) Save() {
	mc.view.ChooseSavePath(func(path string, err error) {
		if mc.cancelledOrFailed("Save", err) {
			return
		}
		mc.SaveTo(path)
	})
}

func (mc *MainController) SaveTo(path string) error {
	if err := mc.grid.ExportCSV(path); err != nil {
		mc.handleError("Save failed", err)
		mc.view.UpdateStatus("Save failed")
		return err
	}

	mc.log.Info(component, "grid exported", map[string]interface{}{
		"path": path,
		"rows": mc.grid.RowCount(),
	})
	mc.view.UpdateStatus(fmt.Sprintf("Saved %d rows to %s", mc.grid.RowCount(), path))
	return nil
}

func (mc *MainController) Open() {
	mc.view.ChooseOpenPath(func(path string, err error) {
		if mc.cancelledOrFailed("Open", err) {
			return
		}
		mc.OpenFrom(path)
	})
}

// OpenFrom replaces the grid with the file's rows. A run in progress is
// stopped because its row may no longer exist; the next run appends after
// the loaded rows.
func (mc *MainController) OpenFrom(path string) error {
	if err := mc.grid.LoadCSV(path); err != nil {
		mc.handleError("Open failed", err)
		mc.view.UpdateStatus("Open failed")
		return err
	}

	mc.animation.Stop()
	mc.animation.SetActiveRow(mc.grid.RowCount())

	mc.log.Info(component, "grid imported", map[string]interface{}{
		"path": path,
		"rows": mc.grid.RowCount(),
	})
	mc.view.RefreshGrid()
	mc.view.RefreshTrack()
	mc.view.UpdateStatus(fmt.Sprintf("Loaded %d rows from %s", mc.grid.RowCount(), path))
	return nil
}

func (mc *MainController) EditSettings() {
	mc.view.EditRunSettings(mc.cfg.Run, func(settings config.RunSettings, err error) {
		if mc.cancelledOrFailed("Settings", err) {
			return
		}
		mc.ApplySettings(settings)
	})
}

// ApplySettings validates and stores new run settings. They take effect on
// the next Run and are persisted when a config path is set.
func (mc *MainController) ApplySettings(settings config.RunSettings) error {
	if err := settings.Validate(); err != nil {
		mc.handleError("Invalid settings", err)
		return err
	}

	mc.cfg.Run = settings
	mc.view.UpdateStatus(fmt.Sprintf("Duration %d s, speed %g m/s", settings.DurationS, settings.SpeedMps))

	if mc.cfgPath == "" {
		return nil
	}
	if err := config.Save(mc.cfgPath, mc.cfg); err != nil {
		mc.log.Warning(component, "settings not persisted", map[string]interface{}{
			"path":  mc.cfgPath,
			"error": err.Error(),
		})
	}
	return nil
}

func (mc *MainController) About() {
	avg := mc.tracker.AverageTime(workloadOperation)
	mc.view.ShowInfo("About timing-grid",
		fmt.Sprintf("A Fyne example with timing, a grid and an animated marker.\nAverage workload time: %s", avg.Round(time.Microsecond)))
}

func (mc *MainController) onElapsed(seconds int) {
	mc.view.SetElapsed(seconds)
	if seconds != mc.lastElapsed {
		mc.lastElapsed = seconds
		mc.view.RefreshGrid()
	}
}

func (mc *MainController) onRunFinished(row int) {
	mc.view.RefreshGrid()
	mc.view.UpdateStatus(fmt.Sprintf("Run complete, results in row %d", row+1))
}

func (mc *MainController) cancelledOrFailed(command string, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, models.ErrUserCancelled) {
		mc.log.Debug(component, "command cancelled", map[string]interface{}{"command": command})
		return true
	}
	mc.handleError(command+" failed", err)
	return true
}

func (mc *MainController) handleError(title string, err error) {
	mc.log.Error(component, err, map[string]interface{}{"title": title})
	if mc.view != nil {
		mc.view.ShowError(title, err)
	}
}

// printMessage is the dummy computation timed by Run.
func (mc *MainController) printMessage() {
	mc.log.Info(component, "Hello world from the example function", nil)
}
