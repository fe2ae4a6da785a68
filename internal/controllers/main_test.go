package controllers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timing-grid/internal/animation"
	"timing-grid/internal/config"
	"timing-grid/internal/logger"
	"timing-grid/internal/models"
	"timing-grid/internal/timing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTicker struct{ armed bool }

func (s *stubTicker) Start(time.Duration, func()) { s.armed = true }
func (s *stubTicker) Stop()                       { s.armed = false }

type fakeView struct {
	bounds    animation.Bounds
	elapsed   []int
	statuses  []string
	errors    []error
	infos     []string
	gridDraws int
	trackDraw int

	openPath  string
	savePath  string
	dialogErr error
	settings  config.RunSettings
}

func (v *fakeView) TrackBounds() animation.Bounds     { return v.bounds }
func (v *fakeView) SetElapsed(s int)                  { v.elapsed = append(v.elapsed, s) }
func (v *fakeView) RefreshTrack()                     { v.trackDraw++ }
func (v *fakeView) RefreshGrid()                      { v.gridDraws++ }
func (v *fakeView) UpdateStatus(s string)             { v.statuses = append(v.statuses, s) }
func (v *fakeView) ShowError(title string, err error) { v.errors = append(v.errors, err) }
func (v *fakeView) ShowInfo(title, message string)    { v.infos = append(v.infos, message) }

func (v *fakeView) ChooseOpenPath(cb func(string, error)) { cb(v.openPath, v.dialogErr) }
func (v *fakeView) ChooseSavePath(cb func(string, error)) { cb(v.savePath, v.dialogErr) }

func (v *fakeView) EditRunSettings(_ config.RunSettings, cb func(config.RunSettings, error)) {
	cb(v.settings, v.dialogErr)
}

func (v *fakeView) lastStatus() string {
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

type fixture struct {
	mc     *MainController
	grid   *models.Grid
	anim   *animation.Controller
	ticker *stubTicker
	view   *fakeView
	cfg    *config.Config
}

func newFixture(t *testing.T, cfgPath string) *fixture {
	t.Helper()
	grid := models.NewSeededGrid()
	ticker := &stubTicker{}
	anim := animation.NewController(grid, ticker)
	cfg := config.DefaultConfig()
	view := &fakeView{bounds: animation.Bounds{StartX: 10, EndX: 110}}

	mc := NewMainController(grid, anim, timing.NewTracker(nil), cfg, cfgPath, logger.NoOpLogger{})
	mc.SetView(view)

	return &fixture{mc: mc, grid: grid, anim: anim, ticker: ticker, view: view, cfg: cfg}
}

func TestRunTimesWorkloadAndStartsAnimation(t *testing.T) {
	f := newFixture(t, "")

	calls := 0
	f.mc.SetWorkload(func() { calls++ })
	f.mc.Run()

	assert.Equal(t, 1, calls)
	assert.Regexp(t, `^Execution time: \d+\.\d{6} seconds$`, f.view.statuses[0])
	assert.True(t, f.anim.Running())
	assert.True(t, f.ticker.armed)
	assert.Equal(t, 2, f.grid.RowCount())

	pd := f.anim.PaintData()
	assert.Equal(t, 10.0, pd.StartX)
	assert.Equal(t, 110.0, pd.EndX)
	assert.Equal(t, []int{0}, f.view.elapsed)
}

func TestRunToCompletionReportsRow(t *testing.T) {
	f := newFixture(t, "")
	f.cfg.Run = config.RunSettings{DurationS: 10, SpeedMps: 10}
	f.mc.Run()

	for f.anim.Running() {
		f.anim.OnTick()
	}

	assert.False(t, f.ticker.armed)
	assert.Equal(t, "Run complete, results in row 2", f.view.lastStatus())
	for col := 0; col < f.grid.ColumnCount(); col++ {
		assert.NotEmpty(t, f.grid.Cell(1, col))
	}
	assert.Equal(t, 10, f.view.elapsed[len(f.view.elapsed)-1])
	// second 0 at start, Run itself, seconds 1..10, completion
	assert.Equal(t, 1+1+10+1, f.view.gridDraws)
}

func TestSaveWritesCSV(t *testing.T) {
	f := newFixture(t, "")
	f.view.savePath = filepath.Join(t.TempDir(), "out.csv")

	f.mc.Save()

	data, err := os.ReadFile(f.view.savePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "x1,x2,x3")
	assert.Empty(t, f.view.errors)
	assert.Contains(t, f.view.lastStatus(), "Saved 1 rows")
}

func TestSaveFailureShowsIOError(t *testing.T) {
	f := newFixture(t, "")
	f.view.savePath = t.TempDir()

	f.mc.Save()

	require.Len(t, f.view.errors, 1)
	assert.ErrorIs(t, f.view.errors[0], models.ErrIO)
	assert.Equal(t, "Save failed", f.view.lastStatus())
}

func TestCancelledDialogsAreSilent(t *testing.T) {
	f := newFixture(t, "")
	f.view.dialogErr = models.ErrUserCancelled

	f.mc.Save()
	f.mc.Open()
	f.mc.EditSettings()

	assert.Empty(t, f.view.errors)
	assert.Empty(t, f.view.statuses)
	assert.Equal(t, 1, f.grid.RowCount())
	assert.Equal(t, config.DefaultConfig().Run, f.cfg.Run)
}

func TestDialogFailureIsReported(t *testing.T) {
	f := newFixture(t, "")
	f.view.dialogErr = errors.New("portal unavailable")

	f.mc.Open()

	require.Len(t, f.view.errors, 1)
	assert.EqualError(t, f.view.errors[0], "portal unavailable")
}

func TestOpenReplacesGridAndStopsRun(t *testing.T) {
	f := newFixture(t, "")
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("x1\n1,2\n3,4\n5\n"), 0o644))
	f.view.openPath = path

	f.mc.Run()
	f.mc.Open()

	assert.False(t, f.anim.Running())
	assert.False(t, f.ticker.armed)
	assert.Equal(t, 3, f.grid.RowCount())
	assert.Equal(t, "4", f.grid.Cell(1, 1))
	assert.Equal(t, 3, f.anim.ActiveRow())
	assert.Equal(t, "Loaded 3 rows from "+path, f.view.lastStatus())
}

func TestOpenMissingFileLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t, "")
	f.view.openPath = filepath.Join(t.TempDir(), "missing.csv")

	f.mc.Run()
	f.mc.Open()

	require.Len(t, f.view.errors, 1)
	assert.ErrorIs(t, f.view.errors[0], models.ErrIO)
	assert.True(t, f.anim.Running())
	assert.Equal(t, 2, f.grid.RowCount())
	assert.Equal(t, models.SeedRow, f.grid.Row(0))
}

func TestOpenReadFailureKeepsRunAlive(t *testing.T) {
	f := newFixture(t, "")
	f.cfg.Run = config.RunSettings{DurationS: 10, SpeedMps: 10}
	// a directory opens but cannot be read
	f.view.openPath = t.TempDir()

	f.mc.Run()
	f.mc.Open()

	require.Len(t, f.view.errors, 1)
	assert.ErrorIs(t, f.view.errors[0], models.ErrIO)
	assert.Equal(t, "Open failed", f.view.lastStatus())
	require.Equal(t, 2, f.grid.RowCount())
	assert.Equal(t, models.SeedRow, f.grid.Row(0))
	assert.True(t, f.anim.Running())

	require.NotPanics(t, func() {
		for f.anim.Running() {
			f.anim.OnTick()
		}
	})
	assert.NotEmpty(t, f.grid.Cell(1, 0))
	assert.Equal(t, "Run complete, results in row 2", f.view.lastStatus())
}

func TestOpenLongLine(t *testing.T) {
	f := newFixture(t, "")
	long := strings.Repeat("9", 70000)
	path := filepath.Join(t.TempDir(), "long.csv")
	require.NoError(t, os.WriteFile(path, []byte("x1\n"+long+"\n"), 0o644))
	f.view.openPath = path

	f.mc.Run()
	f.mc.Open()

	assert.Empty(t, f.view.errors)
	require.Equal(t, 1, f.grid.RowCount())
	assert.Equal(t, long, f.grid.Cell(0, 0))
	assert.False(t, f.anim.Running())
}

func TestEditSettingsAppliesAndPersists(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	f := newFixture(t, cfgPath)
	f.view.settings = config.RunSettings{DurationS: 20, SpeedMps: 3}

	f.mc.EditSettings()

	assert.Equal(t, f.view.settings, f.mc.Settings())
	assert.Equal(t, "Duration 20 s, speed 3 m/s", f.view.lastStatus())

	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, f.view.settings, loaded.Run)

	f.mc.Run()
	assert.Equal(t, "60 m", f.anim.PaintData().EndLabel)
}

func TestApplySettingsRejectsInvalid(t *testing.T) {
	f := newFixture(t, "")

	err := f.mc.ApplySettings(config.RunSettings{DurationS: 0, SpeedMps: 1})

	assert.ErrorIs(t, err, config.ErrInvalidSettings)
	assert.Len(t, f.view.errors, 1)
	assert.Equal(t, config.DefaultConfig().Run, f.mc.Settings())
}

func TestAboutShowsInfo(t *testing.T) {
	f := newFixture(t, "")
	f.mc.About()

	require.Len(t, f.view.infos, 1)
	assert.Contains(t, f.view.infos[0], "Average workload time")
}
