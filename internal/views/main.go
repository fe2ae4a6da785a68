package views

import (
	"fmt"

	"timing-grid/internal/animation"
	"timing-grid/internal/config"
	"timing-grid/internal/models"
	"timing-grid/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const defaultFileName = "grid.csv"

var csvFilter = storage.NewExtensionFileFilter([]string{".csv"})

// MainView is the window content: the grid on top, the marker track and the
// status bar below it.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	gridTable     *components.GridTable
	track         *components.Track
	statusBar     *components.StatusBar
}

func NewMainView(window fyne.Window, grid components.GridSource, paint func() animation.PaintData) *MainView {
	view := &MainView{
		window:    window,
		gridTable: components.NewGridTable(grid),
		track:     components.NewTrack(paint),
		statusBar: components.NewStatusBar(),
	}

	view.buildLayout()
	return view
}

func (mv *MainView) buildLayout() {
	bottomArea := container.NewVBox(
		mv.track,
		mv.statusBar.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		nil,
		bottomArea,
		nil,
		nil,
		container.NewPadded(mv.gridTable.Widget()),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) TrackBounds() animation.Bounds {
	return mv.track.Bounds()
}

func (mv *MainView) SetElapsed(seconds int) {
	mv.statusBar.SetElapsed(seconds)
}

func (mv *MainView) RefreshTrack() {
	mv.track.Refresh()
}

func (mv *MainView) RefreshGrid() {
	mv.gridTable.Refresh()
}

func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

func (mv *MainView) ShowError(title string, err error) {
	dialog.ShowError(titledError(title, err), mv.window)
}

// titledError prefixes err with the dialog title so the failing command
// is visible in the error dialog.
func titledError(title string, err error) error {
	if title == "" {
		return err
	}
	return fmt.Errorf("%s: %w", title, err)
}

func (mv *MainView) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// ChooseOpenPath asks for a CSV file to read.
func (mv *MainView) ChooseOpenPath(callback func(path string, err error)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			callback("", err)
			return
		}
		if reader == nil {
			callback("", models.ErrUserCancelled)
			return
		}
		path := reader.URI().Path()
		reader.Close()
		callback(path, nil)
	}, mv.window)
	d.SetFilter(csvFilter)
	d.Show()
}

// ChooseSavePath asks for a CSV file to write.
func (mv *MainView) ChooseSavePath(callback func(path string, err error)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			callback("", err)
			return
		}
		if writer == nil {
			callback("", models.ErrUserCancelled)
			return
		}
		path := writer.URI().Path()
		writer.Close()
		callback(path, nil)
	}, mv.window)
	d.SetFilter(csvFilter)
	d.SetFileName(defaultFileName)
	d.Show()
}

func (mv *MainView) EditRunSettings(current config.RunSettings, callback func(config.RunSettings, error)) {
	components.NewSettingsForm(current).Show(mv.window, callback)
}

func (mv *MainView) Show() {
	mv.window.Show()
}


func (mv *MainView) StatusBar() *components.StatusBar {
	return mv.statusBar
}
