package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const WelcomeText = "Welcome to timing-grid!"

// StatusBar shows the last status message and the elapsed run time.
type StatusBar struct {
	container    *fyne.Container
	statusLabel  *widget.Label
	elapsedLabel *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel(WelcomeText)
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis
	sb.elapsedLabel = widget.NewLabel(ElapsedText(0))
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(nil, nil, nil,
		container.NewHBox(widget.NewSeparator(), sb.elapsedLabel),
		sb.statusLabel,
	)
}

// ElapsedText formats whole seconds the way the timer label shows them.
func ElapsedText(seconds int) string {
	return fmt.Sprintf("%d s", seconds)
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetElapsed(seconds int) {
	sb.elapsedLabel.SetText(ElapsedText(seconds))
}

func (sb *StatusBar) Elapsed() string {
	return sb.elapsedLabel.Text
}

func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText(WelcomeText)
	sb.elapsedLabel.SetText(ElapsedText(0))
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
