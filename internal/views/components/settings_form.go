package components

import (
	"strconv"

	"timing-grid/internal/config"
	"timing-grid/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// SettingsForm edits the duration and speed of the next run.
type SettingsForm struct {
	durationEntry *widget.Entry
	speedEntry    *widget.Entry
}

func NewSettingsForm(current config.RunSettings) *SettingsForm {
	sf := &SettingsForm{
		durationEntry: widget.NewEntry(),
		speedEntry:    widget.NewEntry(),
	}

	sf.durationEntry.SetText(strconv.Itoa(current.DurationS))
	sf.durationEntry.Validator = func(s string) error {
		_, err := config.ParseDuration(s)
		return err
	}

	sf.speedEntry.SetText(strconv.FormatFloat(current.SpeedMps, 'f', -1, 64))
	sf.speedEntry.Validator = func(s string) error {
		_, err := config.ParseSpeed(s)
		return err
	}
	return sf
}

func (sf *SettingsForm) Items() []*widget.FormItem {
	return []*widget.FormItem{
		{Text: "Duration (s)", Widget: sf.durationEntry, HintText: "Whole seconds, ten or more for samples"},
		{Text: "Speed (m/s)", Widget: sf.speedEntry},
	}
}

// Result parses the entries. Confirmed is false when the user cancelled.
func (sf *SettingsForm) Result(confirmed bool) (config.RunSettings, error) {
	if !confirmed {
		return config.RunSettings{}, models.ErrUserCancelled
	}
	return config.ParseRunSettings(sf.durationEntry.Text, sf.speedEntry.Text)
}

// Show opens the form as a modal dialog over parent.
func (sf *SettingsForm) Show(parent fyne.Window, callback func(config.RunSettings, error)) {
	d := dialog.NewForm("Run settings", "Apply", "Cancel", sf.Items(), func(confirmed bool) {
		callback(sf.Result(confirmed))
	}, parent)
	d.Show()
}
