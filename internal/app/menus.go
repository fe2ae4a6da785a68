package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

type command struct {
	label  string
	key    fyne.KeyName
	action func()
}

func (a *Application) commands() []command {
	return []command{
		{label: "Run...", key: fyne.KeyR, action: a.controller.Run},
		{label: "Open...", key: fyne.KeyO, action: a.controller.Open},
		{label: "Save...", key: fyne.KeyS, action: a.controller.Save},
		{label: "Settings...", key: fyne.KeyE, action: a.controller.EditSettings},
	}
}

func (a *Application) setupMenus() {
	var items []*fyne.MenuItem
	for _, cmd := range a.commands() {
		shortcut := &desktop.CustomShortcut{KeyName: cmd.key, Modifier: fyne.KeyModifierShortcutDefault}

		item := fyne.NewMenuItem(cmd.label, cmd.action)
		item.Shortcut = shortcut
		items = append(items, item)

		a.window.Canvas().AddShortcut(shortcut, func(fyne.Shortcut) { cmd.action() })
	}

	quit := fyne.NewMenuItem("Quit", a.quit)
	quit.IsQuit = true
	items = append(items, fyne.NewMenuItemSeparator(), quit)

	fileMenu := fyne.NewMenu("File", items...)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.controller.About),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}
