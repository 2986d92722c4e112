package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/isoforge/internal/editor"
)

// registerShortcuts installs the window-level key bindings. Plain keys only
// fire while no entry has focus.
func (a *App) registerShortcuts() {
	ed := a.editor
	c := a.window.Canvas()

	bind := func(key fyne.KeyName, mod fyne.KeyModifier, fn func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) { fn() })
	}
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierControl, fyne.KeyModifierSuper} {
		bind(fyne.KeyZ, mod, ed.Undo)
		bind(fyne.KeyZ, mod|fyne.KeyModifierShift, ed.Redo)
		bind(fyne.KeyY, mod, ed.Redo)
		bind(fyne.KeyC, mod, func() { ed.Copy() })
		bind(fyne.KeyV, mod, func() { ed.Paste() })
		bind(fyne.KeyA, mod, ed.SelectAll)
		bind(fyne.KeyS, mod, a.saveNow)
	}

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			ed.DeleteSelected()
		case fyne.KeyEscape:
			ed.ClearSelection()
		case fyne.KeyV:
			ed.SetTool(editor.ToolSelect)
		case fyne.KeyC:
			ed.SetTool(editor.ToolCube)
		case fyne.KeyE:
			ed.SetTool(editor.ToolEraser)
		case fyne.KeyG:
			ed.SetShowGrid(!ed.ShowGrid())
		case fyne.KeyEqual:
			ed.ZoomIn()
		case fyne.KeyMinus:
			ed.ZoomOut()
		case fyne.Key0:
			a.resetView()
		}
	})
}

func (a *App) showShortcutsDialog() {
	rows := [][2]string{
		{"Ctrl+Z", "Undo"},
		{"Ctrl+Shift+Z / Ctrl+Y", "Redo"},
		{"Ctrl+C", "Copy selection"},
		{"Ctrl+V", "Paste"},
		{"Ctrl+A", "Select all"},
		{"Ctrl+S", "Save now"},
		{"Delete", "Delete selection"},
		{"Esc", "Clear selection"},
		{"V / C / E", "Select, cube and eraser tools"},
		{"G", "Toggle grid"},
		{"+ / - / 0", "Zoom in, zoom out, reset view"},
		{"Ctrl+click", "Add to selection"},
		{"Hold and drag", "Paint cubes"},
	}
	form := widget.NewForm()
	for _, r := range rows {
		form.Append(r[0], widget.NewLabel(r[1]))
	}
	d := dialog.NewCustom("Keyboard Shortcuts", "Close", form, a.window)
	d.Resize(fyne.NewSize(420, 420))
	d.Show()
}
