package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/isoforge/internal/editor"
)

// toolbar holds the tool palette on the left and the action row on top.
type toolbar struct {
	app *App

	tools    map[editor.Tool]*ttwidget.Button
	undo     *ttwidget.Button
	redo     *ttwidget.Button
	copyBtn  *ttwidget.Button
	paste    *ttwidget.Button
	gridChk  *widget.Check
	suppress bool

	vertical   fyne.CanvasObject
	horizontal fyne.CanvasObject
}

func newToolbar(a *App) *toolbar {
	tb := &toolbar{app: a, tools: map[editor.Tool]*ttwidget.Button{}}
	ed := a.editor

	tool := func(t editor.Tool, icon fyne.Resource, tip string) *ttwidget.Button {
		b := newIconButtonWithTooltip(icon, tip, func() { ed.SetTool(t) })
		tb.tools[t] = b
		return b
	}

	tb.vertical = container.NewVBox(
		tool(editor.ToolSelect, theme.NavigateNextIcon(), "Select (V)"),
		tool(editor.ToolCube, theme.ContentAddIcon(), "Cube (C)"),
		tool(editor.ToolEraser, theme.DeleteIcon(), "Eraser (E)"),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ViewFullScreenIcon(), "Add cube at origin", a.addCubeAtOrigin),
	)

	tb.undo = newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo (Ctrl+Z)", ed.Undo)
	tb.redo = newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo (Ctrl+Shift+Z)", ed.Redo)
	tb.copyBtn = newIconButtonWithTooltip(theme.ContentCopyIcon(), "Copy (Ctrl+C)", func() { ed.Copy() })
	tb.paste = newIconButtonWithTooltip(theme.ContentPasteIcon(), "Paste (Ctrl+V)", func() { ed.Paste() })

	tb.gridChk = widget.NewCheck("Grid", func(on bool) {
		if tb.suppress {
			return
		}
		ed.SetShowGrid(on)
	})

	tb.horizontal = container.NewHBox(
		newIconButtonWithTooltip(theme.DocumentCreateIcon(), "New project", func() {
			ed.NewProject()
		}),
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open project", a.showProjectBrowser),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save now", a.saveNow),
		newIconButtonWithTooltip(theme.UploadIcon(), "Export", a.exportScene),
		widget.NewSeparator(),
		tb.undo,
		tb.redo,
		tb.copyBtn,
		tb.paste,
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Zoom in (+)", ed.ZoomIn),
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Zoom out (-)", ed.ZoomOut),
		newIconButtonWithTooltip(theme.ZoomFitIcon(), "Reset view (0)", a.resetView),
		tb.gridChk,
	)

	tb.refresh()
	return tb
}

// refresh syncs button states with the editor.
func (tb *toolbar) refresh() {
	ed := tb.app.editor
	for t, b := range tb.tools {
		imp := widget.MediumImportance
		if t == ed.Tool() {
			imp = widget.HighImportance
		}
		if b.Importance != imp {
			b.Importance = imp
			b.Refresh()
		}
	}
	setEnabled(tb.undo, ed.CanUndo())
	setEnabled(tb.redo, ed.CanRedo())
	setEnabled(tb.copyBtn, len(ed.Selection()) > 0)

	tb.suppress = true
	tb.gridChk.SetChecked(ed.ShowGrid())
	tb.suppress = false
}

func setEnabled(w fyne.Disableable, on bool) {
	if on == !w.Disabled() {
		return
	}
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}
