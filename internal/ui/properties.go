package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/ui/widgets"
)

// propertiesPanel is the right-hand side panel: color presets, the active
// color, and details of the current selection.
type propertiesPanel struct {
	app *App

	swatches  *fyne.Container
	swatchMap map[string]*widgets.ColorSwatch
	hexEntry  *widget.Entry
	summary   *widget.Label
	selection *fyne.Container

	content fyne.CanvasObject
}

func newPropertiesPanel(a *App) *propertiesPanel {
	p := &propertiesPanel{app: a}

	p.swatches = container.NewGridWrap(fyne.NewSize(26, 26))
	p.hexEntry = widget.NewEntry()
	p.hexEntry.SetPlaceHolder("#8b5cf6")
	p.hexEntry.Validator = func(s string) error {
		if !model.ValidHexColor(s) {
			return fmt.Errorf("invalid hex color")
		}
		return nil
	}
	p.hexEntry.OnSubmitted = p.applyColor

	applyBtn := widget.NewButton("Apply", func() { p.applyColor(p.hexEntry.Text) })
	p.summary = widget.NewLabel("")
	p.selection = container.NewVBox()

	p.content = container.NewVBox(
		widget.NewLabelWithStyle("Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.swatches,
		container.NewBorder(nil, nil, nil, applyBtn, p.hexEntry),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Scene", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.summary,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Selection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.selection,
	)

	p.rebuildSwatches()
	p.refresh()
	return p
}

// rebuildSwatches recreates the preset buttons from the app palette.
func (p *propertiesPanel) rebuildSwatches() {
	p.swatchMap = map[string]*widgets.ColorSwatch{}
	p.swatches.RemoveAll()
	for _, s := range p.app.palette.Swatches {
		sw := widgets.NewColorSwatch(s.Color, p.applyColor)
		p.swatchMap[strings.ToLower(s.Color)] = sw
		p.swatches.Add(sw)
	}
	p.markActive()
}

func (p *propertiesPanel) markActive() {
	active := strings.ToLower(p.app.editor.Color())
	for hex, sw := range p.swatchMap {
		sw.SetSelected(hex == active)
	}
}

// applyColor makes hex the placement color and paints the selection with it.
func (p *propertiesPanel) applyColor(hex string) {
	ed := p.app.editor
	if err := ed.SetColor(hex); err != nil {
		dialog.ShowError(err, p.app.window)
		return
	}
	if err := ed.Recolor(hex); err != nil {
		dialog.ShowError(err, p.app.window)
		return
	}
	p.hexEntry.SetText(ed.Color())
	p.markActive()
}

// refresh redraws the scene summary and the selection details.
func (p *propertiesPanel) refresh() {
	ed := p.app.editor
	objs := ed.Objects()
	sel := ed.SelectedObjects()

	p.summary.SetText(fmt.Sprintf("%d object(s), %d color(s)", len(objs), len(model.SummarizeByColor(objs))))
	if p.hexEntry.Text == "" {
		p.hexEntry.SetText(ed.Color())
	}
	p.markActive()

	p.selection.RemoveAll()
	switch len(sel) {
	case 0:
		p.selection.Add(widget.NewLabel("Nothing selected"))
		return
	case 1:
		p.selection.Add(p.positionForm(sel[0]))
	default:
		p.selection.Add(widget.NewLabel(fmt.Sprintf("%d objects selected", len(sel))))
	}

	p.selection.Add(container.NewGridWithColumns(3,
		widget.NewButtonWithIcon("Back", theme.MoveDownIcon(), ed.SendToBack),
		widget.NewButtonWithIcon("Front", theme.MoveUpIcon(), ed.SendToFront),
		widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), ed.DeleteSelected),
	))
}

// positionForm edits the grid position of a single object.
func (p *propertiesPanel) positionForm(o model.SceneObject) fyne.CanvasObject {
	pos := o.Position
	coord := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	form := widget.NewForm(
		widget.NewFormItem("ID", widget.NewLabel(o.ID)),
		widget.NewFormItem("Size", widget.NewLabel(fmt.Sprintf("%g x %g x %g", o.Size.Width, o.Size.Depth, o.Size.Height))),
		widget.NewFormItem("X", coord(&pos.X)),
		widget.NewFormItem("Y", coord(&pos.Y)),
		widget.NewFormItem("Z", coord(&pos.Z)),
	)
	form.SubmitText = "Move"
	form.OnSubmit = func() {
		if err := p.app.editor.MoveTo(o.ID, pos); err != nil {
			dialog.ShowError(err, p.app.window)
		}
	}
	return form
}
