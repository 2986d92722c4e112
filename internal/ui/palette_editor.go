package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/project"
	"github.com/piwi3910/isoforge/internal/ui/widgets"
)

// showPaletteManager opens the palette window where users can add, edit,
// reorder, delete, import and export color presets.
func (a *App) showPaletteManager() {
	w := fyne.CurrentApp().NewWindow("Palette Manager")
	w.Resize(fyne.NewSize(520, 460))

	swatches := append([]model.Swatch(nil), a.palette.Swatches...)
	selectedIdx := -1

	var listWidget *widget.List
	listWidget = widget.NewList(
		func() int {
			return len(swatches)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widgets.NewColorSwatch("#000000", nil),
				widget.NewLabel("Swatch Name"),
				layout.NewSpacer(),
				widget.NewLabel("#000000"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			sw := box.Objects[0].(*widgets.ColorSwatch)
			s := swatches[id]
			sw.Hex = s.Color
			sw.Refresh()
			box.Objects[1].(*widget.Label).SetText(s.Name)
			box.Objects[3].(*widget.Label).SetText(s.Color)
		},
	)
	listWidget.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
	}

	changed := func() {
		a.palette = model.Palette{Swatches: swatches}
		if err := project.SavePalette(project.DefaultPalettePath(), a.palette); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save palette: %w", err), w)
		}
		listWidget.Refresh()
		if a.props != nil {
			a.props.rebuildSwatches()
		}
	}

	requireSelection := func(action string) bool {
		if selectedIdx < 0 || selectedIdx >= len(swatches) {
			dialog.ShowInformation("No Selection", fmt.Sprintf("Select a swatch to %s.", action), w)
			return false
		}
		return true
	}

	// Action buttons
	newBtn := widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() {
		a.showSwatchDialog(w, model.Swatch{Name: "custom", Color: a.editor.Color()}, "New Swatch", func(s model.Swatch) {
			swatches = append(swatches, s)
			changed()
		})
	})

	editBtn := widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), func() {
		if !requireSelection("edit") {
			return
		}
		idx := selectedIdx
		a.showSwatchDialog(w, swatches[idx], "Edit Swatch", func(s model.Swatch) {
			swatches[idx] = s
			changed()
		})
	})

	upBtn := widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
		if !requireSelection("move") || selectedIdx == 0 {
			return
		}
		swatches[selectedIdx-1], swatches[selectedIdx] = swatches[selectedIdx], swatches[selectedIdx-1]
		selectedIdx--
		changed()
		listWidget.Select(selectedIdx)
	})

	downBtn := widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() {
		if !requireSelection("move") || selectedIdx == len(swatches)-1 {
			return
		}
		swatches[selectedIdx+1], swatches[selectedIdx] = swatches[selectedIdx], swatches[selectedIdx+1]
		selectedIdx++
		changed()
		listWidget.Select(selectedIdx)
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		if !requireSelection("delete") {
			return
		}
		s := swatches[selectedIdx]
		dialog.ShowConfirm("Delete Swatch", fmt.Sprintf("Delete swatch %q?", s.Name), func(ok bool) {
			if !ok {
				return
			}
			swatches = append(swatches[:selectedIdx:selectedIdx], swatches[selectedIdx+1:]...)
			selectedIdx = -1
			listWidget.UnselectAll()
			changed()
		}, w)
	})

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()

			p, err := project.LoadPalette(path)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			swatches = p.Swatches
			selectedIdx = -1
			listWidget.UnselectAll()
			changed()
		}, w)
		d.Show()
	})

	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()

			if err := project.SavePalette(path, model.Palette{Swatches: swatches}); err != nil {
				dialog.ShowError(err, w)
			}
		}, w)
		d.SetFileName("palette.yaml")
		d.Show()
	})

	resetBtn := widget.NewButton("Restore Defaults", func() {
		dialog.ShowConfirm("Restore Defaults", "Replace the palette with the built-in colors?", func(ok bool) {
			if !ok {
				return
			}
			swatches = model.DefaultPalette().Swatches
			selectedIdx = -1
			listWidget.UnselectAll()
			changed()
		}, w)
	})

	toolbar := container.NewHBox(newBtn, editBtn, upBtn, downBtn, deleteBtn, layout.NewSpacer(), importBtn, exportBtn)

	w.SetContent(container.NewBorder(
		widget.NewLabelWithStyle("Swatches", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewVBox(toolbar, resetBtn),
		nil, nil,
		listWidget,
	))
	w.Show()
}

// showSwatchDialog edits a single swatch and calls onSave with the result.
func (a *App) showSwatchDialog(w fyne.Window, s model.Swatch, title string, onSave func(model.Swatch)) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(s.Name)
	colorEntry := widget.NewEntry()
	colorEntry.SetText(s.Color)
	colorEntry.Validator = func(text string) error {
		if !model.ValidHexColor(text) {
			return fmt.Errorf("expected a hex color such as #8b5cf6")
		}
		return nil
	}

	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Color", colorEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			c, err := model.ParseHexColor(colorEntry.Text)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			name := nameEntry.Text
			if name == "" {
				name = model.FormatHexColor(c)
			}
			onSave(model.Swatch{Name: name, Color: model.FormatHexColor(c)})
		},
		w,
	)
	form.Resize(fyne.NewSize(360, 200))
	form.Show()
}
