package ui

import (
	"context"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64, format string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf(format, *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	// Theme selector
	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	colorEntry := widget.NewEntry()
	colorEntry.SetText(cfg.DefaultColor)
	colorEntry.Validator = func(s string) error {
		if !model.ValidHexColor(s) {
			return fmt.Errorf("expected a hex color such as #8b5cf6")
		}
		return nil
	}
	colorEntry.OnChanged = func(text string) {
		cfg.DefaultColor = text
	}

	gridCheck := widget.NewCheck("", func(on bool) {
		cfg.ShowGrid = on
	})
	gridCheck.SetChecked(cfg.ShowGrid)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Auto-Save Delay (ms)", intEntry(&cfg.AutoSaveDelayMs)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Undo Steps", intEntry(&cfg.MaxHistory)),
		widget.NewFormItem("Paint Hold Delay (ms)", intEntry(&cfg.PaintDelayMs)),
		widget.NewFormItem("Minimum Zoom", floatEntry(&cfg.ZoomMin, "%.2f")),
		widget.NewFormItem("Maximum Zoom", floatEntry(&cfg.ZoomMax, "%.2f")),
		widget.NewFormItem("Wheel Zoom Sensitivity", floatEntry(&cfg.ZoomSensitivity, "%.4f")),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Color", colorEntry),
		widget.NewFormItem("Show Grid on Start", gridCheck),
		widget.NewFormItem("", widget.NewLabel("Editor settings take effect the next time IsoForge starts.")),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg.Normalize()
			a.applyTheme(a.config.Theme)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 550))
	d.Show()
}

// showImportExportDialog displays the backup and restore dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()

			if err := a.saver.Flush(); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if err := project.ExportAllData(context.Background(), path, a.config, a.store); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All projects and settings exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("isoforge-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current application settings.\n"+
				"Projects already in your library are kept.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()

					cfg, added, err := project.ImportAllData(context.Background(), path, a.store)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = cfg
					a.applyTheme(cfg.Theme)
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.refreshRecent()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Settings restored and %d project(s) added.", added), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all projects and settings to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup & Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
