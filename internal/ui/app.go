package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/isoforge/internal/editor"
	"github.com/piwi3910/isoforge/internal/export"
	sceneimporter "github.com/piwi3910/isoforge/internal/importer"
	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/project"
	"github.com/piwi3910/isoforge/internal/ui/widgets"
)

// recentLimit is the number of projects listed under Open Recent.
const recentLimit = 10

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	config  model.AppConfig
	palette model.Palette

	store   *project.FileStore
	editor  *editor.Editor
	saver   *editor.AutoSaver
	watcher *project.Watcher
	recent  []model.Project

	// UI references for dynamic updates
	sceneCanvas *widgets.SceneCanvas
	toolbar     *toolbar
	props       *propertiesPanel
	nameLabel   *widget.Label
	statusLabel *widget.Label
	cellLabel   *widget.Label
	recentMenu  *fyne.MenuItem
	mainMenu    *fyne.MainMenu
}

// NewApp loads the config and palette, opens the project store at dir and
// restores the most recently edited project.
func NewApp(application fyne.App, window fyne.Window, dir string) (*App, error) {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("config: %v; using defaults", err)
		config = model.DefaultAppConfig()
	}
	palette, err := project.LoadPalette(project.DefaultPalettePath())
	if err != nil {
		log.Printf("palette: %v; using defaults", err)
		palette = model.DefaultPalette()
	}
	store, err := project.NewFileStore(dir)
	if err != nil {
		return nil, err
	}

	a := &App{
		app:     application,
		window:  window,
		config:  config,
		palette: palette,
		store:   store,
	}
	a.editor = editor.New(editor.ConfigFromApp(config), a)
	a.saver = editor.NewAutoSaver(store, time.Duration(config.AutoSaveDelayMs)*time.Millisecond, a)
	a.saver.OnSaved = func(p model.Project) {
		fyne.Do(func() { a.projectSaved(p) })
	}
	a.editor.OnChange(a.onEditorChange)
	a.applyTheme(config.Theme)

	a.restoreLastProject()
	return a, nil
}

// Notify implements editor.Notifier. It is safe to call from any goroutine.
func (a *App) Notify(level editor.Level, message string) {
	fyne.Do(func() { a.showMessage(level, message) })
}

func (a *App) showMessage(level editor.Level, message string) {
	switch level {
	case editor.LevelError:
		log.Printf("error: %s", message)
		dialog.ShowError(errors.New(message), a.window)
	case editor.LevelWarning:
		message = "Warning: " + message
	}
	if a.statusLabel != nil {
		a.statusLabel.SetText(message)
	}
}

// Shutdown flushes pending saves and stops the store watcher.
func (a *App) Shutdown() {
	if err := a.saver.Flush(); err != nil {
		log.Printf("final save failed: %v", err)
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
}

// ─── Editor events ─────────────────────────────────────────

func (a *App) onEditorChange(c editor.Change) {
	switch {
	case c.Has(editor.ChangeLoaded):
		// Loading a stored record is not an edit.
	case c.Has(editor.ChangeObjects):
		a.saver.Schedule(a.editor.Project())
	}
	if c.Has(editor.ChangeMeta) {
		p := a.editor.Project()
		go func() {
			_ = a.saver.SaveNow(p)
		}()
	}

	if a.sceneCanvas != nil {
		a.sceneCanvas.Refresh()
	}
	if a.toolbar != nil {
		a.toolbar.refresh()
	}
	if a.props != nil && (c.Has(editor.ChangeObjects) || c.Has(editor.ChangeSelection)) {
		a.props.refresh()
	}
	if a.nameLabel != nil && (c.Has(editor.ChangeMeta) || c.Has(editor.ChangeLoaded)) {
		a.nameLabel.SetText(a.editor.Name())
		a.window.SetTitle("IsoForge - " + a.editor.Name())
	}
}

func (a *App) projectSaved(p model.Project) {
	if p.ID == a.editor.ProjectID() {
		a.editor.MarkSaved(p.UpdatedAt)
	}
	a.rememberRecent(p.ID)
	a.refreshRecent()
}

func (a *App) rememberRecent(id string) {
	if len(a.config.RecentProjects) > 0 && a.config.RecentProjects[0] == id {
		return
	}
	a.config.AddRecent(id, recentLimit)
	if err := a.saveConfig(); err != nil {
		log.Printf("config: %v", err)
	}
}

func (a *App) restoreLastProject() {
	ctx := context.Background()
	for _, id := range a.config.RecentProjects {
		p, err := a.store.Get(ctx, id)
		if err == nil {
			a.editor.Load(p)
			return
		}
	}
	recent, err := project.Recent(ctx, a.store, 1)
	if err != nil {
		log.Printf("store: %v", err)
	}
	if len(recent) > 0 {
		a.editor.Load(recent[0])
	}
}

// StartWatching refreshes the recent list whenever a record changes on disk.
func (a *App) StartWatching() {
	w, err := project.NewWatcher(a.store.Dir())
	if err != nil {
		log.Printf("watcher: %v", err)
		return
	}
	a.watcher = w
	go func() {
		for range w.Events {
			fyne.Do(a.refreshRecent)
		}
	}()
	go func() {
		for err := range w.Errors {
			log.Printf("watcher: %v", err)
		}
	}()
}

// ─── Menus ─────────────────────────────────────────────────

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	a.recentMenu = fyne.NewMenuItem("Open Recent", nil)
	a.recentMenu.ChildMenu = fyne.NewMenu("")

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.editor.NewProject()
			a.showMessage(editor.LevelInfo, "New project created")
		}),
		fyne.NewMenuItem("Open Project...", a.showProjectBrowser),
		a.recentMenu,
		fyne.NewMenuItem("Rename Project...", a.showRenameDialog),
		fyne.NewMenuItem("Save Project", a.saveNow),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Project JSON...", a.importProjectJSON),
		fyne.NewMenuItem("Import Objects from CSV...", func() { a.importSchedule(sceneimporter.ImportCSV) }),
		fyne.NewMenuItem("Import Objects from Excel...", func() { a.importSchedule(sceneimporter.ImportExcel) }),
		fyne.NewMenuItem("Import Objects from DXF...", func() { a.importSchedule(sceneimporter.ImportDXF) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export...", a.exportScene),
		fyne.NewMenuItem("Export Current View...", a.exportView),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup && Restore...", a.showImportExportDialog),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.editor.Undo),
		fyne.NewMenuItem("Redo", a.editor.Redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", func() { a.editor.Copy() }),
		fyne.NewMenuItem("Paste", func() { a.editor.Paste() }),
		fyne.NewMenuItem("Select All", a.editor.SelectAll),
		fyne.NewMenuItem("Clear Selection", a.editor.ClearSelection),
		fyne.NewMenuItem("Delete Selected", a.editor.DeleteSelected),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Send to Back", a.editor.SendToBack),
		fyne.NewMenuItem("Send to Front", a.editor.SendToFront),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Scene", func() {
			dialog.ShowConfirm("Clear Scene", "Remove every object from the scene?", func(ok bool) {
				if ok {
					a.editor.Clear()
				}
			}, a.window)
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", a.editor.ZoomIn),
		fyne.NewMenuItem("Zoom Out", a.editor.ZoomOut),
		fyne.NewMenuItem("Reset View", a.resetView),
		fyne.NewMenuItem("Toggle Grid", func() { a.editor.SetShowGrid(!a.editor.ShowGrid()) }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Select", func() { a.editor.SetTool(editor.ToolSelect) }),
		fyne.NewMenuItem("Cube", func() { a.editor.SetTool(editor.ToolCube) }),
		fyne.NewMenuItem("Eraser", func() { a.editor.SetTool(editor.ToolEraser) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Cube at Origin", a.addCubeAtOrigin),
		fyne.NewMenuItem("Palette Manager...", a.showPaletteManager),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", a.showShortcutsDialog),
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu)
	a.window.SetMainMenu(a.mainMenu)
	a.refreshRecent()
}

// refreshRecent rebuilds the Open Recent submenu from the store.
func (a *App) refreshRecent() {
	recent, err := project.Recent(context.Background(), a.store, recentLimit)
	if err != nil {
		log.Printf("store: %v", err)
	}
	a.recent = recent
	if a.recentMenu == nil {
		return
	}

	items := make([]*fyne.MenuItem, 0, len(recent))
	for _, p := range recent {
		p := p
		label := fmt.Sprintf("%s (%d objects)", p.Name, len(p.Objects))
		items = append(items, fyne.NewMenuItem(label, func() { a.openProject(p.ID) }))
	}
	if len(items) == 0 {
		none := fyne.NewMenuItem("No recent projects", nil)
		none.Disabled = true
		items = append(items, none)
	}
	a.recentMenu.ChildMenu.Items = items
	if a.mainMenu != nil {
		a.mainMenu.Refresh()
	}
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About IsoForge",
		"IsoForge - Isometric Scene Editor\n\n"+
			"Place, paint and arrange boxes on an isometric grid,\n"+
			"then export them as images, vector drawings or schedules.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.sceneCanvas = widgets.NewSceneCanvas(a.editor)
	a.cellLabel = widget.NewLabel("")
	a.sceneCanvas.OnHover = func(cell model.Vec3) {
		a.cellLabel.SetText(fmt.Sprintf("x %.0f  y %.0f", cell.X, cell.Y))
	}

	a.nameLabel = widget.NewLabelWithStyle(a.editor.Name(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.Truncation = fyne.TextTruncateEllipsis

	a.toolbar = newToolbar(a)
	a.props = newPropertiesPanel(a)

	statusBar := container.NewBorder(nil, nil, nil, a.cellLabel, a.statusLabel)
	top := container.NewBorder(nil, nil, a.nameLabel, nil, a.toolbar.horizontal)

	split := container.NewHSplit(a.sceneCanvas, container.NewVScroll(a.props.content))
	split.SetOffset(0.78)

	a.window.SetTitle("IsoForge - " + a.editor.Name())
	a.registerShortcuts()

	return container.NewBorder(top, statusBar, a.toolbar.vertical, nil, split)
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) resetView() {
	size := a.sceneCanvas.Size()
	a.editor.ResetView(float64(size.Width)/2, float64(size.Height)/2)
}

func (a *App) addCubeAtOrigin() {
	a.editor.AddObjects(model.NewObject(model.ShapeCube, model.Vec3{}, a.editor.Color()))
}

func (a *App) saveNow() {
	p := a.editor.Project()
	go func() {
		if err := a.saver.SaveNow(p); err == nil {
			a.Notify(editor.LevelInfo, "Project saved successfully")
		}
	}()
}

func (a *App) openProject(id string) {
	if err := a.saver.Flush(); err != nil {
		log.Printf("save before open: %v", err)
	}
	p, err := a.store.Get(context.Background(), id)
	if err != nil {
		a.showMessage(editor.LevelError, fmt.Sprintf("Failed to open project: %v", err))
		return
	}
	a.editor.Load(p)
	a.rememberRecent(p.ID)
	a.showMessage(editor.LevelInfo, "Loaded "+p.Name)
}

func (a *App) showRenameDialog() {
	entry := widget.NewEntry()
	entry.SetText(a.editor.Name())
	dialog.ShowForm("Rename Project", "Rename", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			if err := a.editor.Rename(entry.Text); err != nil {
				dialog.ShowError(err, a.window)
			}
		}, a.window)
}

// ─── Import Functions ──────────────────────────────────────

func (a *App) importProjectJSON() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := a.saver.Flush(); err != nil {
			log.Printf("save before import: %v", err)
		}
		text, err := sceneimporter.ReadFileAsText(path)
		if err != nil {
			a.showMessage(editor.LevelError, "Failed to load JSON file: "+err.Error())
			return
		}
		p, err := a.editor.LoadDocument([]byte(text))
		if err != nil {
			log.Printf("import %s: %v", path, err)
			if errors.Is(err, sceneimporter.ErrInvalidProject) {
				a.showMessage(editor.LevelError, "The JSON file is not in the correct format\n\n"+err.Error())
			} else {
				a.showMessage(editor.LevelError, "Failed to load JSON file: "+err.Error())
			}
			return
		}
		go func() {
			_ = a.saver.SaveNow(p)
		}()
		a.showMessage(editor.LevelInfo, "Project loaded successfully")
	}, a.window)
}

func (a *App) importSchedule(load func(path string) sceneimporter.ImportResult) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		a.handleImportResult(load(path))
	}, a.window)
}

func (a *App) handleImportResult(result sceneimporter.ImportResult) {
	if len(result.Warnings) > 0 {
		log.Printf("import warnings: %v", result.Warnings)
	}
	if len(result.Errors) > 0 {
		errorMsg := "Nothing was imported. Errors encountered:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
		return
	}

	ids := a.editor.AddObjects(result.Objects...)
	a.editor.Select(ids...)
	a.showMessage(editor.LevelInfo, fmt.Sprintf("Imported %d object(s)", len(result.Objects)))
}

// ─── Export Functions ──────────────────────────────────────

func (a *App) exportScene() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := export.ExportFile(path, a.editor.Project()); err != nil {
			if errors.Is(err, export.ErrEmptyScene) {
				a.showMessage(editor.LevelWarning, "Nothing to export")
				return
			}
			a.showMessage(editor.LevelError, fmt.Sprintf("Export failed: %v", err))
			return
		}
		a.showMessage(editor.LevelInfo, "Exported to "+path)
	}, a.window)
	d.SetFileName(export.DefaultFileName(export.FormatPNG, time.Now()))
	d.Show()
}

// exportView writes the canvas as currently panned and zoomed, without the
// grid or overlays.
func (a *App) exportView() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		w, h := a.editor.CanvasSize()
		if err := export.ExportViewImage(path, a.editor.ExportFrame(), int(w), int(h)); err != nil {
			if errors.Is(err, export.ErrEmptyScene) {
				a.showMessage(editor.LevelWarning, "Nothing to export")
				return
			}
			a.showMessage(editor.LevelError, fmt.Sprintf("Export failed: %v", err))
			return
		}
		a.showMessage(editor.LevelInfo, "Exported view to "+path)
	}, a.window)
	d.SetFileName(export.DefaultFileName(export.FormatPNG, time.Now()))
	d.Show()
}
