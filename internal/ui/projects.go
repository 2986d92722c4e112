package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/isoforge/internal/editor"
	"github.com/piwi3910/isoforge/internal/project"
)

// ─── Project Browser Dialog ────────────────────────────────

func (a *App) showProjectBrowser() {
	projectList := container.NewVBox()
	var d *dialog.CustomDialog
	var refreshList func()

	refreshList = func() {
		projectList.RemoveAll()

		projects, err := project.Recent(context.Background(), a.store, 0)
		if err != nil {
			log.Printf("store: %v", err)
		}
		if len(projects) == 0 {
			projectList.Add(widget.NewLabel("No saved projects."))
			return
		}

		header := container.NewGridWithColumns(5,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Objects", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Modified", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		projectList.Add(header)
		projectList.Add(widget.NewSeparator())

		for _, p := range projects {
			p := p
			name := p.Name
			if p.ID == a.editor.ProjectID() {
				name += " (open)"
			}
			row := container.NewGridWithColumns(5,
				widget.NewLabel(name),
				widget.NewLabel(fmt.Sprintf("%d", len(p.Objects))),
				widget.NewLabel(time.UnixMilli(p.UpdatedAt).Format("2006-01-02 15:04")),
				widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), func() {
					d.Hide()
					a.openProject(p.ID)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.confirmDeleteProject(p.ID, p.Name, refreshList)
				}),
			)
			projectList.Add(row)
		}
	}

	refreshList()

	newBtn := widget.NewButtonWithIcon("New Project", theme.ContentAddIcon(), func() {
		d.Hide()
		a.editor.NewProject()
	})
	importBtn := widget.NewButtonWithIcon("Import JSON...", theme.FileIcon(), func() {
		d.Hide()
		a.importProjectJSON()
	})

	toolbar := container.NewHBox(newBtn, layout.NewSpacer(), importBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(projectList),
	)

	d = dialog.NewCustom("Projects", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 500))
	d.Show()
}

// confirmDeleteProject removes a stored project after confirmation. Deleting
// the open project starts a new one.
func (a *App) confirmDeleteProject(id, name string, onDone func()) {
	dialog.ShowConfirm("Delete Project",
		fmt.Sprintf("Delete project %q? This cannot be undone.", name),
		func(ok bool) {
			if !ok {
				return
			}
			if id == a.editor.ProjectID() {
				if err := a.saver.Flush(); err != nil {
					log.Printf("flush before delete: %v", err)
				}
				a.editor.NewProject()
			}
			if err := a.store.Delete(context.Background(), id); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.showMessage(editor.LevelInfo, fmt.Sprintf("Deleted %s", name))
			a.refreshRecent()
			onDone()
		},
		a.window,
	)
}
