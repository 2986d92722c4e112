// IsoForge — Isometric Scene Editor
//
// A cross-platform desktop application for placing and painting boxes on
// an isometric grid, with autosaved projects and image, vector and
// schedule export.
//
// Build:
//   go build -o isoforge ./cmd/isoforge
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o isoforge.exe ./cmd/isoforge
//   GOOS=darwin  GOARCH=amd64 go build -o isoforge-darwin ./cmd/isoforge
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"flag"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/isoforge/internal/project"
	"github.com/piwi3910/isoforge/internal/ui"
)

func main() {
	dir := flag.String("projects", project.DefaultProjectsDir(), "directory holding project records")
	flag.Parse()

	application := app.NewWithID("com.piwi3910.isoforge")
	icon := ui.AppIcon()
	application.SetIcon(icon)

	window := application.NewWindow("IsoForge - Isometric Scene Editor")
	window.SetIcon(icon)

	appUI, err := ui.NewApp(application, window, *dir)
	if err != nil {
		log.Fatalf("failed to open project store: %v", err)
	}
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	appUI.StartWatching()
	application.Lifecycle().SetOnStopped(appUI.Shutdown)
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
