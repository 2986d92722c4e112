package editor

import (
	"time"

	"github.com/piwi3910/isoforge/internal/model"
)

// Config holds the tunables of the interaction controller.
type Config struct {
	MaxHistory      int
	PaintDelay      time.Duration // hold time before drag-to-paint
	ZoomMin         float64
	ZoomMax         float64
	ZoomSensitivity float64 // zoom *= 1 - deltaY*ZoomSensitivity
	ZoomStep        float64 // factor used by ZoomIn and ZoomOut
	DefaultColor    string
	ShowGrid        bool
	PasteOffset     model.Vec3
}

// DefaultConfig returns the editor defaults.
func DefaultConfig() Config {
	return ConfigFromApp(model.DefaultAppConfig())
}

// ConfigFromApp derives the editor configuration from application settings.
func ConfigFromApp(app model.AppConfig) Config {
	app = app.Normalize()
	return Config{
		MaxHistory:      app.MaxHistory,
		PaintDelay:      time.Duration(app.PaintDelayMs) * time.Millisecond,
		ZoomMin:         app.ZoomMin,
		ZoomMax:         app.ZoomMax,
		ZoomSensitivity: app.ZoomSensitivity,
		ZoomStep:        1.2,
		DefaultColor:    app.DefaultColor,
		ShowGrid:        app.ShowGrid,
		PasteOffset:     model.Vec3{X: 1, Y: 1},
	}
}
