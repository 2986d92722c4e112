package ui

import (
	"bytes"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/isoforge/internal/export"
	"github.com/piwi3910/isoforge/internal/model"
)

// AppIcon renders a small stack of cubes with the export renderer.
func AppIcon() fyne.Resource {
	objs := []model.SceneObject{
		{ID: "a", Type: model.ShapeCube, Position: model.Vec3{X: 0, Y: 0}, Size: model.UnitSize, Color: "#8b5cf6"},
		{ID: "b", Type: model.ShapeCube, Position: model.Vec3{X: 1, Y: 0}, Size: model.UnitSize, Color: "#06b6d4"},
		{ID: "c", Type: model.ShapeCube, Position: model.Vec3{X: 0, Y: 1}, Size: model.UnitSize, Color: "#f97316"},
		{ID: "d", Type: model.ShapeCube, Position: model.Vec3{X: 0, Y: 0, Z: 1}, Size: model.UnitSize, Color: "#22c55e"},
	}
	img, err := export.RenderImage(objs, 2)
	if err != nil {
		log.Printf("icon: %v", err)
		return theme.FyneLogo()
	}
	var buf bytes.Buffer
	if err := export.EncodeImage(&buf, img, export.FormatPNG); err != nil {
		log.Printf("icon: %v", err)
		return theme.FyneLogo()
	}
	return fyne.NewStaticResource("isoforge.png", buf.Bytes())
}
