package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/isoforge/internal/engine"
	"github.com/piwi3910/isoforge/internal/model"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func cube(id string, pos model.Vec3, hex string) model.SceneObject {
	return model.SceneObject{ID: id, Type: model.ShapeCube, Position: pos, Size: model.UnitSize, Color: hex}
}

// screenOf returns the pixel under the centroid of face f of o.
func screenOf(o model.SceneObject, f engine.Face, view model.ViewTransform) (int, int) {
	p := view.ToScreen(engine.FacePolygons(o).Get(f).Centroid())
	return int(p.X), int(p.Y)
}

var testView = model.ViewTransform{Offset: model.Point2D{X: 100, Y: 100}, Zoom: 2}

func TestRender_BackgroundAndFaces(t *testing.T) {
	c := cube("a", model.Vec3{}, "#808080")
	img := NewImage(200, 200, Frame{Objects: []model.SceneObject{c}, View: testView})

	assert.Equal(t, Background, nrgbaAt(img, 0, 0))

	x, y := screenOf(c, engine.FaceTop, testView)
	assert.Equal(t, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, nrgbaAt(img, x, y))

	x, y = screenOf(c, engine.FaceLeft, testView)
	assert.Equal(t, color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}, nrgbaAt(img, x, y), "left face shaded -10")

	x, y = screenOf(c, engine.FaceRight, testView)
	assert.Equal(t, color.NRGBA{R: 0x5a, G: 0x5a, B: 0x5a, A: 0xff}, nrgbaAt(img, x, y), "right face shaded -15")
}

func TestRender_DepthOrderIgnoresCollectionOrder(t *testing.T) {
	lower := cube("lower", model.Vec3{}, "#0000ff")
	upper := cube("upper", model.Vec3{Z: 1}, "#ff0000")

	// Upper comes first in the collection but must still be painted last.
	img := NewImage(200, 200, Frame{Objects: []model.SceneObject{upper, lower}, View: testView})

	// (-10,-20) in projection space is on the lower top face and under the
	// upper cube's left face.
	p := testView.ToScreen(model.Point2D{X: -10, Y: -20})
	assert.Equal(t, color.NRGBA{R: 229, A: 0xff}, nrgbaAt(img, int(p.X), int(p.Y)))
}

func TestRender_InvalidColorUsesPlaceholder(t *testing.T) {
	c := cube("a", model.Vec3{}, "not-a-color")
	img := NewImage(200, 200, Frame{Objects: []model.SceneObject{c}, View: testView})

	x, y := screenOf(c, engine.FaceTop, testView)
	assert.Equal(t, model.MissingColor, nrgbaAt(img, x, y))
}

func TestRender_GridDrawnOnlyWhenEnabled(t *testing.T) {
	without := NewImage(120, 120, Frame{View: testView})
	with := NewImage(120, 120, Frame{View: testView, ShowGrid: true})

	changed := 0
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			if nrgbaAt(without, x, y) != nrgbaAt(with, x, y) {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 0, "grid lines should touch some pixels")
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			require.Equal(t, Background, nrgbaAt(without, x, y))
		}
	}
}

func TestRender_SelectionOutline(t *testing.T) {
	c := cube("a", model.Vec3{}, "#808080")
	objs := []model.SceneObject{c}

	plain := NewImage(200, 200, Frame{Objects: objs, View: testView})
	selected := NewImage(200, 200, Frame{Objects: objs, View: testView, Selection: model.Selection{"a"}})

	assert.NotEqual(t, plain.(*image.RGBA).Pix, selected.(*image.RGBA).Pix)

	// Face interiors are untouched by the outline.
	x, y := screenOf(c, engine.FaceTop, testView)
	assert.Equal(t, nrgbaAt(plain, x, y), nrgbaAt(selected, x, y))
}

func TestRender_Ghost(t *testing.T) {
	view := model.ViewTransform{Offset: model.Point2D{X: 100, Y: 100}, Zoom: 1}
	ghost := &Ghost{Kind: model.ShapeCube, Position: model.Vec3{X: 1, Y: 1}}

	img := NewImage(200, 200, Frame{View: view, Ghost: ghost})
	x, y := screenOf(ghost.Object(), engine.FaceTop, view)
	px := nrgbaAt(img, x, y)

	assert.InDelta(t, 132, int(px.R), 3, "half-transparent white over background")
	assert.Equal(t, uint8(0xff), px.A)

	img = NewImage(200, 200, Frame{View: view})
	assert.Equal(t, Background, nrgbaAt(img, x, y))
}

func TestRender_ExportMode(t *testing.T) {
	c := cube("a", model.Vec3{}, "#808080")
	ghost := &Ghost{Kind: model.ShapeCube, Position: model.Vec3{X: -2, Y: -2}}
	f := Frame{
		Objects:   []model.SceneObject{c},
		Selection: model.Selection{"a"},
		View:      testView,
		ShowGrid:  true,
		Ghost:     ghost,
		Export:    true,
	}
	img := NewImage(200, 200, f)

	assert.Equal(t, uint8(0), nrgbaAt(img, 0, 0).A, "background is transparent")
	x, y := screenOf(c, engine.FaceTop, testView)
	assert.Equal(t, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, nrgbaAt(img, x, y))

	bare := NewImage(200, 200, Frame{Objects: f.Objects, View: testView, Export: true})
	assert.Equal(t, bare.(*image.RGBA).Pix, img.(*image.RGBA).Pix, "selection, grid and ghost are skipped")
}

func TestFrameScaled(t *testing.T) {
	f := Frame{View: model.ViewTransform{Offset: model.Point2D{X: 10, Y: 20}, Zoom: 1.5}}
	s := f.Scaled(2)
	assert.Equal(t, model.ViewTransform{Offset: model.Point2D{X: 20, Y: 40}, Zoom: 3}, s.View)
	assert.Equal(t, f, f.Scaled(1))
}

func TestFitView(t *testing.T) {
	v := FitView([]model.SceneObject{cube("a", model.Vec3{}, "#fff")}, 200, 200, 10)
	assert.Equal(t, 1.0, v.Zoom)
	assert.InDelta(t, 100, v.Offset.X, 1e-9)
	assert.InDelta(t, 100, v.Offset.Y, 1e-9)

	big := cube("b", model.Vec3{}, "#fff")
	big.Size = model.Size{Width: 20, Height: 20, Depth: 20}
	v = FitView([]model.SceneObject{big}, 200, 200, 10)
	assert.Less(t, v.Zoom, 1.0, "large scenes are scaled down")

	empty := FitView(nil, 300, 100, 10)
	assert.Equal(t, model.NewViewTransform(150, 50), empty)
}
