// Package render rasterizes a scene snapshot with gg. Every call repaints
// the whole frame from its inputs.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/piwi3910/isoforge/internal/engine"
	"github.com/piwi3910/isoforge/internal/model"
)

// Face shading applied to the two side faces.
const (
	LeftShade  = -10
	RightShade = -15
)

var (
	// Background fills the frame outside export mode.
	Background = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	// GridColor is rgba(100,100,100,0.2).
	GridColor = color.NRGBA{R: 100, G: 100, B: 100, A: 51}
	// OutlineColor strokes selected objects.
	OutlineColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	// GhostColor fills the placement preview.
	GhostColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
)

// Ghost is the translucent placement preview.
type Ghost struct {
	Kind     model.ShapeKind
	Position model.Vec3
	Size     model.Size
}

// Object returns the preview as a scene object for drawing.
func (g Ghost) Object() model.SceneObject {
	size := g.Size
	if size == (model.Size{}) {
		size = model.UnitSize
	}
	return model.SceneObject{ID: "ghost", Type: g.Kind, Position: g.Position, Size: size}
}

// Frame is an immutable snapshot of everything drawn in one pass.
type Frame struct {
	Objects   []model.SceneObject
	Selection model.Selection
	View      model.ViewTransform
	ShowGrid  bool
	Ghost     *Ghost

	// Export skips the background, grid, selection overlay and ghost.
	Export bool
}

// Scaled returns f with the view multiplied by s, for device pixel ratios
// other than one.
func (f Frame) Scaled(s float64) Frame {
	if s <= 0 || s == 1 {
		return f
	}
	zoom := f.View.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	f.View = model.ViewTransform{
		Offset: model.Point2D{X: f.View.Offset.X * s, Y: f.View.Offset.Y * s},
		Zoom:   zoom * s,
	}
	return f
}

// Render paints f onto dc: background, grid, objects back to front,
// selection outline, ghost.
func Render(dc *gg.Context, f Frame) {
	if !f.Export {
		dc.SetColor(Background)
		dc.Clear()
		if f.ShowGrid {
			drawGrid(dc, f.View)
		}
	}

	for _, o := range engine.BackToFront(f.Objects) {
		base, err := model.ParseHexColor(o.Color)
		if err != nil {
			base = model.MissingColor
		}
		DrawerFor(o.Type).Draw(dc, o, f.View, base)
	}

	if f.Export {
		return
	}

	for _, o := range f.Selection.Objects(f.Objects) {
		drawOutline(dc, o, f.View)
	}

	if f.Ghost != nil {
		g := f.Ghost.Object()
		DrawerFor(g.Type).Draw(dc, g, f.View, GhostColor)
	}
}

// NewImage renders f into a fresh width x height image.
func NewImage(width, height int, f Frame) image.Image {
	dc := gg.NewContext(width, height)
	Render(dc, f)
	return dc.Image()
}

// FitView returns a view that centres objs inside a width x height frame
// with pad pixels of margin, never zooming past 1.
func FitView(objs []model.SceneObject, width, height int, pad float64) model.ViewTransform {
	min, max, ok := engine.ProjectedBounds(objs)
	if !ok {
		return model.NewViewTransform(float64(width)/2, float64(height)/2)
	}
	bw, bh := max.X-min.X, max.Y-min.Y
	zoom := 1.0
	if bw > 0 && bh > 0 {
		zx := (float64(width) - 2*pad) / bw
		zy := (float64(height) - 2*pad) / bh
		zoom = minf(1, minf(zx, zy))
		if zoom <= 0 {
			zoom = 1
		}
	}
	cx, cy := (min.X+max.X)/2, (min.Y+max.Y)/2
	return model.ViewTransform{
		Offset: model.Point2D{X: float64(width)/2 - cx*zoom, Y: float64(height)/2 - cy*zoom},
		Zoom:   zoom,
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func drawGrid(dc *gg.Context, view model.ViewTransform) {
	dc.Push()
	defer dc.Pop()
	dc.SetColor(GridColor)
	dc.SetLineWidth(1)
	at := func(x, y float64) model.Point2D {
		return view.ToScreen(engine.WorldToScreen(model.Vec3{X: x, Y: y}))
	}
	for i := -engine.GridCells; i <= engine.GridCells; i++ {
		for j := -engine.GridCells; j <= engine.GridCells; j++ {
			fi, fj := float64(i), float64(j)
			p1, p2, p3 := at(fi, fj), at(fi+1, fj), at(fi, fj+1)
			dc.NewSubPath()
			dc.MoveTo(p1.X, p1.Y)
			dc.LineTo(p2.X, p2.Y)
			dc.NewSubPath()
			dc.MoveTo(p1.X, p1.Y)
			dc.LineTo(p3.X, p3.Y)
		}
	}
	dc.Stroke()
}

func drawOutline(dc *gg.Context, o model.SceneObject, view model.ViewTransform) {
	dc.Push()
	defer dc.Pop()
	faces := engine.FacePolygons(o)
	for _, f := range engine.HitOrder {
		tracePolygon(dc, faces.Get(f).Transform(view))
	}
	dc.SetColor(OutlineColor)
	dc.SetLineWidth(2)
	dc.SetDash(4, 4)
	dc.Stroke()
}

func tracePolygon(dc *gg.Context, poly engine.Polygon) {
	if len(poly) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(poly[0].X, poly[0].Y)
	for _, p := range poly[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}
