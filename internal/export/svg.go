package export

import (
	"fmt"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo/float"

	"github.com/piwi3910/isoforge/internal/engine"
	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/render"
)

// WriteSVG writes objs as an SVG document in projection units. Each object
// is a group of three face polygons, emitted back to front.
func WriteSVG(w io.Writer, objs []model.SceneObject) error {
	min, max, ok := engine.ProjectedBounds(objs)
	if !ok {
		return ErrEmptyScene
	}
	minX, minY := min.X-Padding, min.Y-Padding
	vw, vh := max.X-min.X+2*Padding, max.Y-min.Y+2*Padding

	canvas := svg.New(w)
	canvas.Startview(math.Ceil(vw), math.Ceil(vh), minX, minY, vw, vh)
	for _, o := range engine.BackToFront(objs) {
		base, err := model.ParseHexColor(o.Color)
		if err != nil {
			base = model.MissingColor
		}
		faces := engine.FacePolygons(o)
		canvas.Gid(o.ID)
		svgPolygon(canvas, faces.Top, model.FormatHexColor(base))
		svgPolygon(canvas, faces.Left, model.FormatHexColor(model.ShadeColor(base, render.LeftShade)))
		svgPolygon(canvas, faces.Right, model.FormatHexColor(model.ShadeColor(base, render.RightShade)))
		canvas.Gend()
	}
	canvas.End()
	return nil
}

func svgPolygon(canvas *svg.SVG, poly engine.Polygon, fill string) {
	xs := make([]float64, len(poly))
	ys := make([]float64, len(poly))
	for i, p := range poly {
		xs[i], ys[i] = p.X, p.Y
	}
	canvas.Polygon(xs, ys, "fill:"+fill)
}

// ExportSVG writes objs to an SVG file at path.
func ExportSVG(path string, objs []model.SceneObject) error {
	if len(objs) == 0 {
		return ErrEmptyScene
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	if err := WriteSVG(f, objs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
