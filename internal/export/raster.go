package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/piwi3910/isoforge/internal/engine"
	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/render"
)

// RenderImage draws objs in export mode: transparent background, no grid,
// no overlays. scale is pixels per projection unit.
func RenderImage(objs []model.SceneObject, scale float64) (image.Image, error) {
	min, max, ok := engine.ProjectedBounds(objs)
	if !ok {
		return nil, ErrEmptyScene
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	w := int(math.Ceil((max.X - min.X + 2*Padding) * scale))
	h := int(math.Ceil((max.Y - min.Y + 2*Padding) * scale))
	view := model.ViewTransform{
		Offset: model.Point2D{X: (Padding - min.X) * scale, Y: (Padding - min.Y) * scale},
		Zoom:   scale,
	}
	return render.NewImage(w, h, render.Frame{Objects: objs, View: view, Export: true}), nil
}

// RenderView draws f at width x height pixels using f's own view, so the
// image shows exactly what the canvas shows. The frame is forced into
// export mode.
func RenderView(f render.Frame, width, height int) (image.Image, error) {
	if len(f.Objects) == 0 {
		return nil, ErrEmptyScene
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid view size %dx%d", width, height)
	}
	f.Export = true
	f.Selection = nil
	f.Ghost = nil
	f.ShowGrid = false
	return render.NewImage(width, height, f), nil
}

// EncodeImage writes img to w in format f (png, bmp or tiff).
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported image format %q", f)
}

// ExportImage renders objs and writes them to path, choosing the encoder
// from the file extension.
func ExportImage(path string, objs []model.SceneObject, scale float64) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	img, err := RenderImage(objs, scale)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := EncodeImage(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return f.Close()
}

// ExportViewImage writes the current canvas view of f to path.
func ExportViewImage(path string, f render.Frame, width, height int) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	img, err := RenderView(f, width, height)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := EncodeImage(out, img, format); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return out.Close()
}
