package export

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/piwi3910/isoforge/internal/engine"
	"github.com/piwi3910/isoforge/internal/importer"
	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/render"
)

func buildTestProject() model.Project {
	return model.Project{
		ID:   "project-test",
		Name: "Test Scene",
		Objects: []model.SceneObject{
			{ID: "cube-back", Type: model.ShapeCube, Position: model.Vec3{}, Size: model.UnitSize, Color: "#ff0000"},
			{ID: "cube-front", Type: model.ShapeCube, Position: model.Vec3{X: 2, Y: 1}, Size: model.Size{Width: 1, Height: 2, Depth: 1}, Color: "#3b82f6"},
			{ID: "cube-top", Type: model.ShapeCube, Position: model.Vec3{Z: 1}, Size: model.UnitSize, Color: "#ff0000"},
		},
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000000000,
	}
}

func unitCube() []model.SceneObject {
	return []model.SceneObject{{ID: "c", Type: model.ShapeCube, Size: model.UnitSize, Color: "#808080"}}
}

// ─── Format Tests ──────────────────────────────────────────

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.json": FormatJSON, "b.SVG": FormatSVG, "c.png": FormatPNG, "d.bmp": FormatBMP,
		"e.tif": FormatTIFF, "f.tiff": FormatTIFF, "g.pdf": FormatPDF, "h.dxf": FormatDXF, "i.xlsx": FormatXLSX,
	}
	for path, want := range tests {
		got, err := FormatForPath(path)
		if err != nil || got != want {
			t.Errorf("FormatForPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatForPath("scene.gif"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestDefaultFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	if got := DefaultFileName(FormatJSON, now); got != "isometric-project-1700000000123.json" {
		t.Errorf("unexpected name %s", got)
	}
}

func TestExportersRejectEmptyScene(t *testing.T) {
	dir := t.TempDir()
	empty := model.Project{ID: "p", Name: "empty"}
	for _, name := range []string{"a.svg", "a.png", "a.pdf", "a.dxf", "a.xlsx"} {
		err := ExportFile(filepath.Join(dir, name), empty)
		if !errors.Is(err, ErrEmptyScene) {
			t.Errorf("%s: expected ErrEmptyScene, got %v", name, err)
		}
	}
}

// ─── JSON Tests ────────────────────────────────────────────

func TestExportJSON_RoundTripsThroughImporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	p := buildTestProject()
	if err := ExportFile(path, p); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}
	loaded, err := importer.LoadProjectFile(path)
	if err != nil {
		t.Fatalf("exported JSON failed validation: %v", err)
	}
	if loaded.ID != p.ID || len(loaded.Objects) != 3 || loaded.Objects[1] != p.Objects[1] {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestExportJSON_EmptyProjectStillValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ExportJSON(path, model.Project{ID: "p", Name: "n"}); err != nil {
		t.Fatal(err)
	}
	if _, err := importer.LoadProjectFile(path); err != nil {
		t.Errorf("empty project should validate, got %v", err)
	}
}

// ─── SVG Tests ─────────────────────────────────────────────

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, buildTestProject().Objects); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "viewBox") {
		t.Error("expected an svg root with a viewBox")
	}
	if n := strings.Count(out, "<polygon"); n != 9 {
		t.Errorf("expected 9 polygons, got %d", n)
	}
	// Depth order: back cube first, then the cube on top of it, then the front one.
	back := strings.Index(out, `id="cube-back"`)
	top := strings.Index(out, `id="cube-top"`)
	front := strings.Index(out, `id="cube-front"`)
	if back < 0 || !(back < top && top < front) {
		t.Errorf("groups out of depth order: back=%d top=%d front=%d", back, top, front)
	}
	// Left face shaded 10%: #ff0000 -> #e50000.
	if !strings.Contains(out, "fill:#e50000") {
		t.Error("expected shaded left face color")
	}
}

func TestWriteSVG_InvalidColorUsesPlaceholder(t *testing.T) {
	objs := unitCube()
	objs[0].Color = "nope"
	var buf bytes.Buffer
	if err := WriteSVG(&buf, objs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "fill:"+model.FormatHexColor(model.MissingColor)) {
		t.Error("expected placeholder fill")
	}
}

func TestExportSVG_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.svg")
	if err := ExportSVG(path, unitCube()); err != nil {
		t.Fatalf("ExportSVG failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty SVG file, err=%v", err)
	}
}

// ─── Raster Tests ──────────────────────────────────────────

func TestRenderImage_UnitCube(t *testing.T) {
	img, err := RenderImage(unitCube(), 1)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	// Unit cube spans 2*cos(30deg)*40 by 80 projection units, plus padding.
	if b.Dx() != 110 || b.Dy() != 120 {
		t.Errorf("unexpected size %dx%d", b.Dx(), b.Dy())
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("export background should be transparent")
	}
	if _, _, _, a := img.At(b.Dx()/2, 30).RGBA(); a == 0 {
		t.Error("expected the top face to be drawn")
	}
}

func TestRenderImage_Scale(t *testing.T) {
	img, err := RenderImage(unitCube(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 219 || b.Dy() != 240 {
		t.Errorf("unexpected size %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderView_KeepsView(t *testing.T) {
	objs := unitCube()
	view := model.ViewTransform{Offset: model.Point2D{X: 120, Y: 80}, Zoom: 2}
	frame := render.Frame{Objects: objs, View: view, ShowGrid: true, Selection: model.Selection{objs[0].ID}}

	img, err := RenderView(frame, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("expected canvas size 640x480, got %dx%d", b.Dx(), b.Dy())
	}
	top := view.ToScreen(engine.FacePolygons(objs[0]).Get(engine.FaceTop).Centroid())
	if _, _, _, a := img.At(int(top.X), int(top.Y)).RGBA(); a == 0 {
		t.Errorf("expected the top face at %v", top)
	}
	if _, _, _, a := img.At(630, 470).RGBA(); a != 0 {
		t.Error("export background should be transparent")
	}

	// Panning the view moves the cube in the exported image.
	frame.View = view.Pan(300, 200)
	moved, err := RenderView(frame, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := moved.At(int(top.X), int(top.Y)).RGBA(); a != 0 {
		t.Error("expected the old position to be empty after panning")
	}
	shifted := frame.View.ToScreen(engine.FacePolygons(objs[0]).Get(engine.FaceTop).Centroid())
	if _, _, _, a := moved.At(int(shifted.X), int(shifted.Y)).RGBA(); a == 0 {
		t.Errorf("expected the top face at %v", shifted)
	}
}

func TestRenderView_Errors(t *testing.T) {
	if _, err := RenderView(render.Frame{}, 100, 100); !errors.Is(err, ErrEmptyScene) {
		t.Errorf("expected ErrEmptyScene, got %v", err)
	}
	if _, err := RenderView(render.Frame{Objects: unitCube()}, 0, 100); err == nil {
		t.Error("expected an error for a zero-width view")
	}
}

func TestExportViewImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.png")
	frame := render.Frame{Objects: unitCube(), View: model.NewViewTransform(200, 150)}
	if err := ExportViewImage(path, frame, 400, 300); err != nil {
		t.Fatalf("ExportViewImage failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("unexpected size %dx%d", b.Dx(), b.Dy())
	}
}

func TestExportImage_Encoders(t *testing.T) {
	dir := t.TempDir()
	decoders := map[string]func(f *os.File) (image.Image, error){
		"scene.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"scene.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"scene.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}
	for name, decode := range decoders {
		path := filepath.Join(dir, name)
		if err := ExportImage(path, unitCube(), 1); err != nil {
			t.Fatalf("%s: ExportImage failed: %v", name, err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		img, err := decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: decode failed: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 110 || b.Dy() != 120 {
			t.Errorf("%s: unexpected size %dx%d", name, b.Dx(), b.Dy())
		}
	}
}

// ─── PDF Tests ─────────────────────────────────────────────

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.pdf")
	if err := ExportPDF(path, buildTestProject()); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("expected PDF header")
	}
	if len(data) < 1000 {
		t.Errorf("PDF suspiciously small: %d bytes", len(data))
	}
}

func TestExportPDF_ManyColors(t *testing.T) {
	p := buildTestProject()
	p.Objects = nil
	for i := 0; i < 60; i++ {
		o := model.NewObject(model.ShapeCube, model.Vec3{X: float64(i % 8), Y: float64(i / 8)}, model.FormatHexColor(model.ShadeColor(model.MissingColor, float64(-i))))
		p.Objects = append(p.Objects, o)
	}
	path := filepath.Join(t.TempDir(), "many.pdf")
	if err := ExportPDF(path, p); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
}

func TestQRCodePNG(t *testing.T) {
	data, err := QRCodePNG(NewProjectCode(buildTestProject()), 128)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("QR code is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("expected 128px QR code, got %d", img.Bounds().Dx())
	}
	code := NewProjectCode(buildTestProject())
	if code.Objects != 3 || code.ID != "project-test" {
		t.Errorf("unexpected code %+v", code)
	}
}

// ─── DXF Tests ─────────────────────────────────────────────

func TestExportDXF_TwelveEdgesPerBox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.dxf")
	p := buildTestProject()
	if err := ExportDXF(path, p.Objects); err != nil {
		t.Fatalf("ExportDXF failed: %v", err)
	}
	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen DXF: %v", err)
	}
	lines := 0
	for _, e := range d.Entities() {
		if _, ok := e.(*entity.Line); ok {
			lines++
		}
	}
	if lines != 12*len(p.Objects) {
		t.Errorf("expected %d lines, got %d", 12*len(p.Objects), lines)
	}
}

func TestExportDXF_RoundTripsThroughImporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.dxf")
	p := buildTestProject()
	if err := ExportDXF(path, p.Objects); err != nil {
		t.Fatal(err)
	}
	result := importer.ImportDXF(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Objects) != len(p.Objects) {
		t.Fatalf("expected %d objects, got %d", len(p.Objects), len(result.Objects))
	}
	for i, o := range result.Objects {
		want := p.Objects[i]
		if o.ID != want.ID || o.Position != want.Position || o.Size != want.Size {
			t.Errorf("object %d: got %+v, want %+v", i, o, want)
		}
	}
}

func TestBoxEdges(t *testing.T) {
	o := model.SceneObject{Position: model.Vec3{X: 1}, Size: model.Size{Width: 2, Height: 3, Depth: 4}}
	var length float64
	for _, e := range boxEdges(o) {
		a, b := e[0], e[1]
		length += (b.X - a.X) + (b.Y - a.Y) + (b.Z - a.Z)
	}
	// Signed sum of edge vectors: each ring cancels, verticals add 4*height.
	if length != 12 {
		t.Errorf("unexpected edge sum %f", length)
	}
}

func TestNearestACI(t *testing.T) {
	if got := nearestACI("#fe0101"); got != 1 {
		t.Errorf("expected red (1), got %d", got)
	}
	if got := nearestACI("#0000f0"); got != 5 {
		t.Errorf("expected blue (5), got %d", got)
	}
	if got := nearestACI("bogus"); got != 7 {
		t.Errorf("expected white (7), got %d", got)
	}
}

// ─── XLSX Tests ────────────────────────────────────────────

func TestExportXLSX_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.xlsx")
	if err := ExportXLSX(path, buildTestProject()); err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != ObjectsSheet || sheets[1] != SummarySheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	rows, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 colors, got %d rows", len(rows))
	}
	if rows[1][0] != "#ff0000" || rows[1][1] != "2" {
		t.Errorf("unexpected red summary row %v", rows[1])
	}
}

func TestExportXLSX_RoundTripsThroughImporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.xlsx")
	p := buildTestProject()
	if err := ExportXLSX(path, p); err != nil {
		t.Fatal(err)
	}
	result := importer.ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Objects) != len(p.Objects) {
		t.Fatalf("expected %d objects, got %d", len(p.Objects), len(result.Objects))
	}
	for i, o := range result.Objects {
		if o != p.Objects[i] {
			t.Errorf("object %d: got %+v, want %+v", i, o, p.Objects[i])
		}
	}
}
