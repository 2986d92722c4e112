package widgets

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/isoforge/internal/editor"
	"github.com/piwi3910/isoforge/internal/engine"
	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/render"
)

// wheelScale converts fyne scroll steps to browser-style wheel deltas.
const wheelScale = 10.0

// SceneCanvas displays the editor's frame and forwards pointer and wheel
// input to it. Every refresh repaints the whole raster.
type SceneCanvas struct {
	widget.BaseWidget
	editor *editor.Editor
	raster *canvas.Raster

	// OnHover, when set, receives the grid cell under the pointer.
	OnHover func(cell model.Vec3)
}

var (
	_ desktop.Mouseable = (*SceneCanvas)(nil)
	_ desktop.Hoverable = (*SceneCanvas)(nil)
	_ fyne.Draggable    = (*SceneCanvas)(nil)
	_ fyne.Scrollable   = (*SceneCanvas)(nil)
)

func NewSceneCanvas(ed *editor.Editor) *SceneCanvas {
	sc := &SceneCanvas{editor: ed}
	sc.raster = canvas.NewRaster(sc.draw)
	sc.ExtendBaseWidget(sc)
	return sc
}

func (sc *SceneCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &sceneCanvasRenderer{sc: sc}
}

// draw renders at device resolution; w and h are pixels.
func (sc *SceneCanvas) draw(w, h int) image.Image {
	scale := 1.0
	if size := sc.Size(); size.Width > 0 {
		scale = float64(w) / float64(size.Width)
	}
	return render.NewImage(w, h, sc.editor.Frame().Scaled(scale))
}

func toPoint(p fyne.Position) model.Point2D {
	return model.Point2D{X: float64(p.X), Y: float64(p.Y)}
}

func multiSelect(m fyne.KeyModifier) bool {
	return m&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0
}

func (sc *SceneCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	sc.editor.PointerDown(editor.PointerEvent{
		Pos:      toPoint(ev.Position),
		Time:     time.Now(),
		Modifier: multiSelect(ev.Modifier),
	})
}

func (sc *SceneCanvas) MouseUp(ev *desktop.MouseEvent) {
	sc.editor.PointerUp(editor.PointerEvent{Pos: toPoint(ev.Position), Time: time.Now()})
}

func (sc *SceneCanvas) MouseIn(ev *desktop.MouseEvent) {
	sc.MouseMoved(ev)
}

func (sc *SceneCanvas) MouseMoved(ev *desktop.MouseEvent) {
	sc.move(ev.Position)
}

func (sc *SceneCanvas) MouseOut() {
	sc.editor.PointerLeave()
}

func (sc *SceneCanvas) Dragged(ev *fyne.DragEvent) {
	sc.move(ev.Position)
}

func (sc *SceneCanvas) DragEnd() {
	sc.editor.PointerUp(editor.PointerEvent{Time: time.Now()})
}

func (sc *SceneCanvas) Scrolled(ev *fyne.ScrollEvent) {
	sc.editor.Wheel(-float64(ev.Scrolled.DY) * wheelScale)
}

func (sc *SceneCanvas) move(p fyne.Position) {
	pt := toPoint(p)
	sc.editor.PointerMove(editor.PointerEvent{Pos: pt, Time: time.Now()})
	if sc.OnHover != nil {
		sc.OnHover(engine.ScreenToGrid(sc.editor.View().ToProjection(pt)))
	}
}

type sceneCanvasRenderer struct {
	sc *SceneCanvas
}

func (r *sceneCanvasRenderer) Layout(size fyne.Size) {
	r.sc.raster.Resize(size)
	r.sc.editor.SetCanvasSize(float64(size.Width), float64(size.Height))
}

func (r *sceneCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *sceneCanvasRenderer) Refresh() {
	r.sc.raster.Refresh()
}

func (r *sceneCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.sc.raster}
}

func (r *sceneCanvasRenderer) Destroy() {}
