package render

import (
	"image/color"
	"sync"

	"github.com/fogleman/gg"

	"github.com/piwi3910/isoforge/internal/engine"
	"github.com/piwi3910/isoforge/internal/model"
)

// Drawer paints one object of a given ShapeKind.
type Drawer interface {
	Draw(dc *gg.Context, o model.SceneObject, view model.ViewTransform, base color.NRGBA)
}

var (
	drawersMu sync.RWMutex
	drawers   = map[model.ShapeKind]Drawer{
		model.ShapeCube: BoxDrawer{},
	}
)

// RegisterDrawer installs the drawer for kind.
func RegisterDrawer(kind model.ShapeKind, d Drawer) {
	drawersMu.Lock()
	defer drawersMu.Unlock()
	drawers[kind] = d
}

// DrawerFor returns the drawer for kind, falling back to BoxDrawer.
func DrawerFor(kind model.ShapeKind) Drawer {
	drawersMu.RLock()
	defer drawersMu.RUnlock()
	if d, ok := drawers[kind]; ok {
		return d
	}
	return BoxDrawer{}
}

// BoxDrawer fills the three visible faces: top in the base color, left
// and right shaded darker.
type BoxDrawer struct{}

func (BoxDrawer) Draw(dc *gg.Context, o model.SceneObject, view model.ViewTransform, base color.NRGBA) {
	faces := engine.FacePolygons(o)
	fill(dc, faces.Top.Transform(view), base)
	fill(dc, faces.Left.Transform(view), model.ShadeColor(base, LeftShade))
	fill(dc, faces.Right.Transform(view), model.ShadeColor(base, RightShade))
}

func fill(dc *gg.Context, poly engine.Polygon, c color.NRGBA) {
	tracePolygon(dc, poly)
	dc.SetColor(c)
	dc.Fill()
}
