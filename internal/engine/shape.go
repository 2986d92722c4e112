package engine

import (
	"sync"

	"github.com/piwi3910/isoforge/internal/model"
)

// Face identifies one of the three visible faces of a box.
type Face int

const (
	FaceNone Face = iota
	FaceTop
	FaceRight // x-max plane
	FaceLeft  // y-max plane
)

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	default:
		return "none"
	}
}

// HitOrder is the priority in which faces of one object are tested.
var HitOrder = [...]Face{FaceTop, FaceRight, FaceLeft}

// FaceSet holds the projected outline of each visible face.
type FaceSet struct {
	Top   Polygon
	Left  Polygon
	Right Polygon
}

// Get returns the polygon for f, or nil for FaceNone.
func (fs FaceSet) Get(f Face) Polygon {
	switch f {
	case FaceTop:
		return fs.Top
	case FaceRight:
		return fs.Right
	case FaceLeft:
		return fs.Left
	}
	return nil
}

// Shape is the geometry capability of a ShapeKind. Drawing is provided
// separately by the render package.
type Shape interface {
	// FacePolygons returns the visible faces of o in projection space.
	FacePolygons(o model.SceneObject) FaceSet
	// Adjacent returns the placement position flush against face f of o.
	Adjacent(o model.SceneObject, f Face) model.Vec3
}

var (
	shapesMu sync.RWMutex
	shapes   = map[model.ShapeKind]Shape{
		model.ShapeCube: Box{},
	}
)

// RegisterShape installs the geometry for kind, replacing any previous one.
func RegisterShape(kind model.ShapeKind, s Shape) {
	shapesMu.Lock()
	defer shapesMu.Unlock()
	shapes[kind] = s
}

// ShapeFor returns the geometry for kind. Unknown kinds fall back to Box.
func ShapeFor(kind model.ShapeKind) Shape {
	shapesMu.RLock()
	defer shapesMu.RUnlock()
	if s, ok := shapes[kind]; ok {
		return s
	}
	return Box{}
}

// FacePolygons returns the visible faces of o using its registered shape.
func FacePolygons(o model.SceneObject) FaceSet {
	return ShapeFor(o.Type).FacePolygons(o)
}

// Box is the axis-aligned box geometry used for cubes.
type Box struct{}

// FacePolygons projects the top face, the x-max face and the y-max face.
func (Box) FacePolygons(o model.SceneObject) FaceSet {
	x, y, z := o.Position.X, o.Position.Y, o.Position.Z
	w, h, d := o.Size.Width, o.Size.Height, o.Size.Depth
	p := func(px, py, pz float64) model.Point2D {
		return WorldToScreen(model.Vec3{X: px, Y: py, Z: pz})
	}
	return FaceSet{
		Top:   Polygon{p(x, y, z+h), p(x+w, y, z+h), p(x+w, y+d, z+h), p(x, y+d, z+h)},
		Right: Polygon{p(x+w, y, z), p(x+w, y+d, z), p(x+w, y+d, z+h), p(x+w, y, z+h)},
		Left:  Polygon{p(x, y+d, z), p(x+w, y+d, z), p(x+w, y+d, z+h), p(x, y+d, z+h)},
	}
}

// Adjacent returns the cell above (top), in +x (right) or in +y (left).
func (Box) Adjacent(o model.SceneObject, f Face) model.Vec3 {
	pos := o.Position
	switch f {
	case FaceTop:
		pos.Z += o.Size.Height
	case FaceRight:
		pos.X += o.Size.Width
	case FaceLeft:
		pos.Y += o.Size.Depth
	}
	return pos
}
