package engine

import "github.com/piwi3910/isoforge/internal/model"

// Hit describes the front-most face under a pointer.
type Hit struct {
	ObjectID string
	Face     Face
	// Position is where a new object would be placed flush against Face.
	Position model.Vec3
}

// HitTest finds the nearest face under a screen point. Objects are tested
// front to back and faces in HitOrder; the first containing polygon wins.
func HitTest(objs []model.SceneObject, screen model.Point2D, view model.ViewTransform) (Hit, bool) {
	pt := view.ToProjection(screen)
	for _, o := range FrontToBack(objs) {
		shape := ShapeFor(o.Type)
		faces := shape.FacePolygons(o)
		for _, f := range HitOrder {
			if faces.Get(f).Contains(pt) {
				return Hit{ObjectID: o.ID, Face: f, Position: shape.Adjacent(o, f)}, true
			}
		}
	}
	return Hit{}, false
}

// ResolvePlacement returns where a placement at screen would land: flush
// against the hit face, or the z=0 grid cell under the pointer on a miss.
func ResolvePlacement(objs []model.SceneObject, screen model.Point2D, view model.ViewTransform) model.Vec3 {
	if hit, ok := HitTest(objs, screen, view); ok {
		return hit.Position
	}
	return ScreenToGrid(view.ToProjection(screen))
}
