package engine

import "github.com/piwi3910/isoforge/internal/model"

// Polygon is an ordered, simple polygon in projection or screen space.
type Polygon []model.Point2D

// PointInPolygon reports whether pt lies inside poly using the even-odd rule.
// Points exactly on an edge may land on either side.
func PointInPolygon(pt model.Point2D, poly Polygon) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) &&
			pt.X < (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// Contains is PointInPolygon with the receiver as polygon.
func (p Polygon) Contains(pt model.Point2D) bool {
	return PointInPolygon(pt, p)
}

// Transform maps every vertex through the view into screen space.
func (p Polygon) Transform(view model.ViewTransform) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = view.ToScreen(v)
	}
	return out
}

// Centroid returns the vertex average.
func (p Polygon) Centroid() model.Point2D {
	var c model.Point2D
	if len(p) == 0 {
		return c
	}
	for _, v := range p {
		c.X += v.X
		c.Y += v.Y
	}
	n := float64(len(p))
	return model.Point2D{X: c.X / n, Y: c.Y / n}
}
