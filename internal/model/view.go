package model

// ViewTransform is the camera pan/zoom state. A projection-space point p
// appears on screen at p*Zoom + Offset.
type ViewTransform struct {
	Offset Point2D `json:"offset"`
	Zoom   float64 `json:"zoom"`
}

// NewViewTransform returns an unzoomed view whose origin sits at (cx, cy).
func NewViewTransform(cx, cy float64) ViewTransform {
	return ViewTransform{Offset: Point2D{X: cx, Y: cy}, Zoom: 1}
}

func (v ViewTransform) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ToScreen maps a projection-space point to screen space.
func (v ViewTransform) ToScreen(p Point2D) Point2D {
	z := v.zoom()
	return Point2D{X: p.X*z + v.Offset.X, Y: p.Y*z + v.Offset.Y}
}

// ToProjection maps a screen point back to projection space.
func (v ViewTransform) ToProjection(s Point2D) Point2D {
	z := v.zoom()
	return Point2D{X: (s.X - v.Offset.X) / z, Y: (s.Y - v.Offset.Y) / z}
}

// Pan translates the offset by (dx, dy) screen pixels.
func (v ViewTransform) Pan(dx, dy float64) ViewTransform {
	v.Offset.X += dx
	v.Offset.Y += dy
	return v
}

// ZoomBy multiplies zoom by factor and clamps the result to [min, max].
// The offset is left unchanged.
func (v ViewTransform) ZoomBy(factor, min, max float64) ViewTransform {
	z := v.zoom() * factor
	if z < min {
		z = min
	}
	if z > max {
		z = max
	}
	v.Zoom = z
	return v
}
