package engine

import (
	"math"

	"github.com/piwi3910/isoforge/internal/model"
)

const (
	// IsoAngle is the fixed axonometric angle (30 degrees).
	IsoAngle = math.Pi / 6
	// GridScale is the projected length, in pixels at zoom 1, of one world unit.
	GridScale = 40.0
	// GridCells is how many cells the ground grid extends either side of the origin.
	GridCells = 15
)

var (
	isoCos = math.Cos(IsoAngle)
	isoSin = math.Sin(IsoAngle)
)

// WorldToScreen projects a world position into unzoomed projection space.
// Pan and zoom are applied separately by model.ViewTransform.
func WorldToScreen(p model.Vec3) model.Point2D {
	return model.Point2D{
		X: (p.X - p.Y) * isoCos * GridScale,
		Y: (p.X+p.Y)*isoSin*GridScale - p.Z*GridScale,
	}
}

// ScreenToPlane inverts WorldToScreen on the z=0 plane without rounding.
func ScreenToPlane(s model.Point2D) (x, y float64) {
	diff := s.X / (isoCos * GridScale) // x - y
	sum := s.Y / (isoSin * GridScale)  // x + y
	return (sum + diff) / 2, (sum - diff) / 2
}

// ScreenToGrid returns the z=0 grid cell under a projection-space point.
// Halves round away from zero.
func ScreenToGrid(s model.Point2D) model.Vec3 {
	x, y := ScreenToPlane(s)
	return model.Vec3{X: roundCell(x), Y: roundCell(y)}
}

func roundCell(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// ProjectedBounds returns the bounding box of every projected corner of objs.
// ok is false for an empty scene.
func ProjectedBounds(objs []model.SceneObject) (min, max model.Point2D, ok bool) {
	first := true
	for _, o := range objs {
		for _, c := range corners(o) {
			p := WorldToScreen(c)
			if first {
				min, max, first = p, p, false
				continue
			}
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
		}
	}
	return min, max, !first
}

func corners(o model.SceneObject) [8]model.Vec3 {
	var out [8]model.Vec3
	for i := 0; i < 8; i++ {
		out[i] = o.Corner(i&1 != 0, i&2 != 0, i&4 != 0)
	}
	return out
}
