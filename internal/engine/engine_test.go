package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/isoforge/internal/model"
)

func cube(id string, x, y, z float64) model.SceneObject {
	return model.SceneObject{
		ID:       id,
		Type:     model.ShapeCube,
		Position: model.Vec3{X: x, Y: y, Z: z},
		Size:     model.UnitSize,
		Color:    "#8b5cf6",
	}
}

func objectIDs(objs []model.SceneObject) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.ID
	}
	return out
}

func TestWorldToScreen_KnownPoints(t *testing.T) {
	p := WorldToScreen(model.Vec3{})
	assert.Equal(t, model.Point2D{}, p)

	p = WorldToScreen(model.Vec3{X: 1})
	assert.InDelta(t, math.Sqrt(3)/2*GridScale, p.X, 1e-9)
	assert.InDelta(t, 0.5*GridScale, p.Y, 1e-9)

	p = WorldToScreen(model.Vec3{Y: 1})
	assert.InDelta(t, -math.Sqrt(3)/2*GridScale, p.X, 1e-9)
	assert.InDelta(t, 0.5*GridScale, p.Y, 1e-9)

	p = WorldToScreen(model.Vec3{Z: 1})
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, -GridScale, p.Y, 1e-9, "z moves straight up")
}

func TestScreenToGrid_RoundTrip(t *testing.T) {
	for x := -GridCells; x <= GridCells; x++ {
		for y := -GridCells; y <= GridCells; y++ {
			world := model.Vec3{X: float64(x), Y: float64(y)}
			got := ScreenToGrid(WorldToScreen(world))
			require.Equal(t, world, got, "cell (%d,%d)", x, y)
		}
	}
}

func TestScreenToPlane_Inverse(t *testing.T) {
	x, y := ScreenToPlane(WorldToScreen(model.Vec3{X: 2.25, Y: -3.75}))
	assert.InDelta(t, 2.25, x, 1e-9)
	assert.InDelta(t, -3.75, y, 1e-9)
}

func TestRoundCell_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1.0, roundCell(0.5))
	assert.Equal(t, -1.0, roundCell(-0.5))
	assert.Equal(t, 2.0, roundCell(1.5))
	assert.Equal(t, -2.0, roundCell(-1.5))
	assert.Equal(t, 3.0, roundCell(2.5), "not banker's rounding")
	assert.False(t, math.Signbit(roundCell(-0.2)), "negative zero is normalized")
}

func TestPointInPolygon_Square(t *testing.T) {
	sq := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.True(t, PointInPolygon(model.Point2D{X: 5, Y: 5}, sq))
	assert.False(t, PointInPolygon(model.Point2D{X: 15, Y: 5}, sq))
	assert.False(t, PointInPolygon(model.Point2D{X: 5, Y: -1}, sq))
	assert.False(t, PointInPolygon(model.Point2D{X: 5, Y: 5}, nil))
}

func TestPointInPolygon_Concave(t *testing.T) {
	// U shape: the notch between the arms is outside.
	u := Polygon{
		{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}, {X: 2, Y: 3},
		{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 3}, {X: 0, Y: 3},
	}
	assert.True(t, u.Contains(model.Point2D{X: 0.5, Y: 2}))
	assert.True(t, u.Contains(model.Point2D{X: 2.5, Y: 2}))
	assert.False(t, u.Contains(model.Point2D{X: 1.5, Y: 2}))
}

func TestBoxFacePolygons_Layout(t *testing.T) {
	faces := FacePolygons(cube("a", 0, 0, 0))
	require.Len(t, faces.Top, 4)
	require.Len(t, faces.Left, 4)
	require.Len(t, faces.Right, 4)

	assert.Equal(t, WorldToScreen(model.Vec3{Z: 1}), faces.Top[0])
	assert.Equal(t, WorldToScreen(model.Vec3{X: 1, Y: 1, Z: 1}), faces.Top[2])
	assert.Equal(t, WorldToScreen(model.Vec3{X: 1}), faces.Right[0])
	assert.Equal(t, WorldToScreen(model.Vec3{Y: 1}), faces.Left[0])
}

// faceCenter returns the screen point at the centre of face f of o.
func faceCenter(o model.SceneObject, f Face, view model.ViewTransform) model.Point2D {
	return view.ToScreen(FacePolygons(o).Get(f).Centroid())
}

func TestHitTest_UnitCubeFaces(t *testing.T) {
	views := map[string]model.ViewTransform{
		"identity": {Zoom: 1},
		"panned":   {Offset: model.Point2D{X: 400, Y: 300}, Zoom: 2.5},
	}
	c := cube("a", 0, 0, 0)
	objs := []model.SceneObject{c}

	for name, view := range views {
		t.Run(name, func(t *testing.T) {
			hit, ok := HitTest(objs, faceCenter(c, FaceTop, view), view)
			require.True(t, ok)
			assert.Equal(t, FaceTop, hit.Face)
			assert.Equal(t, "a", hit.ObjectID)
			assert.Equal(t, model.Vec3{Z: 1}, hit.Position)

			hit, ok = HitTest(objs, faceCenter(c, FaceRight, view), view)
			require.True(t, ok)
			assert.Equal(t, FaceRight, hit.Face)
			assert.Equal(t, model.Vec3{X: 1}, hit.Position)

			hit, ok = HitTest(objs, faceCenter(c, FaceLeft, view), view)
			require.True(t, ok)
			assert.Equal(t, FaceLeft, hit.Face)
			assert.Equal(t, model.Vec3{Y: 1}, hit.Position)
		})
	}
}

func TestHitTest_NonUnitSize(t *testing.T) {
	o := cube("tall", 2, 3, 1)
	o.Size = model.Size{Width: 2, Height: 3, Depth: 4}
	view := model.ViewTransform{Zoom: 1}

	hit, ok := HitTest([]model.SceneObject{o}, faceCenter(o, FaceTop, view), view)
	require.True(t, ok)
	assert.Equal(t, model.Vec3{X: 2, Y: 3, Z: 4}, hit.Position)

	hit, ok = HitTest([]model.SceneObject{o}, faceCenter(o, FaceRight, view), view)
	require.True(t, ok)
	assert.Equal(t, model.Vec3{X: 4, Y: 3, Z: 1}, hit.Position)

	hit, ok = HitTest([]model.SceneObject{o}, faceCenter(o, FaceLeft, view), view)
	require.True(t, ok)
	assert.Equal(t, model.Vec3{X: 2, Y: 7, Z: 1}, hit.Position)
}

func TestHitTest_Miss(t *testing.T) {
	view := model.ViewTransform{Zoom: 1}
	_, ok := HitTest([]model.SceneObject{cube("a", 0, 0, 0)}, model.Point2D{X: 500, Y: 500}, view)
	assert.False(t, ok)

	_, ok = HitTest(nil, model.Point2D{}, view)
	assert.False(t, ok)
}

func TestHitTest_StackedCubes(t *testing.T) {
	lower := cube("lower", 0, 0, 0)
	upper := cube("upper", 0, 0, 1)
	objs := []model.SceneObject{upper, lower}
	view := model.ViewTransform{Zoom: 1}

	hit, ok := HitTest(objs, faceCenter(upper, FaceTop, view), view)
	require.True(t, ok)
	assert.Equal(t, "upper", hit.ObjectID)
	assert.Equal(t, model.Vec3{Z: 2}, hit.Position)

	hit, ok = HitTest(objs, faceCenter(lower, FaceRight, view), view)
	require.True(t, ok)
	assert.Equal(t, "lower", hit.ObjectID)
	assert.Equal(t, FaceRight, hit.Face)
}

func TestHitTest_EqualDepthPrefersLaterObject(t *testing.T) {
	first := cube("first", 0, 0, 0)
	second := cube("second", 0, 0, 0)
	view := model.ViewTransform{Zoom: 1}

	hit, ok := HitTest([]model.SceneObject{first, second}, faceCenter(first, FaceTop, view), view)
	require.True(t, ok)
	assert.Equal(t, "second", hit.ObjectID, "later object is painted on top")
}

func TestResolvePlacement_FallbackToGrid(t *testing.T) {
	view := model.ViewTransform{Offset: model.Point2D{X: 100, Y: 50}, Zoom: 1.5}
	target := model.Vec3{X: 3, Y: -2}
	screen := view.ToScreen(WorldToScreen(target))

	assert.Equal(t, target, ResolvePlacement(nil, screen, view))
}

func TestResolvePlacement_PrefersFace(t *testing.T) {
	c := cube("a", 4, 4, 0)
	view := model.ViewTransform{Zoom: 1}
	got := ResolvePlacement([]model.SceneObject{c}, faceCenter(c, FaceTop, view), view)
	assert.Equal(t, model.Vec3{X: 4, Y: 4, Z: 1}, got)
}

func TestDepthOrder(t *testing.T) {
	objs := []model.SceneObject{
		cube("far", 0, 0, 0),
		cube("near", 3, 3, 0),
		cube("tieA", 1, 0, 0),
		cube("mid", 1, 1, 1),
		cube("tieB", 0, 1, 0),
	}

	back := BackToFront(objs)
	assert.Equal(t, []string{"far", "tieA", "tieB", "mid", "near"}, objectIDs(back))

	front := FrontToBack(objs)
	assert.Equal(t, []string{"near", "mid", "tieB", "tieA", "far"}, objectIDs(front))

	assert.Equal(t, "far", objs[0].ID, "input is not reordered")
}

func TestFrontToBack_IsExactReverse(t *testing.T) {
	var objs []model.SceneObject
	for i := 0; i < 40; i++ {
		objs = append(objs, cube(string(rune('A'+i)), float64(i%5), float64(i%3), float64(i%2)))
	}
	back := objectIDs(BackToFront(objs))
	front := objectIDs(FrontToBack(objs))
	require.Len(t, front, len(back))
	for i := range back {
		assert.Equal(t, back[i], front[len(front)-1-i])
	}
}

func TestProjectedBounds(t *testing.T) {
	_, _, ok := ProjectedBounds(nil)
	assert.False(t, ok)

	min, max, ok := ProjectedBounds([]model.SceneObject{cube("a", 0, 0, 0)})
	require.True(t, ok)
	half := math.Sqrt(3) / 2 * GridScale
	assert.InDelta(t, -half, min.X, 1e-9)
	assert.InDelta(t, half, max.X, 1e-9)
	assert.InDelta(t, -GridScale, min.Y, 1e-9)
	assert.InDelta(t, GridScale, max.Y, 1e-9)
}

type wedge struct{ Box }

func (wedge) Adjacent(o model.SceneObject, f Face) model.Vec3 {
	return o.Position
}

func TestRegisterShape(t *testing.T) {
	kind := model.ShapeKind("wedge-test")
	RegisterShape(kind, wedge{})
	o := cube("w", 5, 5, 0)
	o.Type = kind

	view := model.ViewTransform{Zoom: 1}
	hit, ok := HitTest([]model.SceneObject{o}, faceCenter(o, FaceTop, view), view)
	require.True(t, ok)
	assert.Equal(t, o.Position, hit.Position, "registered geometry is used")
}
