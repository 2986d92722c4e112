package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/isoforge/internal/model"
)

// aci lists the basic AutoCAD color indices with their RGB values.
var aci = []struct {
	num     color.ColorNumber
	r, g, b float64
}{
	{1, 255, 0, 0},
	{2, 255, 255, 0},
	{3, 0, 255, 0},
	{4, 0, 255, 255},
	{5, 0, 0, 255},
	{6, 255, 0, 255},
	{7, 255, 255, 255},
	{8, 128, 128, 128},
}

// nearestACI maps a hex color to the closest basic color index.
func nearestACI(hex string) color.ColorNumber {
	c, err := model.ParseHexColor(hex)
	if err != nil {
		return 7
	}
	best, bestDist := aci[0].num, math.Inf(1)
	for _, a := range aci {
		dr, dg, db := float64(c.R)-a.r, float64(c.G)-a.g, float64(c.B)-a.b
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = a.num, d
		}
	}
	return best
}

// boxEdges returns the 12 edges of o's bounding box in world units.
func boxEdges(o model.SceneObject) [12][2]model.Vec3 {
	c := func(x, y, z bool) model.Vec3 { return o.Corner(x, y, z) }
	var edges [12][2]model.Vec3
	i := 0
	for _, z := range []bool{false, true} {
		ring := [4]model.Vec3{c(false, false, z), c(true, false, z), c(true, true, z), c(false, true, z)}
		for j := range ring {
			edges[i] = [2]model.Vec3{ring[j], ring[(j+1)%4]}
			i++
		}
	}
	for _, xy := range [4][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		edges[i] = [2]model.Vec3{c(xy[0], xy[1], false), c(xy[0], xy[1], true)}
		i++
	}
	return edges
}

// ExportDXF writes each object's box as 12 LINE entities on a layer named
// after the object id, in world units with z up.
func ExportDXF(path string, objs []model.SceneObject) error {
	if len(objs) == 0 {
		return ErrEmptyScene
	}

	d := dxf.NewDrawing()
	for _, o := range objs {
		if _, err := d.AddLayer(o.ID, nearestACI(o.Color), table.LT_CONTINUOUS, true); err != nil {
			if err := d.ChangeLayer(o.ID); err != nil {
				return fmt.Errorf("failed to select layer %s: %w", o.ID, err)
			}
		}
		for _, e := range boxEdges(o) {
			a, b := e[0], e[1]
			if _, err := d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z); err != nil {
				return fmt.Errorf("failed to add edge for %s: %w", o.ID, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF file: %w", err)
	}
	return nil
}
