package engine

import (
	"sort"

	"github.com/samber/lo"

	"github.com/piwi3910/isoforge/internal/model"
)

// Depth is the painter's-algorithm key. Larger values are nearer the viewer.
func Depth(o model.SceneObject) float64 {
	return o.Position.X + o.Position.Y + o.Position.Z
}

// BackToFront returns a copy of objs in ascending depth. Equal depths keep
// their collection order.
func BackToFront(objs []model.SceneObject) []model.SceneObject {
	sorted := model.CloneObjects(objs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Depth(sorted[i]) < Depth(sorted[j])
	})
	return sorted
}

// FrontToBack is BackToFront reversed.
func FrontToBack(objs []model.SceneObject) []model.SceneObject {
	return lo.Reverse(BackToFront(objs))
}
