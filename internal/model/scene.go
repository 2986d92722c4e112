package model

import (
	"github.com/samber/lo"
)

// Selection is an ordered set of object ids. Ids that are not present in
// the scene are inert.
type Selection []string

// Contains reports whether id is selected.
func (s Selection) Contains(id string) bool {
	return lo.Contains([]string(s), id)
}

// Toggle adds id if absent and removes it otherwise.
func (s Selection) Toggle(id string) Selection {
	if s.Contains(id) {
		return Selection(lo.Without([]string(s), id))
	}
	return append(append(Selection{}, s...), id)
}

// Without returns the selection minus ids.
func (s Selection) Without(ids ...string) Selection {
	return Selection(lo.Without([]string(s), ids...))
}

// Objects returns the selected objects in scene order.
func (s Selection) Objects(objs []SceneObject) []SceneObject {
	return lo.Filter(objs, func(o SceneObject, _ int) bool {
		return s.Contains(o.ID)
	})
}

// Prune drops ids that no longer exist in objs.
func (s Selection) Prune(objs []SceneObject) Selection {
	ids := lo.Map(objs, func(o SceneObject, _ int) string { return o.ID })
	return Selection(lo.Filter([]string(s), func(id string, _ int) bool {
		return lo.Contains(ids, id)
	}))
}

// The helpers below never modify their input slice; each returns a fresh
// collection suitable for a history commit.

// FindObject returns the object with the given id.
func FindObject(objs []SceneObject, id string) (SceneObject, bool) {
	return lo.Find(objs, func(o SceneObject) bool { return o.ID == id })
}

// AppendObjects returns objs followed by added.
func AppendObjects(objs []SceneObject, added ...SceneObject) []SceneObject {
	out := make([]SceneObject, 0, len(objs)+len(added))
	out = append(out, objs...)
	return append(out, added...)
}

// RemoveObjects returns objs without the objects whose id is in ids.
func RemoveObjects(objs []SceneObject, ids ...string) []SceneObject {
	return lo.Filter(objs, func(o SceneObject, _ int) bool {
		return !lo.Contains(ids, o.ID)
	})
}

// SendToBack moves the selected objects to the start of the collection,
// keeping relative order within both groups.
func SendToBack(objs []SceneObject, sel Selection) []SceneObject {
	selected, rest := lo.FilterReject(objs, func(o SceneObject, _ int) bool {
		return sel.Contains(o.ID)
	})
	return append(selected, rest...)
}

// SendToFront moves the selected objects to the end of the collection.
func SendToFront(objs []SceneObject, sel Selection) []SceneObject {
	selected, rest := lo.FilterReject(objs, func(o SceneObject, _ int) bool {
		return sel.Contains(o.ID)
	})
	return append(rest, selected...)
}

// Recolor returns objs with every selected object set to color.
func Recolor(objs []SceneObject, sel Selection, color string) []SceneObject {
	return lo.Map(objs, func(o SceneObject, _ int) SceneObject {
		if sel.Contains(o.ID) {
			o.Color = color
		}
		return o
	})
}

// MoveObject returns objs with the object id moved to pos.
func MoveObject(objs []SceneObject, id string, pos Vec3) []SceneObject {
	return lo.Map(objs, func(o SceneObject, _ int) SceneObject {
		if o.ID == id {
			o.Position = pos
		}
		return o
	})
}

// Duplicate clones objs with fresh ids, each translated by offset.
func Duplicate(objs []SceneObject, offset Vec3) []SceneObject {
	return lo.Map(objs, func(o SceneObject, _ int) SceneObject {
		o.ID = NewObjectID(o.Type)
		o.Position = o.Position.Add(offset)
		return o
	})
}

// ColorSummary aggregates object count and volume per color.
type ColorSummary struct {
	Color  string
	Count  int
	Volume float64
}

// SummarizeByColor groups objs by color, in order of first appearance.
func SummarizeByColor(objs []SceneObject) []ColorSummary {
	groups := lo.GroupBy(objs, func(o SceneObject) string { return o.Color })
	order := lo.Uniq(lo.Map(objs, func(o SceneObject, _ int) string { return o.Color }))
	return lo.Map(order, func(c string, _ int) ColorSummary {
		g := groups[c]
		return ColorSummary{
			Color:  c,
			Count:  len(g),
			Volume: lo.SumBy(g, func(o SceneObject) float64 { return o.Size.Volume() }),
		}
	})
}
