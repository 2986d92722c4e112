package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ShapeKind identifies the primitive an object is drawn and hit-tested as.
type ShapeKind string

const (
	ShapeCube ShapeKind = "cube"
)

// ShapeKinds lists every kind accepted by import validation.
var ShapeKinds = []ShapeKind{ShapeCube}

// Valid reports whether k is a known shape kind.
func (k ShapeKind) Valid() bool {
	for _, known := range ShapeKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k ShapeKind) String() string {
	return string(k)
}

// Point2D represents a 2D coordinate in projection or screen space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a world-space position. Placed objects sit on integer cells;
// the ghost preview may use fractional values.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v translated by o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Size holds box extents along x (width), z (height) and y (depth).
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// UnitSize is the size of every object placed from the toolbar.
var UnitSize = Size{Width: 1, Height: 1, Depth: 1}

// Volume returns width*height*depth.
func (s Size) Volume() float64 {
	return s.Width * s.Height * s.Depth
}

// SceneObject is a single box primitive in the scene.
type SceneObject struct {
	ID       string    `json:"id"`
	Type     ShapeKind `json:"type"`
	Position Vec3      `json:"position"`
	Size     Size      `json:"size"`
	Color    string    `json:"color"` // #RRGGBB
}

// NewObjectID returns a fresh object id of the form "<kind>-<8 hex>".
func NewObjectID(kind ShapeKind) string {
	return string(kind) + "-" + uuid.New().String()[:8]
}

// NewObject creates a unit-sized object of the given kind at pos.
func NewObject(kind ShapeKind, pos Vec3, color string) SceneObject {
	return SceneObject{
		ID:       NewObjectID(kind),
		Type:     kind,
		Position: pos,
		Size:     UnitSize,
		Color:    color,
	}
}

// Corner returns the world position of the box corner selected by the
// three flags (false = min side, true = max side).
func (o SceneObject) Corner(maxX, maxY, maxZ bool) Vec3 {
	c := o.Position
	if maxX {
		c.X += o.Size.Width
	}
	if maxY {
		c.Y += o.Size.Depth
	}
	if maxZ {
		c.Z += o.Size.Height
	}
	return c
}

// Project is the persisted record and the JSON interchange format.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Objects   []SceneObject `json:"objects"`
	CreatedAt int64         `json:"createdAt"` // epoch milliseconds
	UpdatedAt int64         `json:"updatedAt"` // epoch milliseconds
}

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// NewProject returns an empty project with a fresh id.
func NewProject() Project {
	now := NowMillis()
	return Project{
		ID:        "project-" + uuid.New().String(),
		Name:      "Project " + time.Now().Format("2006-01-02"),
		Objects:   []SceneObject{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch sets UpdatedAt to now.
func (p *Project) Touch() {
	p.UpdatedAt = NowMillis()
}

// CloneObjects returns an independent copy of objs. SceneObject holds
// no references, so a shallow element copy is a deep copy.
func CloneObjects(objs []SceneObject) []SceneObject {
	if objs == nil {
		return nil
	}
	cp := make([]SceneObject, len(objs))
	copy(cp, objs)
	return cp
}
