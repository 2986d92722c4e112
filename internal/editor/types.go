package editor

import (
	"time"

	"github.com/piwi3910/isoforge/internal/model"
)

// Tool is the active toolbar mode.
type Tool int

const (
	ToolSelect Tool = iota
	ToolCube
	ToolEraser
)

var toolNames = map[Tool]string{
	ToolSelect: "select",
	ToolCube:   "cube",
	ToolEraser: "eraser",
}

func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return "unknown"
}

// PlacementKind returns the shape a placement tool creates. ok is false
// for select and eraser.
func (t Tool) PlacementKind() (kind model.ShapeKind, ok bool) {
	switch t {
	case ToolCube:
		return model.ShapeCube, true
	}
	return "", false
}

// State is the transient interaction state of the canvas.
type State int

const (
	StateIdle State = iota
	StatePlacing
	StatePanning
	StateSelecting
)

func (s State) String() string {
	switch s {
	case StatePlacing:
		return "placing"
	case StatePanning:
		return "panning"
	case StateSelecting:
		return "selecting"
	default:
		return "idle"
	}
}

// Change is a bitmask describing what an editor call modified.
type Change uint8

const (
	// ChangeObjects means a new object collection was committed or the
	// history cursor moved.
	ChangeObjects Change = 1 << iota
	ChangeSelection
	ChangeView
	// ChangeOverlay covers ghost and tool changes that only affect drawing.
	ChangeOverlay
	// ChangeMeta means the project name changed.
	ChangeMeta
	// ChangeLoaded means a project record replaced the editor contents.
	ChangeLoaded
)

// Has reports whether every bit in flag is set.
func (c Change) Has(flag Change) bool {
	return c&flag == flag
}

// PointerEvent is a pointer sample in canvas coordinates.
type PointerEvent struct {
	Pos  model.Point2D
	Time time.Time
	// Modifier is true while the multi-select key (ctrl or cmd) is held.
	Modifier bool
}

// Level is the severity of a user-facing message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows short messages to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}
