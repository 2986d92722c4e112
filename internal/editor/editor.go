// Package editor implements the interaction controller: it turns pointer,
// wheel and command input into history commits and view changes.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/isoforge/internal/engine"
	"github.com/piwi3910/isoforge/internal/history"
	"github.com/piwi3910/isoforge/internal/importer"
	"github.com/piwi3910/isoforge/internal/model"
	"github.com/piwi3910/isoforge/internal/render"
)

// ErrObjectNotFound is returned by edits that name a missing object.
var ErrObjectNotFound = errors.New("object not found")

// Editor owns the scene history, the selection, the view and all transient
// pointer state. It is not safe for concurrent use; drive it from the UI
// event loop.
type Editor struct {
	cfg      Config
	notifier Notifier

	history   *history.History[[]model.SceneObject]
	selection model.Selection
	clipboard []model.SceneObject

	view     model.ViewTransform
	viewInit bool
	canvasW  float64
	canvasH  float64
	tool     Tool
	color    string
	showGrid bool

	state       State
	pointerDown bool
	downAt      PointerEvent
	lastPlaced  *model.Vec3
	panFrom     model.Point2D
	ghost       *model.Vec3

	projectID string
	name      string
	createdAt int64
	updatedAt int64

	listeners []func(Change)
}

// New returns an editor holding a fresh empty project.
func New(cfg Config, n Notifier) *Editor {
	if n == nil {
		n = nopNotifier{}
	}
	p := model.NewProject()
	return &Editor{
		cfg:       cfg,
		notifier:  n,
		history:   history.New([]model.SceneObject{}, cfg.MaxHistory),
		view:      model.NewViewTransform(0, 0),
		color:     cfg.DefaultColor,
		showGrid:  cfg.ShowGrid,
		projectID: p.ID,
		name:      p.Name,
		createdAt: p.CreatedAt,
		updatedAt: p.UpdatedAt,
	}
}

// OnChange registers fn to be called after every modifying call.
func (e *Editor) OnChange(fn func(Change)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Editor) emit(c Change) {
	if c == 0 {
		return
	}
	for _, fn := range e.listeners {
		fn(c)
	}
}

func (e *Editor) notify(level Level, format string, args ...any) {
	e.notifier.Notify(level, fmt.Sprintf(format, args...))
}

// Objects returns the current object collection. Treat it as read-only.
func (e *Editor) Objects() []model.SceneObject { return e.history.State() }

// Selection returns the selected ids.
func (e *Editor) Selection() model.Selection { return e.selection }

// SelectedObjects returns the selected objects in collection order.
func (e *Editor) SelectedObjects() []model.SceneObject {
	return e.selection.Objects(e.Objects())
}

func (e *Editor) View() model.ViewTransform { return e.view }
func (e *Editor) Tool() Tool                { return e.tool }
func (e *Editor) State() State              { return e.state }
func (e *Editor) Color() string             { return e.color }
func (e *Editor) ShowGrid() bool            { return e.showGrid }
func (e *Editor) Config() Config            { return e.cfg }
func (e *Editor) CanUndo() bool             { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool             { return e.history.CanRedo() }

// Ghost returns the placement preview position, if one is shown.
func (e *Editor) Ghost() (model.Vec3, bool) {
	if e.ghost == nil {
		return model.Vec3{}, false
	}
	return *e.ghost, true
}

// Frame returns the snapshot the renderer draws.
func (e *Editor) Frame() render.Frame {
	f := render.Frame{
		Objects:   e.Objects(),
		Selection: e.selection,
		View:      e.view,
		ShowGrid:  e.showGrid,
	}
	if kind, ok := e.tool.PlacementKind(); ok && e.ghost != nil {
		f.Ghost = &render.Ghost{Kind: kind, Position: *e.ghost, Size: model.UnitSize}
	}
	return f
}

// ExportFrame returns the clean variant of Frame used for image export. It
// keeps the current view so the image matches the canvas.
func (e *Editor) ExportFrame() render.Frame {
	return render.Frame{Objects: e.Objects(), View: e.view, Export: true}
}

// commit records objs as a new history entry and drops selected ids that
// no longer exist.
func (e *Editor) commit(objs []model.SceneObject) Change {
	e.history.Commit(objs)
	c := ChangeObjects
	if pruned := e.selection.Prune(objs); len(pruned) != len(e.selection) {
		e.selection = pruned
		c |= ChangeSelection
	}
	return c
}

// ─── Tools and view ────────────────────────────────────

// SetTool switches the toolbar mode and resets any gesture in progress.
func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.tool = t
	e.resetGesture()
	if _, ok := t.PlacementKind(); !ok {
		e.ghost = nil
	}
	e.emit(ChangeOverlay)
}

// SetColor sets the color used for newly placed objects.
func (e *Editor) SetColor(hex string) error {
	c, err := model.ParseHexColor(hex)
	if err != nil {
		return err
	}
	e.color = model.FormatHexColor(c)
	e.emit(ChangeOverlay)
	return nil
}

// SetShowGrid toggles the ground grid.
func (e *Editor) SetShowGrid(show bool) {
	if show == e.showGrid {
		return
	}
	e.showGrid = show
	e.emit(ChangeOverlay)
}

// SetCanvasSize centres the view origin the first time the canvas is laid out.
func (e *Editor) SetCanvasSize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.canvasW, e.canvasH = width, height
	if e.viewInit {
		return
	}
	e.viewInit = true
	e.view.Offset = model.Point2D{X: width / 2, Y: height / 2}
	e.emit(ChangeView)
}

// CanvasSize returns the last size passed to SetCanvasSize.
func (e *Editor) CanvasSize() (width, height float64) { return e.canvasW, e.canvasH }

// ResetView puts the origin at (cx, cy) with zoom 1.
func (e *Editor) ResetView(cx, cy float64) {
	e.viewInit = true
	e.view = model.NewViewTransform(cx, cy)
	e.emit(ChangeView)
}

// SetView replaces the view transform.
func (e *Editor) SetView(v model.ViewTransform) {
	e.viewInit = true
	e.view = v.ZoomBy(1, e.cfg.ZoomMin, e.cfg.ZoomMax)
	e.emit(ChangeView)
}

// Wheel zooms by (1 - deltaY*sensitivity), clamped to the configured
// range. Zoom is centred on the current offset.
func (e *Editor) Wheel(deltaY float64) {
	e.zoom(1 - deltaY*e.cfg.ZoomSensitivity)
}

// ZoomIn zooms in by one step.
func (e *Editor) ZoomIn() { e.zoom(e.cfg.ZoomStep) }

// ZoomOut zooms out by one step.
func (e *Editor) ZoomOut() { e.zoom(1 / e.cfg.ZoomStep) }

func (e *Editor) zoom(factor float64) {
	next := e.view.ZoomBy(factor, e.cfg.ZoomMin, e.cfg.ZoomMax)
	if next == e.view {
		return
	}
	e.view = next
	e.emit(ChangeView)
}

// ─── Pointer state machine ─────────────────────────────

func (e *Editor) resetGesture() {
	e.state = StateIdle
	e.pointerDown = false
	e.lastPlaced = nil
}

// PointerDown starts a gesture: placement with a placement tool, pick or
// erase otherwise, or panning on empty space in select mode.
func (e *Editor) PointerDown(ev PointerEvent) {
	e.pointerDown = true
	e.downAt = ev

	if kind, ok := e.tool.PlacementKind(); ok {
		pos := engine.ResolvePlacement(e.Objects(), ev.Pos, e.view)
		c := e.place(kind, pos)
		e.state = StatePlacing
		e.lastPlaced = &pos
		e.ghost = &pos
		e.emit(c | ChangeOverlay)
		return
	}

	hit, ok := engine.HitTest(e.Objects(), ev.Pos, e.view)
	switch {
	case ok && e.tool == ToolEraser:
		e.emit(e.erase(hit.ObjectID))
	case ok:
		e.state = StateSelecting
		e.emit(e.pick(hit.ObjectID, ev.Modifier))
	case e.tool == ToolSelect && !ev.Modifier:
		var c Change
		if len(e.selection) > 0 {
			e.selection = nil
			c = ChangeSelection
		}
		e.state = StatePanning
		e.panFrom = ev.Pos
		e.emit(c)
	}
}

// PointerMove updates the ghost, paints while dragging, or pans.
func (e *Editor) PointerMove(ev PointerEvent) {
	if kind, ok := e.tool.PlacementKind(); ok {
		pos := engine.ResolvePlacement(e.Objects(), ev.Pos, e.view)
		var c Change
		if e.ghost == nil || *e.ghost != pos {
			e.ghost = &pos
			c |= ChangeOverlay
		}
		if e.state == StatePlacing && e.pointerDown &&
			ev.Time.Sub(e.downAt.Time) > e.cfg.PaintDelay &&
			(e.lastPlaced == nil || *e.lastPlaced != pos) {
			c |= e.place(kind, pos)
			e.lastPlaced = &pos
		}
		e.emit(c)
		return
	}

	if e.state == StatePanning {
		dx, dy := ev.Pos.X-e.panFrom.X, ev.Pos.Y-e.panFrom.Y
		e.panFrom = ev.Pos
		if dx == 0 && dy == 0 {
			return
		}
		e.view = e.view.Pan(dx, dy)
		e.emit(ChangeView)
	}
}

// PointerUp ends the current gesture.
func (e *Editor) PointerUp(PointerEvent) {
	e.resetGesture()
}

// PointerLeave ends the current gesture and hides the ghost.
func (e *Editor) PointerLeave() {
	e.resetGesture()
	if e.ghost != nil {
		e.ghost = nil
		e.emit(ChangeOverlay)
	}
}

func (e *Editor) place(kind model.ShapeKind, pos model.Vec3) Change {
	obj := model.NewObject(kind, pos, e.color)
	return e.commit(model.AppendObjects(e.Objects(), obj))
}

func (e *Editor) erase(id string) Change {
	c := e.commit(model.RemoveObjects(e.Objects(), id))
	if e.selection.Contains(id) {
		e.selection = e.selection.Without(id)
		c |= ChangeSelection
	}
	return c
}

func (e *Editor) pick(id string, toggle bool) Change {
	if toggle {
		e.selection = e.selection.Toggle(id)
	} else {
		e.selection = model.Selection{id}
	}
	return ChangeSelection
}

// ─── Commands ──────────────────────────────────────────

// Undo steps back one history entry.
func (e *Editor) Undo() {
	if !e.history.Undo() {
		return
	}
	e.afterCursorMove()
}

// Redo steps forward one history entry.
func (e *Editor) Redo() {
	if !e.history.Redo() {
		return
	}
	e.afterCursorMove()
}

func (e *Editor) afterCursorMove() {
	c := ChangeObjects
	if pruned := e.selection.Prune(e.Objects()); len(pruned) != len(e.selection) {
		e.selection = pruned
		c |= ChangeSelection
	}
	e.emit(c)
}

// Select replaces the selection with ids.
func (e *Editor) Select(ids ...string) {
	e.selection = model.Selection(ids).Prune(e.Objects())
	e.emit(ChangeSelection)
}

// SelectAll selects every object.
func (e *Editor) SelectAll() {
	ids := make(model.Selection, len(e.Objects()))
	for i, o := range e.Objects() {
		ids[i] = o.ID
	}
	e.selection = ids
	e.emit(ChangeSelection)
}

// ClearSelection deselects everything.
func (e *Editor) ClearSelection() {
	if len(e.selection) == 0 {
		return
	}
	e.selection = nil
	e.emit(ChangeSelection)
}

// Copy stores the selected objects in the clipboard and returns how many.
func (e *Editor) Copy() int {
	sel := e.SelectedObjects()
	if len(sel) == 0 {
		e.notify(LevelWarning, "Nothing selected")
		return 0
	}
	e.clipboard = model.CloneObjects(sel)
	e.notify(LevelInfo, "%d object(s) copied to clipboard", len(sel))
	return len(sel)
}

// Paste adds clipboard copies with fresh ids, shifted by the paste offset,
// and selects them.
func (e *Editor) Paste() int {
	if len(e.clipboard) == 0 {
		e.notify(LevelWarning, "Clipboard is empty")
		return 0
	}
	pasted := model.Duplicate(e.clipboard, e.cfg.PasteOffset)
	c := e.commit(model.AppendObjects(e.Objects(), pasted...))
	ids := make(model.Selection, len(pasted))
	for i, o := range pasted {
		ids[i] = o.ID
	}
	e.selection = ids
	e.emit(c | ChangeSelection)
	e.notify(LevelInfo, "%d object(s) pasted", len(pasted))
	return len(pasted)
}

// SendToBack moves the selection to the start of the collection.
func (e *Editor) SendToBack() {
	if len(e.SelectedObjects()) == 0 {
		return
	}
	e.emit(e.commit(model.SendToBack(e.Objects(), e.selection)))
}

// SendToFront moves the selection to the end of the collection.
func (e *Editor) SendToFront() {
	if len(e.SelectedObjects()) == 0 {
		return
	}
	e.emit(e.commit(model.SendToFront(e.Objects(), e.selection)))
}

// Recolor sets the color of every selected object in one commit.
func (e *Editor) Recolor(hex string) error {
	c, err := model.ParseHexColor(hex)
	if err != nil {
		return err
	}
	if len(e.SelectedObjects()) == 0 {
		return nil
	}
	e.emit(e.commit(model.Recolor(e.Objects(), e.selection, model.FormatHexColor(c))))
	return nil
}

// MoveTo sets the position of one object.
func (e *Editor) MoveTo(id string, pos model.Vec3) error {
	o, ok := model.FindObject(e.Objects(), id)
	if !ok {
		return fmt.Errorf("failed to move %q: %w", id, ErrObjectNotFound)
	}
	if o.Position == pos {
		return nil
	}
	e.emit(e.commit(model.MoveObject(e.Objects(), id, pos)))
	return nil
}

// DeleteSelected removes every selected object.
func (e *Editor) DeleteSelected() {
	if len(e.SelectedObjects()) == 0 {
		return
	}
	e.emit(e.commit(model.RemoveObjects(e.Objects(), e.selection...)))
}

// Clear removes every object.
func (e *Editor) Clear() {
	if len(e.Objects()) == 0 {
		return
	}
	e.emit(e.commit([]model.SceneObject{}))
}

// AddObjects appends objs in one commit and returns the ids they were
// stored under. An id that is empty, already in the scene, or repeated
// within objs is replaced with a fresh one.
func (e *Editor) AddObjects(objs ...model.SceneObject) []string {
	if len(objs) == 0 {
		return nil
	}
	taken := make(map[string]bool, len(e.Objects())+len(objs))
	for _, o := range e.Objects() {
		taken[o.ID] = true
	}
	added := model.CloneObjects(objs)
	ids := make([]string, len(added))
	for i := range added {
		if added[i].ID == "" || taken[added[i].ID] {
			added[i].ID = model.NewObjectID(added[i].Type)
		}
		taken[added[i].ID] = true
		ids[i] = added[i].ID
	}
	e.emit(e.commit(model.AppendObjects(e.Objects(), added...)))
	return ids
}

// ReplaceObjects swaps the whole collection in one undoable commit.
func (e *Editor) ReplaceObjects(objs []model.SceneObject) {
	e.emit(e.commit(model.CloneObjects(objs)))
}

// ─── Project metadata ──────────────────────────────────

// Load replaces the editor contents with p and starts a fresh history.
func (e *Editor) Load(p model.Project) {
	objs := model.CloneObjects(p.Objects)
	if objs == nil {
		objs = []model.SceneObject{}
	}
	e.history.Reset(objs)
	e.selection = nil
	e.resetGesture()
	e.projectID = p.ID
	e.name = p.Name
	e.createdAt = p.CreatedAt
	e.updatedAt = p.UpdatedAt
	e.emit(ChangeLoaded | ChangeObjects | ChangeSelection)
}

// LoadDocument validates a project JSON document and loads it. A rejected
// document leaves the editor untouched.
func (e *Editor) LoadDocument(data []byte) (model.Project, error) {
	p, err := importer.ParseProjectJSON(data)
	if err != nil {
		return model.Project{}, err
	}
	e.Load(p)
	return p, nil
}

// NewProject discards the scene and starts an empty project.
func (e *Editor) NewProject() {
	e.Load(model.NewProject())
}

// ProjectID returns the id of the open project.
func (e *Editor) ProjectID() string { return e.projectID }

// Name returns the project name.
func (e *Editor) Name() string { return e.name }

// Rename sets the project name. Blank names are rejected.
func (e *Editor) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("project name must not be empty")
	}
	if name == e.name {
		return nil
	}
	e.name = name
	e.emit(ChangeMeta)
	return nil
}

// Project returns the open project as a record. UpdatedAt is the time of
// the last load or MarkSaved.
func (e *Editor) Project() model.Project {
	return model.Project{
		ID:        e.projectID,
		Name:      e.name,
		Objects:   e.Objects(),
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}
}

// MarkSaved records the UpdatedAt of a successful save.
func (e *Editor) MarkSaved(updatedAt int64) {
	e.updatedAt = updatedAt
}
