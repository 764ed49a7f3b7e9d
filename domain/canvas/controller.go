package canvas

import (
	"fmt"
	"log/slog"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
	"github.com/Ryder-MHumble/evolabeler-go/domain/tool"
)

// Controller routes pointer and keyboard events to the active tool,
// converting coordinates through the viewport and mutating the annotation
// store. All methods are synchronous and run on the UI thread; the
// controller is the single mutator of interaction state.
type Controller struct {
	logger *slog.Logger
	vp     *geometry.Viewport
	store  *annotation.Store
	tools  *tool.Machine

	defaultLabel string
	handleRadius float64 // screen px
	zoomStep     float64

	selected string

	onChange func()
	onNotice func(string)
}

// Options tune controller behavior; zero values fall back to defaults.
type Options struct {
	DefaultLabel   string
	HandleRadiusPx float64
	ZoomStep       float64
}

// NewController wires the controller to its collaborators. The store is
// passed by handle; the controller never owns subject lifecycles.
func NewController(logger *slog.Logger, vp *geometry.Viewport, store *annotation.Store, tools *tool.Machine, opts Options) *Controller {
	if opts.DefaultLabel == "" {
		opts.DefaultLabel = "object"
	}
	if opts.HandleRadiusPx <= 0 {
		opts.HandleRadiusPx = 8
	}
	if opts.ZoomStep <= 0 {
		opts.ZoomStep = geometry.DefaultZoomStep
	}
	c := &Controller{
		logger:       logger,
		vp:           vp,
		store:        store,
		tools:        tools,
		defaultLabel: opts.DefaultLabel,
		handleRadius: opts.HandleRadiusPx,
		zoomStep:     opts.ZoomStep,
	}
	return c
}

// OnChange registers the re-render callback fired after any visible
// mutation (geometry, selection, viewport).
func (c *Controller) OnChange(fn func()) { c.onChange = fn }

// OnNotice registers the one-line notification callback.
func (c *Controller) OnNotice(fn func(string)) { c.onNotice = fn }

// SelectedID returns the selected box id ("" when none).
func (c *Controller) SelectedID() string { return c.selected }

// Select sets the selection directly (editor panel row click, draw commit).
func (c *Controller) Select(id string) {
	if c.selected == id {
		return
	}
	c.selected = id
	c.changed()
}

// ClearSelection drops the selection.
func (c *Controller) ClearSelection() { c.Select("") }

// SelectTool activates a tool, defensively cancelling any in-flight
// interaction. Switching away from select clears the selection.
func (c *Controller) SelectTool(k tool.Kind) {
	c.tools.Switch(k)
	if k != tool.KindSelect {
		c.selected = ""
	}
	c.changed()
}

// ResetForSubject clears all transient interaction state on a subject
// switch: in-flight interaction, selection, and the view transform.
func (c *Controller) ResetForSubject() {
	c.tools.CancelActive()
	c.selected = ""
	c.vp.Reset()
	c.changed()
}

// PointerDown begins an interaction at screen pixel (x, y).
func (c *Controller) PointerDown(x, y float64) {
	if !c.ready() {
		return
	}
	p := geometry.Point{X: x, Y: y}
	switch m := c.tools.Mode().(type) {
	case tool.SelectMode:
		c.selectDown(p)
	case tool.DrawMode:
		c.tools.Set(tool.DrawMode{Drawing: true, Start: p, Current: p})
		c.changed()
	case tool.PanMode:
		c.tools.Set(tool.PanMode{Panning: true, Last: p})
	default:
		// Sealed union; unreachable.
		_ = m
	}
}

// PointerMove advances the in-flight interaction, if any.
func (c *Controller) PointerMove(x, y float64) {
	if !c.ready() {
		return
	}
	p := geometry.Point{X: x, Y: y}
	switch m := c.tools.Mode().(type) {
	case tool.SelectMode:
		switch m.Action {
		case tool.SelectDragging:
			c.dragTo(m, p)
		case tool.SelectResizing:
			c.resizeTo(m, p)
		}
	case tool.DrawMode:
		if m.Drawing {
			m.Current = p
			c.tools.Set(m)
			c.changed()
		}
	case tool.PanMode:
		if m.Panning {
			c.vp.PanBy(p.X-m.Last.X, p.Y-m.Last.Y)
			m.Last = p
			c.tools.Set(m)
			c.changed()
		}
	}
}

// PointerUp finishes the in-flight interaction. Draw commits here; drag and
// resize have already applied their mutations incrementally.
func (c *Controller) PointerUp(x, y float64) {
	if !c.ready() {
		return
	}
	switch m := c.tools.Mode().(type) {
	case tool.SelectMode:
		if m.Action != tool.SelectIdle {
			c.tools.Set(tool.SelectMode{})
		}
	case tool.DrawMode:
		if m.Drawing {
			m.Current = geometry.Point{X: x, Y: y}
			c.tools.Set(tool.DrawMode{})
			c.commitDraw(m)
		}
	case tool.PanMode:
		if m.Panning {
			c.tools.Set(tool.PanMode{})
		}
	}
}

// Cancel aborts the in-flight interaction and clears the selection without
// committing anything. Bound to Escape.
func (c *Controller) Cancel() {
	c.tools.CancelActive()
	c.selected = ""
	c.changed()
}

// ZoomIn steps the zoom level up; recentering is handled by the viewport.
func (c *Controller) ZoomIn() {
	c.vp.StepZoom(c.zoomStep)
	c.changed()
}

// ZoomOut steps the zoom level down.
func (c *Controller) ZoomOut() {
	c.vp.StepZoom(-c.zoomStep)
	c.changed()
}

// ResetView restores zoom 1 and zero pan.
func (c *Controller) ResetView() {
	c.vp.Reset()
	c.changed()
}

// ConfirmSelected transitions the selected box from pending to confirmed.
func (c *Controller) ConfirmSelected() {
	if c.selected == "" {
		return
	}
	b, ok := c.store.Get(c.selected)
	if !ok || b.Status != annotation.StatusPending {
		return
	}
	status := annotation.StatusConfirmed
	c.store.Update(c.selected, annotation.Patch{Status: &status})
	c.notice(fmt.Sprintf("confirmed %q", b.Label))
	c.changed()
}

// DeleteSelected removes the selected box.
func (c *Controller) DeleteSelected() {
	if c.selected == "" {
		return
	}
	if c.store.Remove(c.selected) {
		c.notice("annotation deleted")
	}
	c.selected = ""
	c.changed()
}

// KeyPress handles the canvas keyboard map. Key names are lower-cased Tk
// keysyms. Reports whether the key was consumed.
func (c *Controller) KeyPress(key string) bool {
	switch key {
	case "v":
		c.SelectTool(tool.KindSelect)
	case "b":
		c.SelectTool(tool.KindDraw)
	case "h":
		c.SelectTool(tool.KindPan)
	case "0":
		c.ResetView()
	case "plus", "equal", "+":
		c.ZoomIn()
	case "minus", "-":
		c.ZoomOut()
	case "space":
		c.ConfirmSelected()
	case "delete", "backspace":
		c.DeleteSelected()
	case "escape":
		c.Cancel()
	default:
		return false
	}
	return true
}

// selectDown resolves a pointer-down under the select tool: a handle of the
// selected box starts a resize, a box body starts a drag with the topmost
// box winning under overlap, and empty canvas clears the selection.
func (c *Controller) selectDown(p geometry.Point) {
	if c.selected != "" {
		if sel, ok := c.store.Get(c.selected); ok {
			if h := c.handleAt(p, sel); h != tool.HandleNone {
				c.tools.Set(tool.SelectMode{Action: tool.SelectResizing, Handle: h, Origin: p, Snapshot: sel})
				return
			}
		}
	}
	n := c.vp.ToNormalized(p)
	b, ok := c.store.TopmostAt(n.X, n.Y)
	if !ok {
		c.selected = ""
		c.changed()
		return
	}
	c.selected = b.ID
	c.tools.Set(tool.SelectMode{Action: tool.SelectDragging, Origin: p, Snapshot: b})
	c.changed()
}

// dragTo moves the dragged box by the normalized pointer delta, clamped so
// the box stays inside the unit square at its original size.
func (c *Controller) dragTo(m tool.SelectMode, p geometry.Point) {
	dx, dy := c.vp.NormalizedDelta(p.X-m.Origin.X, p.Y-m.Origin.Y)
	nx := clampRange(m.Snapshot.X+dx, 0, 1-m.Snapshot.W)
	ny := clampRange(m.Snapshot.Y+dy, 0, 1-m.Snapshot.H)
	c.store.Update(m.Snapshot.ID, annotation.Patch{X: &nx, Y: &ny})
	c.changed()
}

// resizeTo applies a handle drag against the pointer-down snapshot. Each
// moved edge is clamped to the unit square and stops at the opposite fixed
// edge plus the size floor, never crossing it.
func (c *Controller) resizeTo(m tool.SelectMode, p geometry.Point) {
	dx, dy := c.vp.NormalizedDelta(p.X-m.Origin.X, p.Y-m.Origin.Y)
	s := m.Snapshot
	nx, ny, nw, nh := s.X, s.Y, s.W, s.H
	if m.Handle.MovesLeft() {
		right := s.X + s.W
		nx = clampRange(s.X+dx, 0, right-annotation.EditFloor)
		nw = right - nx
	}
	if m.Handle.MovesRight() {
		nw = clampRange(s.W+dx, annotation.EditFloor, 1-s.X)
	}
	if m.Handle.MovesTop() {
		bottom := s.Y + s.H
		ny = clampRange(s.Y+dy, 0, bottom-annotation.EditFloor)
		nh = bottom - ny
	}
	if m.Handle.MovesBottom() {
		nh = clampRange(s.H+dy, annotation.EditFloor, 1-s.Y)
	}
	c.store.Update(s.ID, annotation.Patch{X: &nx, Y: &ny, W: &nw, H: &nh})
	c.changed()
}

// commitDraw turns the rubber band into a box when both normalized
// dimensions exceed the creation floor; smaller rects are discarded
// silently. A committed box is auto-selected and the tool flips to select.
func (c *Controller) commitDraw(m tool.DrawMode) {
	a := c.vp.ToNormalized(m.Start)
	b := c.vp.ToNormalized(m.Current)
	x0, x1 := minMax(a.X, b.X)
	y0, y1 := minMax(a.Y, b.Y)
	w, h := x1-x0, y1-y0
	if w <= annotation.CreateFloor || h <= annotation.CreateFloor {
		if c.logger != nil {
			c.logger.Debug("draw discarded below size floor", "w", w, "h", h)
		}
		c.changed()
		return
	}
	id := c.store.Add(annotation.Box{
		X:          x0,
		Y:          y0,
		W:          w,
		H:          h,
		Confidence: 1.0,
		Label:      c.defaultLabel,
		Status:     annotation.StatusPending,
	})
	c.tools.Switch(tool.KindSelect)
	c.selected = id
	c.changed()
}

// handleAt hit-tests the eight handles of a box against a screen point
// within the configured pixel radius.
func (c *Controller) handleAt(p geometry.Point, b annotation.Box) tool.Handle {
	tl := c.vp.ToScreen(geometry.Point{X: b.X, Y: b.Y})
	br := c.vp.ToScreen(geometry.Point{X: b.X + b.W, Y: b.Y + b.H})
	cx, cy := (tl.X+br.X)/2, (tl.Y+br.Y)/2
	anchors := map[tool.Handle]geometry.Point{
		tool.HandleNW: {X: tl.X, Y: tl.Y},
		tool.HandleN:  {X: cx, Y: tl.Y},
		tool.HandleNE: {X: br.X, Y: tl.Y},
		tool.HandleE:  {X: br.X, Y: cy},
		tool.HandleSE: {X: br.X, Y: br.Y},
		tool.HandleS:  {X: cx, Y: br.Y},
		tool.HandleSW: {X: tl.X, Y: br.Y},
		tool.HandleW:  {X: tl.X, Y: cy},
	}
	for _, h := range tool.Handles() {
		a := anchors[h]
		if abs(p.X-a.X) <= c.handleRadius && abs(p.Y-a.Y) <= c.handleRadius {
			return h
		}
	}
	return tool.HandleNone
}

// ready gates all coordinate conversion on known natural dimensions. An
// event arriving earlier indicates a caller lifecycle bug and is dropped.
func (c *Controller) ready() bool {
	if c.vp.Ready() {
		return true
	}
	if c.logger != nil {
		c.logger.Debug("pointer event before image metadata, dropped")
	}
	return false
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) notice(msg string) {
	if c.onNotice != nil {
		c.onNotice(msg)
	}
}

func minMax(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}

func clampRange(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
