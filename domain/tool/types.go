package tool

import (
	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
)

// Kind enumerates the three canvas tools.
type Kind int

const (
	KindSelect Kind = iota
	KindDraw
	KindPan
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindDraw:
		return "draw"
	case KindPan:
		return "pan"
	default:
		return "unknown"
	}
}

// Handle identifies one of the eight resize anchors of a selected box.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleN:
		return "n"
	case HandleNE:
		return "ne"
	case HandleE:
		return "e"
	case HandleSE:
		return "se"
	case HandleS:
		return "s"
	case HandleSW:
		return "sw"
	case HandleW:
		return "w"
	default:
		return "none"
	}
}

// MovesLeft reports whether dragging the handle adjusts the left edge.
func (h Handle) MovesLeft() bool { return h == HandleNW || h == HandleW || h == HandleSW }

// MovesRight reports whether dragging the handle adjusts the right edge.
func (h Handle) MovesRight() bool { return h == HandleNE || h == HandleE || h == HandleSE }

// MovesTop reports whether dragging the handle adjusts the top edge.
func (h Handle) MovesTop() bool { return h == HandleNW || h == HandleN || h == HandleNE }

// MovesBottom reports whether dragging the handle adjusts the bottom edge.
func (h Handle) MovesBottom() bool { return h == HandleSW || h == HandleS || h == HandleSE }

// Handles lists all eight anchors in clockwise order starting at nw.
func Handles() []Handle {
	return []Handle{HandleNW, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW}
}

// Mode is the sealed union of tool variants. Each variant carries its own
// transient sub-state; consumers dispatch with an exhaustive type switch.
type Mode interface {
	Kind() Kind
	// InFlight reports whether a pointer interaction is in progress.
	InFlight() bool
	// idle returns the variant's quiescent form. Sealing method.
	idle() Mode
}

// SelectAction is the sub-state of the select tool.
type SelectAction int

const (
	SelectIdle SelectAction = iota
	SelectDragging
	SelectResizing
)

// SelectMode is the select tool: idle, dragging a box body, or resizing via
// a handle. Origin is the pointer-down position in screen pixels; Snapshot
// is the box geometry at pointer-down.
type SelectMode struct {
	Action   SelectAction
	Handle   Handle
	Origin   geometry.Point
	Snapshot annotation.Box
}

func (SelectMode) Kind() Kind       { return KindSelect }
func (m SelectMode) InFlight() bool { return m.Action != SelectIdle }
func (SelectMode) idle() Mode       { return SelectMode{} }

// DrawMode is the draw tool; while Drawing, Start/Current track the rubber
// band rectangle in screen pixels.
type DrawMode struct {
	Drawing bool
	Start   geometry.Point
	Current geometry.Point
}

func (DrawMode) Kind() Kind       { return KindDraw }
func (m DrawMode) InFlight() bool { return m.Drawing }
func (DrawMode) idle() Mode       { return DrawMode{} }

// PanMode is the pan tool; while Panning, Last is the previous pointer
// position used to accumulate screen deltas.
type PanMode struct {
	Panning bool
	Last    geometry.Point
}

func (PanMode) Kind() Kind       { return KindPan }
func (m PanMode) InFlight() bool { return m.Panning }
func (PanMode) idle() Mode       { return PanMode{} }

func idleMode(k Kind) Mode {
	switch k {
	case KindDraw:
		return DrawMode{}
	case KindPan:
		return PanMode{}
	default:
		return SelectMode{}
	}
}

// Listener is called on each tool switch.
type Listener func(prev, next Kind)
