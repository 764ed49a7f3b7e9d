package canvas

import (
	"log/slog"
	"math"
	"testing"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
	"github.com/Ryder-MHumble/evolabeler-go/domain/tool"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// fixture: 800x600 container, 1600x1200 image. Base fit 760x570 at zoom 1,
// display offset (20,15).
type fixture struct {
	vp    *geometry.Viewport
	store *annotation.Store
	tools *tool.Machine
	ctl   *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	vp := geometry.NewViewport()
	vp.SetContainer(800, 600)
	vp.SetNatural(1600, 1200)
	store := annotation.NewStore(discardLogger)
	store.SetActive("img-1")
	store.SetNaturalSize(1600, 1200)
	tools := tool.NewMachine(discardLogger)
	ctl := NewController(discardLogger, vp, store, tools, Options{DefaultLabel: "object"})
	return &fixture{vp: vp, store: store, tools: tools, ctl: ctl}
}

// screen converts a normalized point through the fixture viewport.
func (f *fixture) screen(nx, ny float64) (float64, float64) {
	p := f.vp.ToScreen(geometry.Point{X: nx, Y: ny})
	return p.X, p.Y
}

func (f *fixture) drawRect(t *testing.T, x0, y0, x1, y1 float64) {
	t.Helper()
	f.ctl.SelectTool(tool.KindDraw)
	sx, sy := f.screen(x0, y0)
	ex, ey := f.screen(x1, y1)
	f.ctl.PointerDown(sx, sy)
	f.ctl.PointerMove(ex, ey)
	f.ctl.PointerUp(ex, ey)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestController_DrawCommitCreatesAndAutoSelects(t *testing.T) {
	f := newFixture(t)
	f.drawRect(t, 0.1, 0.1, 0.3, 0.25)
	boxes := f.store.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("expected one committed box, got %d", len(boxes))
	}
	b := boxes[0]
	if !near(b.X, 0.1) || !near(b.Y, 0.1) || !near(b.W, 0.2) || !near(b.H, 0.15) {
		t.Fatalf("committed geometry wrong: %+v", b)
	}
	if b.Confidence != 1.0 || b.Label != "object" || b.Status != annotation.StatusPending {
		t.Fatalf("committed defaults wrong: %+v", b)
	}
	if f.ctl.SelectedID() != b.ID {
		t.Fatal("committed box must be auto-selected")
	}
	if f.tools.Kind() != tool.KindSelect {
		t.Fatalf("draw commit must switch to select, got %v", f.tools.Kind())
	}
}

func TestController_DrawFloorBoundary(t *testing.T) {
	f := newFixture(t)
	f.drawRect(t, 0.5, 0.5, 0.51, 0.51) // 0.01x0.01: below floor
	if f.store.Len() != 0 {
		t.Fatal("sub-floor rect must be discarded")
	}
	f.drawRect(t, 0.5, 0.5, 0.53, 0.53) // 0.03x0.03: above floor
	if f.store.Len() != 1 {
		t.Fatalf("0.03 rect must commit exactly one box, got %d", f.store.Len())
	}
}

func TestController_DrawReversedCornersNormalize(t *testing.T) {
	f := newFixture(t)
	f.drawRect(t, 0.4, 0.45, 0.2, 0.15) // drag up-left
	boxes := f.store.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("expected one box, got %d", len(boxes))
	}
	b := boxes[0]
	if !near(b.X, 0.2) || !near(b.Y, 0.15) || !near(b.W, 0.2) || !near(b.H, 0.3) {
		t.Fatalf("reversed drag should produce min/max rect: %+v", b)
	}
}

func TestController_DragMovesAndClamps(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(annotation.Box{X: 0.5, Y: 0.5, W: 0.2, H: 0.2, Confidence: 1})
	// Pointer-down on the body center, drag by a normalized (0.1, 0.1).
	sx, sy := f.screen(0.6, 0.6)
	f.ctl.PointerDown(sx, sy)
	if f.ctl.SelectedID() != id {
		t.Fatal("pointer-down on body should select")
	}
	ex, ey := f.screen(0.7, 0.7)
	f.ctl.PointerMove(ex, ey)
	f.ctl.PointerUp(ex, ey)
	b, _ := f.store.Get(id)
	if !near(b.X, 0.6) || !near(b.Y, 0.6) {
		t.Fatalf("drag should move origin to (0.6,0.6), got %+v", b)
	}

	// Drag far beyond the right/bottom edge: origin clamps to 1-size.
	sx, sy = f.screen(0.7, 0.7)
	f.ctl.PointerDown(sx, sy)
	f.ctl.PointerMove(sx+5000, sy+5000)
	f.ctl.PointerUp(sx+5000, sy+5000)
	b, _ = f.store.Get(id)
	if !near(b.X, 0.8) || !near(b.Y, 0.8) {
		t.Fatalf("drag must clamp to 1-size, got %+v", b)
	}
	if b.W != 0.2 || b.H != 0.2 {
		t.Fatalf("drag must not resize, got %+v", b)
	}
}

func TestController_ResizeSEGrows(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(annotation.Box{X: 0.5, Y: 0.5, W: 0.2, H: 0.2, Confidence: 1})
	f.ctl.Select(id)
	sx, sy := f.screen(0.7, 0.7) // se corner
	f.ctl.PointerDown(sx, sy)
	ex, ey := f.screen(0.8, 0.8) // normalized delta (0.1, 0.1)
	f.ctl.PointerMove(ex, ey)
	f.ctl.PointerUp(ex, ey)
	b, _ := f.store.Get(id)
	if !near(b.X, 0.5) || !near(b.Y, 0.5) || !near(b.W, 0.3) || !near(b.H, 0.3) {
		t.Fatalf("se resize by (0.1,0.1): want {0.5,0.5,0.3,0.3}, got %+v", b)
	}
}

func TestController_ResizeNWMovesOrigin(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(annotation.Box{X: 0.5, Y: 0.5, W: 0.2, H: 0.2, Confidence: 1})
	f.ctl.Select(id)
	sx, sy := f.screen(0.5, 0.5) // nw corner
	f.ctl.PointerDown(sx, sy)
	ex, ey := f.screen(0.65, 0.65) // normalized delta (0.15, 0.15)
	f.ctl.PointerMove(ex, ey)
	f.ctl.PointerUp(ex, ey)
	b, _ := f.store.Get(id)
	if !near(b.X, 0.65) || !near(b.Y, 0.65) || !near(b.W, 0.05) || !near(b.H, 0.05) {
		t.Fatalf("nw resize by (0.15,0.15): want {0.65,0.65,0.05,0.05}, got %+v", b)
	}
}

func TestController_ResizeStopsAtOppositeEdge(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(annotation.Box{X: 0.5, Y: 0.5, W: 0.2, H: 0.2, Confidence: 1})
	f.ctl.Select(id)
	// Drag the nw handle far past the se corner: the moved edges stop at
	// the opposite fixed edge minus the floor.
	sx, sy := f.screen(0.5, 0.5)
	f.ctl.PointerDown(sx, sy)
	ex, ey := f.screen(0.95, 0.95)
	f.ctl.PointerMove(ex, ey)
	f.ctl.PointerUp(ex, ey)
	b, _ := f.store.Get(id)
	if !near(b.X, 0.67) || !near(b.Y, 0.67) || !near(b.W, annotation.EditFloor) || !near(b.H, annotation.EditFloor) {
		t.Fatalf("nw overshoot must pin at opposite edge minus floor, got %+v", b)
	}

	// Edge handle: e dragged beyond the unit square clamps at x+w = 1.
	f.ctl.Select(id)
	b, _ = f.store.Get(id)
	sx, sy = f.screen(b.X+b.W, b.Y+b.H/2) // e handle midpoint
	f.ctl.PointerDown(sx, sy)
	f.ctl.PointerMove(sx+10000, sy)
	f.ctl.PointerUp(sx+10000, sy)
	b, _ = f.store.Get(id)
	if !near(b.X+b.W, 1) {
		t.Fatalf("e overshoot must clamp x+w to 1, got %+v", b)
	}
}

func TestController_ResizeInvariantHolds(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(annotation.Box{X: 0.1, Y: 0.1, W: 0.3, H: 0.3, Confidence: 1})
	f.ctl.Select(id)
	moves := [][4]float64{
		{0.1, 0.1, -0.5, -0.5}, // nw past top-left
		{0.4, 0.4, 0.9, 0.9},   // se past bottom-right
		{0.25, 0.1, 0.25, 2.0}, // body dragged far down
	}
	for _, mv := range moves {
		sx, sy := f.screen(mv[0], mv[1])
		f.ctl.PointerDown(sx, sy)
		ex, ey := f.screen(mv[2], mv[3])
		f.ctl.PointerMove(ex, ey)
		f.ctl.PointerUp(ex, ey)
		b, _ := f.store.Get(id)
		if b.X < 0 || b.Y < 0 || b.X+b.W > 1+1e-9 || b.Y+b.H > 1+1e-9 {
			t.Fatalf("invariant violated after move %v: %+v", mv, b)
		}
		if b.W < annotation.EditFloor-1e-9 || b.H < annotation.EditFloor-1e-9 {
			t.Fatalf("floor violated after move %v: %+v", mv, b)
		}
	}
}

func TestController_SelectionTopmostAndClear(t *testing.T) {
	f := newFixture(t)
	f.store.Add(annotation.Box{X: 0.1, Y: 0.1, W: 0.4, H: 0.4, Confidence: 1, Label: "bottom"})
	top := f.store.Add(annotation.Box{X: 0.2, Y: 0.2, W: 0.4, H: 0.4, Confidence: 1, Label: "top"})
	sx, sy := f.screen(0.3, 0.3) // overlap region
	f.ctl.PointerDown(sx, sy)
	f.ctl.PointerUp(sx, sy)
	if f.ctl.SelectedID() != top {
		t.Fatalf("overlap must select the topmost (last-added) box, got %q", f.ctl.SelectedID())
	}
	ex, ey := f.screen(0.9, 0.9) // empty canvas
	f.ctl.PointerDown(ex, ey)
	f.ctl.PointerUp(ex, ey)
	if f.ctl.SelectedID() != "" {
		t.Fatal("pointer-down on empty canvas must clear the selection")
	}
}

func TestController_PanAccumulatesUnscaled(t *testing.T) {
	f := newFixture(t)
	f.vp.SetZoom(2) // pan is screen-space; zoom must not scale it
	f.ctl.SelectTool(tool.KindPan)
	f.ctl.PointerDown(100, 100)
	f.ctl.PointerMove(130, 90)
	f.ctl.PointerMove(150, 120)
	f.ctl.PointerUp(150, 120)
	if p := f.vp.Pan(); !near(p.X, 50) || !near(p.Y, 20) {
		t.Fatalf("pan should accumulate raw screen deltas, got %v", p)
	}
}

func TestController_EscapeCancelsWithoutCommit(t *testing.T) {
	f := newFixture(t)
	f.ctl.SelectTool(tool.KindDraw)
	sx, sy := f.screen(0.1, 0.1)
	f.ctl.PointerDown(sx, sy)
	ex, ey := f.screen(0.5, 0.5)
	f.ctl.PointerMove(ex, ey)
	f.ctl.KeyPress("escape")
	f.ctl.PointerUp(ex, ey) // release after cancel must not commit either
	if f.store.Len() != 0 {
		t.Fatal("escape during draw must discard the rect")
	}
	if f.tools.InFlight() {
		t.Fatal("escape must clear in-flight state")
	}
}

func TestController_ToolSwitchCancelsInFlightAndClearsSelection(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(annotation.Box{X: 0.4, Y: 0.4, W: 0.2, H: 0.2, Confidence: 1})
	f.ctl.Select(id)
	sx, sy := f.screen(0.5, 0.5)
	f.ctl.PointerDown(sx, sy) // dragging (body center)
	f.ctl.SelectTool(tool.KindPan)
	if f.tools.InFlight() {
		t.Fatal("tool switch must cancel the in-flight drag")
	}
	if f.ctl.SelectedID() != "" {
		t.Fatal("switching away from select must clear the selection")
	}
	b, _ := f.store.Get(id)
	if !near(b.X, 0.4) || !near(b.Y, 0.4) {
		t.Fatalf("cancelled drag must leave geometry at last applied state: %+v", b)
	}
}

func TestController_KeyboardMap(t *testing.T) {
	f := newFixture(t)
	if !f.ctl.KeyPress("b") || f.tools.Kind() != tool.KindDraw {
		t.Fatal("B must activate draw")
	}
	if !f.ctl.KeyPress("h") || f.tools.Kind() != tool.KindPan {
		t.Fatal("H must activate pan")
	}
	if !f.ctl.KeyPress("v") || f.tools.Kind() != tool.KindSelect {
		t.Fatal("V must activate select")
	}
	f.ctl.KeyPress("plus")
	if !near(f.vp.Zoom(), 1.25) {
		t.Fatalf("+ must step zoom to 1.25, got %v", f.vp.Zoom())
	}
	f.ctl.KeyPress("minus")
	f.ctl.KeyPress("minus")
	if !near(f.vp.Zoom(), 0.75) {
		t.Fatalf("- must step zoom down, got %v", f.vp.Zoom())
	}
	f.vp.PanBy(33, -7)
	f.ctl.KeyPress("0")
	if f.vp.Zoom() != 1 || f.vp.Pan() != (geometry.Point{}) {
		t.Fatal("0 must reset the view")
	}
	if f.ctl.KeyPress("q") {
		t.Fatal("unmapped key must not be consumed")
	}
}

func TestController_SpaceConfirmsAndDeleteRemoves(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(annotation.Box{X: 0.1, Y: 0.1, W: 0.2, H: 0.2, Confidence: 1})
	f.ctl.Select(id)
	f.ctl.KeyPress("space")
	b, _ := f.store.Get(id)
	if b.Status != annotation.StatusConfirmed {
		t.Fatalf("space must confirm the selected box, got %v", b.Status)
	}
	f.ctl.KeyPress("space") // second confirm is a no-op
	f.ctl.KeyPress("delete")
	if f.store.Len() != 0 {
		t.Fatal("delete must remove the selected box")
	}
	if f.ctl.SelectedID() != "" {
		t.Fatal("delete must clear the selection")
	}
}

func TestController_EventsBeforeMetadataDropped(t *testing.T) {
	vp := geometry.NewViewport()
	vp.SetContainer(800, 600) // natural size unknown: decode not finished
	store := annotation.NewStore(discardLogger)
	store.SetActive("img-1")
	tools := tool.NewMachine(discardLogger)
	ctl := NewController(discardLogger, vp, store, tools, Options{})
	ctl.SelectTool(tool.KindDraw)
	ctl.PointerDown(100, 100)
	ctl.PointerMove(300, 300)
	ctl.PointerUp(300, 300)
	if store.Len() != 0 || tools.InFlight() {
		t.Fatal("pointer events before image decode must be dropped")
	}
}

func TestController_ResetForSubject(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(annotation.Box{X: 0.1, Y: 0.1, W: 0.2, H: 0.2, Confidence: 1})
	f.ctl.Select(id)
	f.vp.SetZoom(3)
	f.vp.PanBy(10, 10)
	f.ctl.ResetForSubject()
	if f.ctl.SelectedID() != "" {
		t.Fatal("subject switch must clear selection")
	}
	if f.vp.Zoom() != 1 || f.vp.Pan() != (geometry.Point{}) {
		t.Fatal("subject switch must reset the viewport")
	}
}
