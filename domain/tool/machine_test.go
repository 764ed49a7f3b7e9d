package tool

import (
	"testing"

	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
)

func TestMachine_StartsInSelectIdle(t *testing.T) {
	m := NewMachine(nil)
	if m.Kind() != KindSelect {
		t.Fatalf("expected select, got %v", m.Kind())
	}
	if m.InFlight() {
		t.Fatal("fresh machine should be idle")
	}
}

func TestMachine_SwitchCancelsInFlight(t *testing.T) {
	m := NewMachine(nil)
	m.Switch(KindDraw)
	m.Set(DrawMode{Drawing: true, Start: geometry.Point{X: 1, Y: 2}, Current: geometry.Point{X: 3, Y: 4}})
	if !m.InFlight() {
		t.Fatal("draw should be in flight")
	}
	m.Switch(KindPan)
	if m.Kind() != KindPan || m.InFlight() {
		t.Fatalf("switch must land idle in the new tool: kind=%v inflight=%v", m.Kind(), m.InFlight())
	}
}

func TestMachine_SameKindSwitchResetsSubState(t *testing.T) {
	m := NewMachine(nil)
	m.Switch(KindPan)
	m.Set(PanMode{Panning: true, Last: geometry.Point{X: 5, Y: 5}})
	m.Switch(KindPan)
	if m.InFlight() {
		t.Fatal("re-selecting the active tool must still cancel in-flight state")
	}
}

func TestMachine_SetRejectsWrongKind(t *testing.T) {
	m := NewMachine(nil)
	m.Set(DrawMode{Drawing: true})
	if m.Kind() != KindSelect || m.InFlight() {
		t.Fatal("sub-state of an inactive tool must be rejected")
	}
}

func TestMachine_CancelActiveKeepsTool(t *testing.T) {
	m := NewMachine(nil)
	m.Switch(KindDraw)
	m.Set(DrawMode{Drawing: true})
	m.CancelActive()
	if m.Kind() != KindDraw {
		t.Fatalf("cancel must not switch tools, got %v", m.Kind())
	}
	if m.InFlight() {
		t.Fatal("cancel must drop in-flight state")
	}
}

func TestMachine_ListenersFireOnKindChangeOnly(t *testing.T) {
	m := NewMachine(nil)
	var calls []Kind
	m.AddListener(func(prev, next Kind) { calls = append(calls, next) })
	m.Switch(KindDraw)
	m.Switch(KindDraw) // same kind: reset only, no notification
	m.Switch(KindSelect)
	if len(calls) != 2 || calls[0] != KindDraw || calls[1] != KindSelect {
		t.Fatalf("unexpected listener sequence: %v", calls)
	}
}

func TestHandle_EdgeClassification(t *testing.T) {
	cases := []struct {
		h                        Handle
		left, right, top, bottom bool
	}{
		{HandleNW, true, false, true, false},
		{HandleN, false, false, true, false},
		{HandleNE, false, true, true, false},
		{HandleE, false, true, false, false},
		{HandleSE, false, true, false, true},
		{HandleS, false, false, false, true},
		{HandleSW, true, false, false, true},
		{HandleW, true, false, false, false},
	}
	for _, c := range cases {
		if c.h.MovesLeft() != c.left || c.h.MovesRight() != c.right || c.h.MovesTop() != c.top || c.h.MovesBottom() != c.bottom {
			t.Fatalf("handle %v edge classification wrong", c.h)
		}
	}
	if len(Handles()) != 8 {
		t.Fatalf("expected 8 handles, got %d", len(Handles()))
	}
}
