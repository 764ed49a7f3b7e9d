package view

import (
	"image"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Ryder-MHumble/evolabeler-go/config"
	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/tool"
	"github.com/Ryder-MHumble/evolabeler-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Session SessionStats
	Editor  EditorPanel
	Canvas  CanvasView

	// Widgets
	SubjectSelect *TComboboxWidget
	noticeLbl     *LabelWidget
	pathField     *TextWidget
	toolBtns      map[tool.Kind]*ButtonWidget

	subjectNames []string
}

// RootCallbacks are invoked on user actions in the top-level layout.
type RootCallbacks struct {
	OnToolSelected   func(k tool.Kind)
	OnZoomIn         func()
	OnZoomOut        func()
	OnResetView      func()
	OnOpenPath       func(path string)
	OnScreenshot     func()
	OnExportYOLO     func()
	OnExportJSON     func()
	OnSubjectChanged func(name string)
	OnKey            func(keysym string)
	OnExit           func()
	Editor           EditorCallbacks
	Pointer          PointerHandler
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	ShowFrame(frame image.Image)
	CanvasSize() (w, h int)
	SetActiveTool(k tool.Kind)
	SetSubjects(names []string, active string)
	ShowEditor(b *annotation.Box, subject image.Image)
	SetNotice(text string)
	SetSession(session, total time.Duration)
	SetCounts(created, confirmed, exported int)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger, toolBtns: make(map[tool.Kind]*ButtonWidget)}
}

// Build constructs the layout: a toolbar row, a subject row, the canvas with
// the editor panel beside it, and a status bar. canvasW/canvasH set the
// fixed canvas size in pixels.
func (rv *RootView) Build(canvasW, canvasH int, cb RootCallbacks) {
	if rv == nil {
		return
	}

	// Row 0: toolbar
	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	col := 0
	toolBtn := func(label string, k tool.Kind) {
		b := Button(Txt(label), Command(func() {
			if cb.OnToolSelected != nil {
				cb.OnToolSelected(k)
			}
		}))
		rv.toolBtns[k] = b
		Grid(b, In(bar), Row(0), Column(col), Padx("0.2m"))
		col++
	}
	toolBtn("Select", tool.KindSelect)
	toolBtn("Draw", tool.KindDraw)
	toolBtn("Pan", tool.KindPan)
	actionBtn := func(label string, fn func()) {
		b := Button(Txt(label), Command(func() {
			if fn != nil {
				fn()
			}
		}))
		Grid(b, In(bar), Row(0), Column(col), Padx("0.2m"))
		col++
	}
	actionBtn("Zoom +", cb.OnZoomIn)
	actionBtn("Zoom -", cb.OnZoomOut)
	actionBtn("Reset View", cb.OnResetView)
	actionBtn("Screenshot", cb.OnScreenshot)
	actionBtn("Export YOLO", cb.OnExportYOLO)
	actionBtn("Export JSON", cb.OnExportJSON)
	actionBtn("Exit", cb.OnExit)

	// Row 1: open-path entry and subject picker
	openRow := Frame()
	Grid(openRow, Row(1), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	pathLbl := Label(Txt("Image path"), Anchor("w"))
	Grid(pathLbl, In(openRow), Row(0), Column(0), Padx("0.2m"))
	rv.pathField = Text(Height(1), Width(48))
	Grid(rv.pathField, In(openRow), Row(0), Column(1), Sticky("we"), Padx("0.2m"))
	openBtn := Button(Txt("Open"), Command(func() {
		path := strings.TrimSpace(rv.pathText())
		if path != "" && cb.OnOpenPath != nil {
			cb.OnOpenPath(path)
		}
	}))
	Grid(openBtn, In(openRow), Row(0), Column(2), Padx("0.2m"))
	rv.SubjectSelect = TCombobox(Values([]string{"<none>"}), Width(26))
	Grid(rv.SubjectSelect, In(openRow), Row(0), Column(3), Padx("0.2m"))
	rv.SubjectSelect.Current(0)
	Bind(rv.SubjectSelect, "<<ComboboxSelected>>", Command(func() {
		if rv.SubjectSelect == nil || cb.OnSubjectChanged == nil {
			return
		}
		idxStr := rv.SubjectSelect.Current(nil)
		idx, err := strconv.Atoi(idxStr)
		if err == nil && idx >= 0 && idx < len(rv.subjectNames) {
			cb.OnSubjectChanged(rv.subjectNames[idx])
		} else if rv.logger != nil {
			rv.logger.Error("subject selection parse error", "error", err)
		}
	}))

	// Row 2: canvas beside the editor panel
	rv.Canvas = NewCanvasView(2, 0, canvasW, canvasH, cb.Pointer)
	rv.Editor = NewEditorPanel(rv.logger, cb.Editor)
	rv.Editor.Build(2, 2)

	// Bottom row: status bar with timers, counters and one-line notices
	status := Frame()
	Grid(status, Row(8), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Session = NewSessionStats(status, 0, 0)
	rv.noticeLbl = Label(Width(40), Anchor("w"))
	Grid(rv.noticeLbl, In(status), Row(0), Column(3), Sticky("we"), Padx("0.4m"))

	// Window-level key handling covers tool shortcuts and box editing keys.
	Bind(App, "<KeyPress>", Command(func(e *Event) {
		if cb.OnKey != nil {
			cb.OnKey(e.Keysym)
		}
	}))

	rv.SetActiveTool(tool.KindSelect)
}

// Teardown detaches the canvas so ticks scheduled after window destroy
// cannot touch dead widgets.
func (rv *RootView) Teardown() {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.Detach()
	}
}

// ShowFrame proxies to the canvas view.
func (rv *RootView) ShowFrame(frame image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.ShowFrame(frame)
	}
}

// CanvasSize proxies to the canvas view.
func (rv *RootView) CanvasSize() (w, h int) {
	if rv == nil || rv.Canvas == nil {
		return 0, 0
	}
	return rv.Canvas.Size()
}

// SetActiveTool highlights the button of the active tool.
func (rv *RootView) SetActiveTool(k tool.Kind) {
	if rv == nil {
		return
	}
	for kind, b := range rv.toolBtns {
		if b == nil {
			continue
		}
		if kind == k {
			b.Configure(Style(theme.StyleToolActive))
		} else {
			b.Configure(Style(theme.StyleToolButton))
		}
	}
}

// SetSubjects refreshes the picker values and selects the active name.
func (rv *RootView) SetSubjects(names []string, active string) {
	if rv == nil || rv.SubjectSelect == nil {
		return
	}
	if len(names) == 0 {
		names = []string{"<none>"}
	}
	rv.subjectNames = names
	rv.SubjectSelect.Configure(Values(names))
	for i, n := range names {
		if n == active {
			rv.SubjectSelect.Current(i)
			return
		}
	}
	rv.SubjectSelect.Current(0)
}

// ShowEditor proxies to the editor panel.
func (rv *RootView) ShowEditor(b *annotation.Box, subject image.Image) {
	if rv != nil && rv.Editor != nil {
		rv.Editor.ShowBox(b, subject)
	}
}

// SetNotice shows a one-line status message.
func (rv *RootView) SetNotice(text string) {
	if rv != nil && rv.noticeLbl != nil {
		rv.noticeLbl.Configure(Txt(text))
	}
}

// SetSession updates both subject and total annotation durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

// SetCounts updates the throughput counters.
func (rv *RootView) SetCounts(created, confirmed, exported int) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounts(created, confirmed, exported)
	}
}

func (rv *RootView) pathText() string {
	if rv == nil || rv.pathField == nil {
		return ""
	}
	parts := rv.pathField.Get("1.0", END)
	return strings.Join(parts, "")
}
