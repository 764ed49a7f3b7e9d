package app

import (
	"fmt"
	"time"

	. "modernc.org/tk9.0"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/ui/theme"
	"github.com/Ryder-MHumble/evolabeler-go/ui/view"
)

const (
	tick = 40 * time.Millisecond // recomposite cadence, ~25 fps when dirty

	// Space reserved around the canvas for the toolbar, editor panel and
	// status bar.
	chromeW = 320
	chromeH = 170
)

type app struct {
	c       *AppContainer
	width   int
	height  int
	afterID string
}

func NewApp(title string, width, height int, c *AppContainer) *app {
	a := &app{c: c, width: width, height: height}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the widget tree, wires callbacks into the presenters and
// runs the Tk event loop until the window closes.
func (a *app) Start() {
	theme.InitStyles()

	canvasW := a.width - chromeW
	if canvasW < 200 {
		canvasW = 200
	}
	canvasH := a.height - chromeH
	if canvasH < 150 {
		canvasH = 150
	}
	a.c.Viewport.SetContainer(float64(canvasW), float64(canvasH))

	c := a.c
	c.RootView.Build(canvasW, canvasH, view.RootCallbacks{
		OnToolSelected:   c.CanvasPresenter.SelectTool,
		OnZoomIn:         c.Controller.ZoomIn,
		OnZoomOut:        c.Controller.ZoomOut,
		OnResetView:      c.Controller.ResetView,
		OnOpenPath:       c.SubjectPresenter.OpenPath,
		OnScreenshot:     c.SubjectPresenter.Screenshot,
		OnExportYOLO:     c.ExportPresenter.ExportYOLO,
		OnExportJSON:     c.ExportPresenter.ExportJSON,
		OnSubjectChanged: c.SubjectPresenter.SelectByName,
		OnKey:            func(keysym string) { c.CanvasPresenter.Key(keysym) },
		OnExit:           a.exitHandler,
		Editor: view.EditorCallbacks{
			OnApply:      a.applyEdit,
			OnDelete:     c.Controller.DeleteSelected,
			OnConfirmAll: a.confirmAll,
		},
		Pointer: c.CanvasPresenter,
	})

	if a.c.Config.Debug {
		a.c.Logger.Debug("layout built", "canvas_w", canvasW, "canvas_h", canvasH)
	}

	c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()

	App.Wait()
}

// applyEdit pushes editor-panel field changes into the selected box.
func (a *app) applyEdit(label string, confidence float64, status annotation.Status) {
	c := a.c
	id := c.Controller.SelectedID()
	if id == "" {
		return
	}
	if !c.Store.Update(id, annotation.Patch{Label: &label, Confidence: &confidence, Status: &status}) {
		return
	}
	c.CanvasPresenter.RefreshEditor()
	c.CanvasPresenter.MarkDirty()
}

// confirmAll promotes every pending box of the active subject.
func (a *app) confirmAll() {
	c := a.c
	n := c.Store.ConfirmAll()
	c.Session.RecordConfirmed(n)
	c.Notices.Publish(fmt.Sprintf("confirmed %d boxes", n))
	c.CanvasPresenter.RefreshEditor()
	c.CanvasPresenter.MarkDirty()
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.RootView.Teardown()
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
