package presenter

import (
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/Ryder-MHumble/evolabeler-go/assets"
	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/canvas"
	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
	"github.com/Ryder-MHumble/evolabeler-go/domain/tool"
	"github.com/Ryder-MHumble/evolabeler-go/ui/images"
	"github.com/Ryder-MHumble/evolabeler-go/ui/model"
)

// CanvasUI provides the view operations the canvas presenter requires.
type CanvasUI interface {
	ShowFrame(frame image.Image)
	CanvasSize() (w, h int)
	SetActiveTool(k tool.Kind)
	ShowEditor(b *annotation.Box, subject image.Image)
}

// CanvasPresenter routes pointer and key input into the interaction
// controller and re-composites the canvas frame when anything visible
// changed. Rendering happens on the update tick, never mid-event, so a
// burst of motion events costs one frame.
type CanvasPresenter struct {
	logger   *slog.Logger
	ctl      *canvas.Controller
	store    *annotation.Store
	vp       *geometry.Viewport
	tools    *tool.Machine
	subjects *model.SubjectModel
	session  *model.SessionModel
	ui       CanvasUI

	dirty        bool
	lastSelected string
	placeholder  image.Image
}

// NewCanvasPresenter wires the presenter into the controller change
// callback and the tool machine listener.
func NewCanvasPresenter(logger *slog.Logger, ctl *canvas.Controller, store *annotation.Store, vp *geometry.Viewport, tools *tool.Machine, subjects *model.SubjectModel, session *model.SessionModel, ui CanvasUI) *CanvasPresenter {
	p := &CanvasPresenter{
		logger:   logger,
		ctl:      ctl,
		store:    store,
		vp:       vp,
		tools:    tools,
		subjects: subjects,
		session:  session,
		ui:       ui,
		dirty:    true,
	}
	if ph, err := assets.PlaceholderImage(); err == nil {
		p.placeholder = ph
	} else if logger != nil {
		logger.Warn("placeholder decode failed", "error", err)
	}
	ctl.OnChange(p.MarkDirty)
	tools.AddListener(func(prev, next tool.Kind) {
		if ui != nil {
			ui.SetActiveTool(next)
		}
		p.MarkDirty()
	})
	return p
}

// MarkDirty schedules a recomposite on the next tick.
func (p *CanvasPresenter) MarkDirty() {
	if p != nil {
		p.dirty = true
	}
}

// PointerDown implements the canvas pointer contract.
func (p *CanvasPresenter) PointerDown(x, y float64) {
	if p == nil {
		return
	}
	p.ctl.PointerDown(x, y)
	p.MarkDirty()
}

// PointerMove implements the canvas pointer contract.
func (p *CanvasPresenter) PointerMove(x, y float64) {
	if p == nil {
		return
	}
	p.ctl.PointerMove(x, y)
	p.MarkDirty()
}

// PointerUp implements the canvas pointer contract. A completed draw
// gesture is detected by the box count growing across the release.
func (p *CanvasPresenter) PointerUp(x, y float64) {
	if p == nil {
		return
	}
	before := p.store.Len()
	p.ctl.PointerUp(x, y)
	if p.store.Len() > before {
		p.session.RecordCreated()
	}
	p.MarkDirty()
}

// Key normalizes a Tk keysym and forwards it. Reports whether the key
// was consumed.
func (p *CanvasPresenter) Key(keysym string) bool {
	if p == nil {
		return false
	}
	consumed := p.ctl.KeyPress(strings.ToLower(keysym))
	if consumed {
		p.MarkDirty()
	}
	return consumed
}

// SelectTool switches the active tool from a toolbar press.
func (p *CanvasPresenter) SelectTool(k tool.Kind) {
	if p == nil {
		return
	}
	p.ctl.SelectTool(k)
	p.MarkDirty()
}

// Tick recomposites the frame when dirty and refreshes the editor panel
// when the selection moved to a different box.
func (p *CanvasPresenter) Tick(now time.Time) {
	if p == nil || p.ui == nil {
		return
	}
	selected := p.ctl.SelectedID()
	if selected != p.lastSelected {
		p.lastSelected = selected
		p.showEditor(selected)
	}
	if !p.dirty {
		return
	}
	p.dirty = false
	w, h := p.ui.CanvasSize()
	s := p.subjects.Active()
	if !s.Loaded() {
		p.ui.ShowFrame(images.IdleFrame(p.placeholder, image.Pt(w, h)))
		return
	}
	scene := images.BuildScene(p.vp, s.Image, p.store.Boxes(), selected, p.tools.Mode(), image.Pt(w, h))
	p.ui.ShowFrame(scene.Render())
}

// RefreshEditor re-pushes the selected box into the editor panel, for use
// after field edits or confirms that keep the same selection.
func (p *CanvasPresenter) RefreshEditor() {
	if p != nil {
		p.showEditor(p.ctl.SelectedID())
	}
}

func (p *CanvasPresenter) showEditor(selected string) {
	var subjectImg image.Image
	if s := p.subjects.Active(); s.Loaded() {
		subjectImg = s.Image
	}
	if selected == "" {
		p.ui.ShowEditor(nil, subjectImg)
		return
	}
	if b, ok := p.store.Get(selected); ok {
		p.ui.ShowEditor(&b, subjectImg)
	} else {
		p.ui.ShowEditor(nil, subjectImg)
	}
}
