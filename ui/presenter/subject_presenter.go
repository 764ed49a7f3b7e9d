package presenter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ryder-MHumble/evolabeler-go/capture"
	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/canvas"
	"github.com/Ryder-MHumble/evolabeler-go/domain/codec"
	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
	"github.com/Ryder-MHumble/evolabeler-go/imageio"
	"github.com/Ryder-MHumble/evolabeler-go/ui/model"
)

// SubjectUI provides the view operations the subject presenter requires.
type SubjectUI interface {
	SetSubjects(names []string, active string)
}

// Renderer marks the canvas dirty; satisfied by CanvasPresenter.
type Renderer interface{ MarkDirty() }

// SubjectPresenter opens image files and screenshots as annotation
// subjects, drains finished decodes from the loader, and switches the
// active subject across the store, viewport and controller.
type SubjectPresenter struct {
	logger   *slog.Logger
	loader   *imageio.Loader
	subjects *model.SubjectModel
	store    *annotation.Store
	vp       *geometry.Viewport
	ctl      *canvas.Controller
	notices  *model.NoticeModel
	ui       SubjectUI
	render   Renderer

	shotSeq int
	seeded  map[string]bool
}

func NewSubjectPresenter(logger *slog.Logger, loader *imageio.Loader, subjects *model.SubjectModel, store *annotation.Store, vp *geometry.Viewport, ctl *canvas.Controller, notices *model.NoticeModel, ui SubjectUI, render Renderer) *SubjectPresenter {
	return &SubjectPresenter{
		logger:   logger,
		loader:   loader,
		subjects: subjects,
		store:    store,
		vp:       vp,
		ctl:      ctl,
		notices:  notices,
		ui:       ui,
		render:   render,
		seeded:   make(map[string]bool),
	}
}

// OpenPath starts an asynchronous decode of an image file and activates
// it as the current subject. The canvas shows it once the decode lands.
func (p *SubjectPresenter) OpenPath(path string) {
	if p == nil || path == "" {
		return
	}
	name := filepath.Base(path)
	p.subjects.Add(path, name)
	p.activate(path)
	p.loader.Load(path)
	p.notices.Publish("loading " + name)
	if p.logger != nil {
		p.logger.Info("subject open requested", "path", path)
	}
}

// Screenshot grabs the primary screen and opens it as a new subject.
func (p *SubjectPresenter) Screenshot() {
	if p == nil {
		return
	}
	img, err := capture.Grab()
	if err != nil {
		p.notices.Publish("screenshot failed: " + err.Error())
		if p.logger != nil {
			p.logger.Error("screenshot failed", "error", err)
		}
		return
	}
	p.shotSeq++
	id := fmt.Sprintf("screenshot-%d", p.shotSeq)
	name := fmt.Sprintf("screenshot %d", p.shotSeq)
	p.subjects.Add(id, name)
	p.subjects.SetImage(id, img)
	p.activate(id)
	p.notices.Publish("captured " + name)
}

// SelectByName activates the subject picked in the dropdown.
func (p *SubjectPresenter) SelectByName(name string) {
	if p == nil {
		return
	}
	id, ok := p.subjects.IDByName(name)
	if !ok {
		if p.logger != nil {
			p.logger.Warn("unknown subject selected", "name", name)
		}
		return
	}
	p.activate(id)
}

// Tick drains finished decodes and attaches them to their subjects.
func (p *SubjectPresenter) Tick(now time.Time) {
	if p == nil || p.loader == nil {
		return
	}
	for {
		res, ok := p.loader.Poll()
		if !ok {
			return
		}
		name := filepath.Base(res.Path)
		if res.Err != nil {
			p.notices.Publish("load failed: " + name)
			if p.logger != nil {
				p.logger.Error("subject decode failed", "path", res.Path, "error", res.Err)
			}
			continue
		}
		p.subjects.SetImage(res.Path, res.Image)
		if active := p.subjects.Active(); active != nil && active.ID == res.Path {
			p.applyNaturalSize(active)
			p.ctl.ResetForSubject()
			p.seedOnce(res.Path)
		}
		p.notices.Publish(fmt.Sprintf("loaded %s (%dx%d)", name, res.Width, res.Height))
		if p.render != nil {
			p.render.MarkDirty()
		}
	}
}

// activate switches the store, viewport and controller to a subject and
// refreshes the picker.
func (p *SubjectPresenter) activate(id string) {
	p.subjects.SetActive(id)
	p.store.SetActive(id)
	s := p.subjects.Active()
	if s.Loaded() {
		p.applyNaturalSize(s)
		p.seedOnce(id)
	} else {
		// Pixels are not here yet; conversions stay blocked until the
		// decode lands, regardless of what was active before.
		p.vp.SetNatural(0, 0)
	}
	p.ctl.ResetForSubject()
	if p.ui != nil {
		name := ""
		if s != nil {
			name = s.Name
		}
		p.ui.SetSubjects(p.subjects.Names(), name)
	}
	if p.render != nil {
		p.render.MarkDirty()
	}
}

// seedOnce runs the sidecar restore the first time a subject has both
// pixels and the active store slot, even when its decode landed while
// another subject was in front.
func (p *SubjectPresenter) seedOnce(id string) {
	if p.seeded[id] {
		return
	}
	p.seeded[id] = true
	p.seedSidecar(id)
}

// seedSidecar restores annotations from a previous JSON export sitting
// next to the image file, so reopening a subject resumes where it left off.
func (p *SubjectPresenter) seedSidecar(path string) {
	sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + "_annotations.json"
	data, err := os.ReadFile(sidecar)
	if err != nil {
		return
	}
	_, boxes, err := codec.DecodeJSON(data)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("sidecar decode failed", "path", sidecar, "error", err)
		}
		return
	}
	if len(boxes) == 0 {
		return
	}
	p.store.Seed(boxes)
	p.notices.Publish(fmt.Sprintf("restored %d boxes from %s", len(boxes), filepath.Base(sidecar)))
}

func (p *SubjectPresenter) applyNaturalSize(s *model.Subject) {
	p.store.SetNaturalSize(s.Width, s.Height)
	p.vp.SetNatural(s.Width, s.Height)
}
