package presenter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/codec"
	"github.com/Ryder-MHumble/evolabeler-go/ui/model"
)

// ExportPresenter serializes the active subject's annotations in the
// background and reports completion through the notice model. File writes
// never block the UI tick.
type ExportPresenter struct {
	logger   *slog.Logger
	exporter *codec.Exporter
	store    *annotation.Store
	subjects *model.SubjectModel
	notices  *model.NoticeModel
	session  *model.SessionModel

	completed atomic.Int64
	counted   int64
}

func NewExportPresenter(logger *slog.Logger, exporter *codec.Exporter, store *annotation.Store, subjects *model.SubjectModel, notices *model.NoticeModel, session *model.SessionModel) *ExportPresenter {
	return &ExportPresenter{
		logger:   logger,
		exporter: exporter,
		store:    store,
		subjects: subjects,
		notices:  notices,
		session:  session,
	}
}

// ExportYOLO writes the darknet text artifacts for the active subject.
func (p *ExportPresenter) ExportYOLO() {
	p.export("yolo", func(id string, w, h int, boxes []annotation.Box) ([]string, error) {
		return p.exporter.ExportYOLO(id, boxes)
	})
}

// ExportJSON writes the structured document for the active subject.
func (p *ExportPresenter) ExportJSON() {
	p.export("json", func(id string, w, h int, boxes []annotation.Box) ([]string, error) {
		return p.exporter.ExportJSON(id, w, h, boxes)
	})
}

// Tick folds background completions into the session counters on the UI
// thread.
func (p *ExportPresenter) Tick(now time.Time) {
	if p == nil {
		return
	}
	done := p.completed.Load()
	for p.counted < done {
		p.counted++
		p.session.RecordExport()
	}
}

func (p *ExportPresenter) export(format string, run func(id string, w, h int, boxes []annotation.Box) ([]string, error)) {
	if p == nil {
		return
	}
	s := p.subjects.Active()
	if !s.Loaded() {
		p.notices.Publish("nothing to export: no subject loaded")
		return
	}
	boxes := p.store.Boxes()
	if len(boxes) == 0 {
		p.notices.Publish("nothing to export: no annotations")
		return
	}
	id := subjectStem(s.Name)
	w, h := s.Width, s.Height
	go func() {
		names, err := run(id, w, h, boxes)
		if err != nil {
			p.notices.Publish(fmt.Sprintf("%s export failed: %v", format, err))
			if p.logger != nil {
				p.logger.Error("export failed", "format", format, "subject", id, "error", err)
			}
			return
		}
		p.completed.Add(1)
		p.notices.Publish("exported " + strings.Join(names, ", "))
		if p.logger != nil {
			p.logger.Info("export complete", "format", format, "subject", id, "files", len(names))
		}
	}()
}

// subjectStem turns a display name into a filename-friendly artifact stem.
func subjectStem(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.ReplaceAll(stem, " ", "_")
	if stem == "" {
		stem = "subject"
	}
	return stem
}
