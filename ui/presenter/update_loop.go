package presenter

import (
	"time"

	"github.com/Ryder-MHumble/evolabeler-go/ui/model"
)

// NoticeView displays one-line status messages.
type NoticeView interface{ SetNotice(text string) }

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters, drains pending notices to the
// view and invokes a scheduler callback. The zero value is usable
// (methods are nil-safe).
type Loop struct {
	Subjects *SubjectPresenter
	Export   *ExportPresenter
	Session  *SessionPresenter
	Canvas   *CanvasPresenter
	Notices  *model.NoticeModel
	View     NoticeView
	Schedule func()
}

func NewLoop(subjects *SubjectPresenter, export *ExportPresenter, sess *SessionPresenter, canvas *CanvasPresenter, notices *model.NoticeModel, view NoticeView, schedule func()) *Loop {
	return &Loop{Subjects: subjects, Export: export, Session: sess, Canvas: canvas, Notices: notices, View: view, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Land finished decodes and export completions before rendering so the
	// frame reflects them on the same tick.
	if l.Subjects != nil {
		l.Subjects.Tick(now)
	}
	if l.Export != nil {
		l.Export.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Notices != nil && l.View != nil {
		if text, ok := l.Notices.Take(); ok {
			l.View.SetNotice(text)
		}
	}
	if l.Canvas != nil {
		l.Canvas.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
