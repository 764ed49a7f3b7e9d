package presenter

import (
	"time"

	"github.com/Ryder-MHumble/evolabeler-go/ui/model"
)

// SubjectSource reports the active subject, if any.
type SubjectSource interface{ Active() *model.Subject }

// SessionView displays formatted durations and throughput counters.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetCounts(created, confirmed, exported int)
}

// SessionPresenter formats session timing and counters from the model to the view.
type SessionPresenter struct {
	sess     *model.SessionModel
	subjects SubjectSource
	view     SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, subjects SubjectSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, subjects: subjects, view: view}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.subjects == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.subjects.Active().Loaded(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	p.view.SetCounts(p.sess.Counts())
}
