package model

import (
	"time"
)

// SessionModel tracks how long the current subject has been open and the
// labeling throughput across the whole run. It is decoupled from the UI;
// presenters should poll Values() and update views. The zero value is
// ready to use.
type SessionModel struct {
	active       bool
	subjectStart time.Time
	lastDuration time.Duration
	accumulated  time.Duration
	created      int
	confirmed    int
	exported     int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the timers using whether a subject is open and the
// current timestamp. Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(subjectOpen bool, now time.Time) {
	if m == nil {
		return
	}
	if subjectOpen {
		if !m.active { // transition off -> on
			m.active = true
			m.subjectStart = now
			m.lastDuration = 0
		}
		m.lastDuration = now.Sub(m.subjectStart)
	} else if m.active { // transition on -> off
		m.lastDuration = now.Sub(m.subjectStart)
		m.accumulated += m.lastDuration
		m.active = false
	}
}

// RecordCreated counts a newly drawn box.
func (m *SessionModel) RecordCreated() {
	if m != nil {
		m.created++
	}
}

// RecordConfirmed counts boxes promoted to confirmed.
func (m *SessionModel) RecordConfirmed(n int) {
	if m != nil && n > 0 {
		m.confirmed += n
	}
}

// RecordExport counts a completed export.
func (m *SessionModel) RecordExport() {
	if m != nil {
		m.exported++
	}
}

// Values returns the time on the current subject and the total time with
// any subject open. The total includes the ongoing stretch when active.
func (m *SessionModel) Values() (subject, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	subject = m.lastDuration
	total = m.accumulated
	if m.active {
		total += subject
	}
	return
}

// Counts returns boxes created, boxes confirmed, and exports completed.
func (m *SessionModel) Counts() (created, confirmed, exported int) {
	if m == nil {
		return 0, 0, 0
	}
	return m.created, m.confirmed, m.exported
}
