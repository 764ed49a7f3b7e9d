package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats updates subject and total annotation durations plus the
// labeling throughput counters in the status bar.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetCounts(created, confirmed, exported int)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	countsLbl  *LabelWidget
}

// NewSessionStats creates the status bar labels in a grid layout starting
// at (row, startCol). If parent is nil, labels are positioned relative to
// the App root.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{
		sessionLbl: Label(Width(14)),
		totalLbl:   Label(Width(14)),
		countsLbl:  Label(Width(28)),
	}
	place := func(w *LabelWidget, col int) {
		if parent != nil {
			Grid(w, In(parent), Row(row), Column(col), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(w, Row(row), Column(col), Sticky("w"), Padx("0.2m"))
		}
	}
	place(s.sessionLbl, startCol)
	place(s.totalLbl, startCol+1)
	place(s.countsLbl, startCol+2)
	s.sessionLbl.Configure(Txt("Subject: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.countsLbl.Configure(Txt("Boxes: 0 drawn / 0 confirmed / 0 exports"))
	return s
}

// SetSession updates the current-subject duration display.
func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	s.sessionLbl.Configure(Txt(fmt.Sprintf("Subject: %02d:%02d", min, sec)))
}

// SetTotal updates the total duration display.
func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	s.totalLbl.Configure(Txt(fmt.Sprintf("Total: %02d:%02d", min, sec)))
}

// SetCounts updates the throughput counters.
func (s *sessionStats) SetCounts(created, confirmed, exported int) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(fmt.Sprintf("Boxes: %d drawn / %d confirmed / %d exports", created, confirmed, exported)))
}
