package model

import (
	"sync/atomic"
)

// NoticeModel carries one-line status notices from worker goroutines
// (export writes, image decodes) to the UI thread. Concurrency-safe via
// atomic pointer because workers publish while the presenter tick reads.
// The zero value is empty and usable.
type NoticeModel struct{ latest atomic.Pointer[string] }

// Publish replaces the pending notice. Later notices win.
func (m *NoticeModel) Publish(text string) {
	if m == nil || text == "" {
		return
	}
	m.latest.Store(&text)
}

// Take returns the pending notice and clears it. ok is false when
// nothing was published since the last call.
func (m *NoticeModel) Take() (text string, ok bool) {
	if m == nil {
		return "", false
	}
	p := m.latest.Swap(nil)
	if p == nil {
		return "", false
	}
	return *p, true
}
