package tool

import (
	"log/slog"
)

// Machine tracks the active tool and its transient interaction sub-state.
// All methods run synchronously on the caller's thread: canvas interaction
// is single-threaded by design, so the machine carries no event loop and no
// locking.
type Machine struct {
	logger    *slog.Logger
	mode      Mode
	listeners []Listener
}

// NewMachine starts in the select tool, idle.
func NewMachine(logger *slog.Logger) *Machine {
	return &Machine{logger: logger, mode: SelectMode{}}
}

// Mode returns the current tool variant with its sub-state.
func (m *Machine) Mode() Mode {
	if m == nil || m.mode == nil {
		return SelectMode{}
	}
	return m.mode
}

// Kind returns the active tool kind.
func (m *Machine) Kind() Kind { return m.Mode().Kind() }

// InFlight reports whether a pointer interaction is in progress.
func (m *Machine) InFlight() bool { return m.Mode().InFlight() }

// Switch activates the given tool. Any in-flight interaction of the
// previous tool is cancelled without committing, including when switching
// to the already-active kind. Listeners fire only on a kind change.
func (m *Machine) Switch(k Kind) {
	if m == nil {
		return
	}
	prev := m.Kind()
	if m.InFlight() && m.logger != nil {
		m.logger.Debug("in-flight interaction cancelled by tool switch", "from", prev.String(), "to", k.String())
	}
	m.mode = idleMode(k)
	if prev == k {
		return
	}
	if m.logger != nil {
		m.logger.Debug("tool switched", "from", prev.String(), "to", k.String())
	}
	for _, l := range m.listeners {
		l(prev, k)
	}
}

// Set replaces the sub-state of the active tool. A variant of a different
// kind is rejected; sub-state changes never switch tools implicitly.
func (m *Machine) Set(mode Mode) {
	if m == nil || mode == nil {
		return
	}
	if mode.Kind() != m.Kind() {
		if m.logger != nil {
			m.logger.Warn("sub-state rejected for inactive tool", "active", m.Kind().String(), "got", mode.Kind().String())
		}
		return
	}
	m.mode = mode
}

// CancelActive drops any in-flight sub-state, keeping the active tool.
// This is the Escape path: nothing is committed.
func (m *Machine) CancelActive() {
	if m == nil || m.mode == nil {
		return
	}
	m.mode = m.mode.idle()
}

// AddListener registers a tool-switch listener.
func (m *Machine) AddListener(l Listener) {
	if m == nil || l == nil {
		return
	}
	m.listeners = append(m.listeners, l)
}
