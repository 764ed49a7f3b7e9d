package model

import (
	"image"
)

// Subject is one image being annotated: a loaded file or a screenshot.
type Subject struct {
	ID     string
	Name   string
	Image  image.Image
	Width  int
	Height int
}

// Loaded reports whether pixel data has arrived for the subject.
func (s *Subject) Loaded() bool { return s != nil && s.Image != nil }

// SubjectModel holds the open subjects and which one is active.
// No synchronization needed: updates occur on the UI thread tick.
type SubjectModel struct {
	order  []string
	byID   map[string]*Subject
	active string
}

func NewSubjectModel() *SubjectModel {
	return &SubjectModel{byID: make(map[string]*Subject)}
}

// Add registers a subject under id, or returns the existing one. New
// subjects start without pixel data; SetImage fills it in when the
// decode finishes.
func (m *SubjectModel) Add(id, name string) *Subject {
	if m == nil || id == "" {
		return nil
	}
	if s, ok := m.byID[id]; ok {
		return s
	}
	s := &Subject{ID: id, Name: name}
	m.byID[id] = s
	m.order = append(m.order, id)
	return s
}

// SetImage attaches decoded pixels to a subject and records its natural size.
func (m *SubjectModel) SetImage(id string, img image.Image) {
	if m == nil || img == nil {
		return
	}
	s, ok := m.byID[id]
	if !ok {
		return
	}
	b := img.Bounds()
	s.Image = img
	s.Width = b.Dx()
	s.Height = b.Dy()
}

// SetActive switches the active subject. Unknown ids are ignored.
func (m *SubjectModel) SetActive(id string) {
	if m == nil {
		return
	}
	if _, ok := m.byID[id]; ok {
		m.active = id
	}
}

// Active returns the active subject, or nil when none is open.
func (m *SubjectModel) Active() *Subject {
	if m == nil || m.active == "" {
		return nil
	}
	return m.byID[m.active]
}

// Names lists subject display names in open order, for the picker widget.
func (m *SubjectModel) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.order))
	for _, id := range m.order {
		names = append(names, m.byID[id].Name)
	}
	return names
}

// IDByName resolves a picker selection back to a subject id.
func (m *SubjectModel) IDByName(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, id := range m.order {
		if m.byID[id].Name == name {
			return id, true
		}
	}
	return "", false
}

func (m *SubjectModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}
