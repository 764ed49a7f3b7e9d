package annotation

import (
	"log/slog"

	"github.com/google/uuid"
)

// Store holds the annotation lists of all known subjects, keyed by subject
// id. Each subject owns its list independently: switching the active subject
// never mutates another subject's boxes. List order doubles as z-order with
// last-added topmost.
//
// The store is written from a single UI thread (see the interaction layer);
// it carries no locking on purpose.
type Store struct {
	logger   *slog.Logger
	subjects map[string]*subject
	active   string
}

type subject struct {
	naturalW int
	naturalH int
	boxes    []Box
}

// NewStore returns an empty store with no active subject.
func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logger, subjects: make(map[string]*subject)}
}

// SetActive switches the active subject, creating an empty entry on first
// sight of the id. An empty id deactivates all subjects.
func (s *Store) SetActive(id string) {
	if s == nil {
		return
	}
	s.active = id
	if id != "" {
		s.ensure(id)
	}
}

// Active returns the active subject id ("" when none).
func (s *Store) Active() string {
	if s == nil {
		return ""
	}
	return s.active
}

// SetNaturalSize records the active subject's decoded pixel dimensions.
func (s *Store) SetNaturalSize(w, h int) {
	sub := s.current()
	if sub == nil {
		return
	}
	sub.naturalW, sub.naturalH = w, h
}

// NaturalSize returns the active subject's natural dimensions; ok is false
// before image decode completes or when no subject is active.
func (s *Store) NaturalSize() (w, h int, ok bool) {
	sub := s.current()
	if sub == nil || sub.naturalW <= 0 || sub.naturalH <= 0 {
		return 0, 0, false
	}
	return sub.naturalW, sub.naturalH, true
}

// Add appends a box to the active subject and returns its id. A missing id
// is generated; geometry is clamped against the creation floor.
func (s *Store) Add(b Box) string {
	sub := s.current()
	if sub == nil {
		return ""
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.clamp(CreateFloor)
	sub.boxes = append(sub.boxes, b)
	if s.logger != nil {
		s.logger.Debug("box added", "id", b.ID, "label", b.Label, "subject", s.active)
	}
	return b.ID
}

// Update merges the patch into the identified box and re-clamps the result
// against the edit floor. Out-of-range input is corrected rather than
// rejected. Reports whether the box was found.
func (s *Store) Update(id string, p Patch) bool {
	sub := s.current()
	if sub == nil {
		return false
	}
	for i := range sub.boxes {
		if sub.boxes[i].ID != id {
			continue
		}
		b := &sub.boxes[i]
		if p.X != nil {
			b.X = *p.X
		}
		if p.Y != nil {
			b.Y = *p.Y
		}
		if p.W != nil {
			b.W = *p.W
		}
		if p.H != nil {
			b.H = *p.H
		}
		if p.Confidence != nil {
			b.Confidence = *p.Confidence
		}
		if p.Label != nil {
			b.Label = *p.Label
		}
		if p.Status != nil {
			b.Status = *p.Status
		}
		b.clamp(EditFloor)
		return true
	}
	return false
}

// Remove deletes the identified box from the active subject.
func (s *Store) Remove(id string) bool {
	sub := s.current()
	if sub == nil {
		return false
	}
	for i := range sub.boxes {
		if sub.boxes[i].ID == id {
			sub.boxes = append(sub.boxes[:i], sub.boxes[i+1:]...)
			if s.logger != nil {
				s.logger.Debug("box removed", "id", id, "subject", s.active)
			}
			return true
		}
	}
	return false
}

// Get returns a copy of the identified box.
func (s *Store) Get(id string) (Box, bool) {
	sub := s.current()
	if sub == nil {
		return Box{}, false
	}
	for _, b := range sub.boxes {
		if b.ID == id {
			return b, true
		}
	}
	return Box{}, false
}

// Boxes returns a copy of the active subject's boxes in z-order
// (bottom first, topmost last).
func (s *Store) Boxes() []Box {
	sub := s.current()
	if sub == nil {
		return nil
	}
	out := make([]Box, len(sub.boxes))
	copy(out, sub.boxes)
	return out
}

// Len reports the active subject's box count.
func (s *Store) Len() int {
	sub := s.current()
	if sub == nil {
		return 0
	}
	return len(sub.boxes)
}

// TopmostAt returns the topmost box whose body contains the normalized
// point, scanning back-to-front so the last-added box wins under overlap.
func (s *Store) TopmostAt(x, y float64) (Box, bool) {
	sub := s.current()
	if sub == nil {
		return Box{}, false
	}
	for i := len(sub.boxes) - 1; i >= 0; i-- {
		if sub.boxes[i].Contains(x, y) {
			return sub.boxes[i], true
		}
	}
	return Box{}, false
}

// ConfirmAll transitions every pending box of the active subject to
// confirmed and returns the number of transitions. Idempotent.
func (s *Store) ConfirmAll() int {
	sub := s.current()
	if sub == nil {
		return 0
	}
	n := 0
	for i := range sub.boxes {
		if sub.boxes[i].Status == StatusPending {
			sub.boxes[i].Status = StatusConfirmed
			n++
		}
	}
	if n > 0 && s.logger != nil {
		s.logger.Info("annotations confirmed", "count", n, "subject", s.active)
	}
	return n
}

// Seed replaces the active subject's list with externally supplied boxes,
// for example a dataset import. Missing ids are generated and geometry is
// clamped against the creation floor.
func (s *Store) Seed(boxes []Box) {
	sub := s.current()
	if sub == nil {
		return
	}
	sub.boxes = sub.boxes[:0]
	for _, b := range boxes {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		b.clamp(CreateFloor)
		sub.boxes = append(sub.boxes, b)
	}
}

func (s *Store) current() *subject {
	if s == nil || s.active == "" {
		return nil
	}
	return s.ensure(s.active)
}

func (s *Store) ensure(id string) *subject {
	sub, ok := s.subjects[id]
	if !ok {
		sub = &subject{}
		s.subjects[id] = sub
	}
	return sub
}
