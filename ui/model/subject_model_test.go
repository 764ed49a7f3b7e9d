package model

import (
	"image"
	"testing"
)

func TestSubjectModel_AddAndActivate(t *testing.T) {
	m := NewSubjectModel()
	if m.Active() != nil {
		t.Fatal("no active subject expected on a fresh model")
	}

	a := m.Add("one.png", "one.png")
	m.Add("two.png", "two.png")
	if m.Len() != 2 {
		t.Fatalf("expected 2 subjects, got %d", m.Len())
	}
	if again := m.Add("one.png", "one.png"); again != a {
		t.Fatal("re-adding the same id must return the existing subject")
	}

	m.SetActive("two.png")
	if got := m.Active(); got == nil || got.ID != "two.png" {
		t.Fatalf("active subject wrong: %+v", got)
	}
	m.SetActive("missing.png")
	if got := m.Active(); got.ID != "two.png" {
		t.Fatal("unknown id must not change the active subject")
	}
}

func TestSubjectModel_SetImageRecordsNaturalSize(t *testing.T) {
	m := NewSubjectModel()
	s := m.Add("shot", "screenshot 1")
	if s.Loaded() {
		t.Fatal("subject must start without pixels")
	}
	m.SetImage("shot", image.NewRGBA(image.Rect(0, 0, 640, 480)))
	if !s.Loaded() || s.Width != 640 || s.Height != 480 {
		t.Fatalf("natural size not recorded: %dx%d loaded=%v", s.Width, s.Height, s.Loaded())
	}
}

func TestSubjectModel_NamesAndLookup(t *testing.T) {
	m := NewSubjectModel()
	m.Add("a", "first")
	m.Add("b", "second")
	names := m.Names()
	if len(names) != 2 || names[0] != "first" || names[1] != "second" {
		t.Fatalf("names out of order: %v", names)
	}
	id, ok := m.IDByName("second")
	if !ok || id != "b" {
		t.Fatalf("lookup failed: %q %v", id, ok)
	}
	if _, ok := m.IDByName("third"); ok {
		t.Fatal("unknown name must not resolve")
	}
}

func TestNoticeModel_PublishTake(t *testing.T) {
	var m NoticeModel
	if _, ok := m.Take(); ok {
		t.Fatal("fresh model has no notice")
	}
	m.Publish("saved annotations.txt")
	m.Publish("saved annotations.json")
	text, ok := m.Take()
	if !ok || text != "saved annotations.json" {
		t.Fatalf("latest notice expected, got %q %v", text, ok)
	}
	if _, ok := m.Take(); ok {
		t.Fatal("take must clear the notice")
	}
}

func TestSessionModel_Counts(t *testing.T) {
	m := NewSessionModel()
	m.RecordCreated()
	m.RecordCreated()
	m.RecordConfirmed(3)
	m.RecordConfirmed(0)
	m.RecordExport()
	created, confirmed, exported := m.Counts()
	if created != 2 || confirmed != 3 || exported != 1 {
		t.Fatalf("counts wrong: %d %d %d", created, confirmed, exported)
	}
}
