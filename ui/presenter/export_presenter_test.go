package presenter

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/codec"
	"github.com/Ryder-MHumble/evolabeler-go/ui/model"
)

type memSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (s *memSink) Save(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[name] = data
	return nil
}

func (s *memSink) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok
}

func (s *memSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for n := range s.files {
		out = append(out, n)
	}
	return out
}

func newExportFixture(t *testing.T, boxes int) (*ExportPresenter, *memSink, *model.NoticeModel, *model.SessionModel) {
	t.Helper()
	logger := discardLogger()
	sink := &memSink{}
	exporter := codec.NewExporter(logger, codec.DefaultVocabulary(), sink)
	store := annotation.NewStore(logger)
	store.SetActive("photo.png")
	store.SetNaturalSize(1600, 1200)
	for i := 0; i < boxes; i++ {
		store.Add(annotation.Box{X: 0.1, Y: 0.1, W: 0.2, H: 0.2, Label: "object", Confidence: 1})
	}
	subjects := model.NewSubjectModel()
	subjects.Add("photo.png", "photo.png")
	subjects.SetImage("photo.png", image.NewRGBA(image.Rect(0, 0, 1600, 1200)))
	subjects.SetActive("photo.png")
	notices := &model.NoticeModel{}
	session := model.NewSessionModel()
	p := NewExportPresenter(logger, exporter, store, subjects, notices, session)
	return p, sink, notices, session
}

func waitForExport(t *testing.T, p *ExportPresenter, session *model.SessionModel) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		p.Tick(time.Now())
		if _, _, exported := session.Counts(); exported > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("export did not complete in time")
}

func TestExportPresenter_YOLOWritesArtifacts(t *testing.T) {
	p, sink, notices, session := newExportFixture(t, 2)
	p.ExportYOLO()
	waitForExport(t, p, session)

	names := sink.names()
	if len(names) != 2 {
		t.Fatalf("expected annotation file + classes file, got %v", names)
	}
	if !sink.has("photo_annotations.txt") {
		t.Fatalf("annotation file missing: %v", names)
	}
	if !sink.has("classes.txt") {
		t.Fatalf("classes file missing: %v", names)
	}
	if text, ok := notices.Take(); !ok || text == "" {
		t.Fatal("completion notice expected")
	}
}

func TestExportPresenter_JSONWritesDocument(t *testing.T) {
	p, sink, _, session := newExportFixture(t, 1)
	p.ExportJSON()
	waitForExport(t, p, session)

	if !sink.has("photo_annotations.json") {
		t.Fatalf("document missing: %v", sink.names())
	}
}

func TestExportPresenter_NoBoxesShortCircuits(t *testing.T) {
	p, sink, notices, _ := newExportFixture(t, 0)
	p.ExportYOLO()

	if len(sink.names()) != 0 {
		t.Fatalf("no files expected, got %v", sink.names())
	}
	if text, ok := notices.Take(); !ok || text != "nothing to export: no annotations" {
		t.Fatalf("short-circuit notice expected, got %q", text)
	}
}
