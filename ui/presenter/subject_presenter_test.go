package presenter

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/canvas"
	"github.com/Ryder-MHumble/evolabeler-go/domain/codec"
	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
	"github.com/Ryder-MHumble/evolabeler-go/domain/tool"
	"github.com/Ryder-MHumble/evolabeler-go/imageio"
	"github.com/Ryder-MHumble/evolabeler-go/ui/model"
)

type mockSubjectUI struct {
	names  []string
	active string
}

func (m *mockSubjectUI) SetSubjects(names []string, active string) {
	m.names, m.active = names, active
}

type mockRender struct{ dirty int }

func (m *mockRender) MarkDirty() { m.dirty++ }

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode image: %v", err)
	}
}

func newSubjectFixture(t *testing.T) (*SubjectPresenter, *annotation.Store, *geometry.Viewport, *mockSubjectUI) {
	t.Helper()
	logger := discardLogger()
	vp := geometry.NewViewport()
	vp.SetContainer(800, 600)
	store := annotation.NewStore(logger)
	tools := tool.NewMachine(logger)
	ctl := canvas.NewController(logger, vp, store, tools, canvas.Options{})
	subjects := model.NewSubjectModel()
	notices := &model.NoticeModel{}
	ui := &mockSubjectUI{}
	p := NewSubjectPresenter(logger, imageio.NewLoader(logger), subjects, store, vp, ctl, notices, ui, &mockRender{})
	return p, store, vp, ui
}

func TestSubjectPresenter_OpenPathActivatesAndDecodes(t *testing.T) {
	p, store, vp, ui := newSubjectFixture(t)
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "photo.png")
	writeTestImage(t, imgPath, 64, 48)

	p.OpenPath(imgPath)
	if ui.active != "photo.png" {
		t.Fatalf("picker not updated: %q", ui.active)
	}
	if store.Active() != imgPath {
		t.Fatalf("store not switched: %q", store.Active())
	}

	deadline := time.Now().Add(3 * time.Second)
	for !vp.Ready() && time.Now().Before(deadline) {
		p.Tick(time.Now())
		time.Sleep(5 * time.Millisecond)
	}
	if !vp.Ready() {
		t.Fatal("decode did not land in time")
	}
	if w, h, ok := store.NaturalSize(); !ok || w != 64 || h != 48 {
		t.Fatalf("natural size wrong: %dx%d ok=%v", w, h, ok)
	}
}

func TestSubjectPresenter_SidecarRestoresBoxes(t *testing.T) {
	p, store, _, _ := newSubjectFixture(t)
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "photo.png")
	writeTestImage(t, imgPath, 64, 48)

	boxes := []annotation.Box{
		{ID: "a", X: 0.2, Y: 0.2, W: 0.3, H: 0.3, Label: "person", Confidence: 1, Status: annotation.StatusConfirmed},
	}
	data, err := codec.EncodeJSON("photo", 64, 48, boxes)
	if err != nil {
		t.Fatalf("encode sidecar: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "photo_annotations.json"), data, 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	p.OpenPath(imgPath)
	deadline := time.Now().Add(3 * time.Second)
	for store.Len() == 0 && time.Now().Before(deadline) {
		p.Tick(time.Now())
		time.Sleep(5 * time.Millisecond)
	}
	if store.Len() != 1 {
		t.Fatal("sidecar boxes not restored")
	}
	got, ok := store.Get("a")
	if !ok || got.Label != "person" || got.Status != annotation.StatusConfirmed {
		t.Fatalf("restored box wrong: %+v ok=%v", got, ok)
	}
}

func TestSubjectPresenter_SwitchBeforeDecodeBlocksDrawing(t *testing.T) {
	p, store, vp, _ := newSubjectFixture(t)
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "photo.png")
	writeTestImage(t, imgPath, 64, 48)

	p.OpenPath(imgPath)
	deadline := time.Now().Add(3 * time.Second)
	for !vp.Ready() && time.Now().Before(deadline) {
		p.Tick(time.Now())
		time.Sleep(5 * time.Millisecond)
	}
	if !vp.Ready() {
		t.Fatal("decode did not land in time")
	}

	p.OpenPath(filepath.Join(dir, "missing.png"))
	if vp.Ready() {
		t.Fatal("viewport must not stay ready for a subject without pixels")
	}

	p.ctl.SelectTool(tool.KindDraw)
	p.ctl.PointerDown(100, 100)
	p.ctl.PointerMove(300, 300)
	p.ctl.PointerUp(300, 300)
	if store.Len() != 0 {
		t.Fatalf("draw on a subject without pixels committed %d box(es)", store.Len())
	}

	// the failed decode must not re-arm the viewport either
	for i := 0; i < 20; i++ {
		p.Tick(time.Now())
		time.Sleep(5 * time.Millisecond)
	}
	if vp.Ready() {
		t.Fatal("failed decode re-armed the viewport")
	}
}

func TestSubjectPresenter_SidecarSeedsOnLateActivation(t *testing.T) {
	p, store, _, _ := newSubjectFixture(t)
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "photo.png")

	boxes := []annotation.Box{
		{ID: "a", X: 0.2, Y: 0.2, W: 0.3, H: 0.3, Label: "person", Confidence: 1, Status: annotation.StatusConfirmed},
	}
	data, err := codec.EncodeJSON("photo", 64, 48, boxes)
	if err != nil {
		t.Fatalf("encode sidecar: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "photo_annotations.json"), data, 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	p.subjects.Add("front", "front")
	p.subjects.SetImage("front", image.NewRGBA(image.Rect(0, 0, 32, 32)))
	p.SelectByName("front")

	// photo's pixels arrive while front is on screen
	p.subjects.Add(imgPath, "photo.png")
	p.subjects.SetImage(imgPath, image.NewRGBA(image.Rect(0, 0, 64, 48)))

	p.SelectByName("photo.png")
	if store.Len() != 1 {
		t.Fatalf("sidecar not restored on activation: %d boxes", store.Len())
	}

	// restore runs once; switching away and back must not duplicate
	p.SelectByName("front")
	p.SelectByName("photo.png")
	if store.Len() != 1 {
		t.Fatalf("restore ran twice: %d boxes", store.Len())
	}
}

func TestSubjectPresenter_SelectByNameSwitchesStore(t *testing.T) {
	p, store, _, ui := newSubjectFixture(t)
	dir := t.TempDir()
	one := filepath.Join(dir, "one.png")
	two := filepath.Join(dir, "two.png")
	writeTestImage(t, one, 32, 32)
	writeTestImage(t, two, 32, 32)

	p.OpenPath(one)
	p.OpenPath(two)
	if store.Active() != two {
		t.Fatalf("latest open must be active: %q", store.Active())
	}

	p.SelectByName("one.png")
	if store.Active() != one {
		t.Fatalf("selection must switch the store: %q", store.Active())
	}
	if ui.active != "one.png" {
		t.Fatalf("picker must follow: %q", ui.active)
	}
}
