package view

import (
	"image"

	"github.com/Ryder-MHumble/evolabeler-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandler receives pointer events in container pixel coordinates.
// Tk keeps an implicit grab on the pressed widget, so motion and release
// keep arriving here even when the pointer leaves the canvas mid-drag.
type PointerHandler interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
}

// CanvasView shows composited annotation frames and forwards pointer input.
// Detach severs the widget on teardown so late ticks become no-ops.
type CanvasView interface {
	ShowFrame(frame image.Image)
	Size() (w, h int)
	Detach()
}

type canvasView struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo image instance
	w, h      int
}

// Internal state tracks the current photo so we can dispose the old image
// before replacing it, preventing accumulation of off-screen image data.

// NewCanvasView creates the canvas label at the given grid cell and wires
// button-1 press/motion/release to the handler.
func NewCanvasView(row, col, w, h int, handler PointerHandler) CanvasView {
	blank := image.NewRGBA(image.Rect(0, 0, w, h))
	photo := NewPhoto(Data(images.EncodePNG(blank)))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(col), Rowspan(6), Sticky("nwse"), Padx("0.4m"), Pady("0.4m"))
	v := &canvasView{label: label, prevPhoto: photo, w: w, h: h}

	if handler != nil {
		Bind(label, "<ButtonPress-1>", Command(func(e *Event) {
			handler.PointerDown(float64(e.X), float64(e.Y))
		}))
		Bind(label, "<B1-Motion>", Command(func(e *Event) {
			handler.PointerMove(float64(e.X), float64(e.Y))
		}))
		Bind(label, "<ButtonRelease-1>", Command(func(e *Event) {
			handler.PointerUp(float64(e.X), float64(e.Y))
		}))
	}
	return v
}

// ShowFrame replaces the displayed photo with a freshly encoded frame.
func (v *canvasView) ShowFrame(frame image.Image) {
	if v == nil || v.label == nil || frame == nil {
		return
	}
	pngBytes := images.EncodePNG(frame)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(pngBytes))
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}

// Detach drops the widget reference; subsequent ShowFrame calls no-op.
func (v *canvasView) Detach() {
	if v == nil {
		return
	}
	v.label = nil
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
		v.prevPhoto = nil
	}
}

// Size returns the container dimensions in pixels.
func (v *canvasView) Size() (w, h int) {
	if v == nil {
		return 0, 0
	}
	return v.w, v.h
}
