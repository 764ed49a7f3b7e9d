package images

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
	"github.com/Ryder-MHumble/evolabeler-go/domain/tool"
)

// Overlay colors. Kept here rather than in ui/theme because the compositor
// works in raster space while the theme configures Tk widget styles.
var (
	colorBackground = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	colorPending    = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	colorConfirmed  = color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	colorSelected   = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	colorMarquee    = color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
)

const (
	boxStroke   = 2
	handleSide  = 7
	marqueeDash = 6
	marqueeGap  = 4
)

// Scene is everything the canvas shows for one frame: the subject image
// under the current view transform plus annotation overlays.
type Scene struct {
	Size     image.Point // container size in px
	Subject  image.Image // nil before the first load; caller supplies a placeholder
	Offset   geometry.Point
	Scaled   geometry.Size
	Boxes    []BoxMark
	Selected string
	Marquee  *image.Rectangle // in-progress draw rect, screen px
}

// BoxMark is one box ready for drawing, already mapped to screen pixels.
type BoxMark struct {
	ID     string
	Rect   image.Rectangle
	Status annotation.Status
}

// BuildScene maps store and interaction state through the viewport into a
// drawable Scene. Pure; exercised directly by tests.
func BuildScene(vp *geometry.Viewport, subject image.Image, boxes []annotation.Box, selected string, mode tool.Mode, container image.Point) Scene {
	s := Scene{Size: container, Subject: subject, Selected: selected}
	if !vp.Ready() {
		return s
	}
	s.Offset = vp.Offset()
	s.Scaled = vp.ScaledSize()
	for _, b := range boxes {
		tl := vp.ToScreen(geometry.Point{X: b.X, Y: b.Y})
		br := vp.ToScreen(geometry.Point{X: b.X + b.W, Y: b.Y + b.H})
		s.Boxes = append(s.Boxes, BoxMark{
			ID:     b.ID,
			Rect:   image.Rect(round(tl.X), round(tl.Y), round(br.X), round(br.Y)),
			Status: b.Status,
		})
	}
	if dm, ok := mode.(tool.DrawMode); ok && dm.Drawing {
		r := image.Rect(round(dm.Start.X), round(dm.Start.Y), round(dm.Current.X), round(dm.Current.Y))
		s.Marquee = &r
	}
	return s
}

// Render composites the scene into a fresh RGBA frame: background, scaled
// subject, box outlines colored by status, selection handles, marquee.
func (s Scene) Render() *image.RGBA {
	w, h := s.Size.X, s.Size.Y
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	if s.Subject != nil && s.Scaled.W > 0 && s.Scaled.H > 0 {
		target := image.Rect(
			round(s.Offset.X), round(s.Offset.Y),
			round(s.Offset.X+s.Scaled.W), round(s.Offset.Y+s.Scaled.H),
		)
		xdraw.ApproxBiLinear.Scale(dst, target, s.Subject, s.Subject.Bounds(), xdraw.Over, nil)
	}

	for _, m := range s.Boxes {
		c := colorPending
		if m.Status == annotation.StatusConfirmed {
			c = colorConfirmed
		}
		if m.ID == s.Selected {
			c = colorSelected
		}
		strokeRect(dst, m.Rect, c, boxStroke)
		if m.ID == s.Selected {
			drawHandles(dst, m.Rect, c)
		}
	}

	if s.Marquee != nil {
		strokeDashedRect(dst, s.Marquee.Canon(), colorMarquee)
	}
	return dst
}

// IdleFrame composites a centered placeholder over the background, for the
// state before any subject is open.
func IdleFrame(placeholder image.Image, container image.Point) *image.RGBA {
	s := Scene{Size: container}
	dst := s.Render()
	if placeholder == nil {
		return dst
	}
	pb := placeholder.Bounds()
	const fit = 0.95
	fitW := float64(container.X) * fit
	fitH := float64(container.Y) * fit
	scale := fitW / float64(pb.Dx())
	if h := fitH / float64(pb.Dy()); h < scale {
		scale = h
	}
	if scale > 1 {
		scale = 1
	}
	w := round(float64(pb.Dx()) * scale)
	h := round(float64(pb.Dy()) * scale)
	x0 := (container.X - w) / 2
	y0 := (container.Y - h) / 2
	target := image.Rect(x0, y0, x0+w, y0+h)
	xdraw.ApproxBiLinear.Scale(dst, target, placeholder, pb, xdraw.Over, nil)
	return dst
}

// strokeRect draws an axis-aligned rectangle outline of the given stroke
// width, clipped to dst bounds by the underlying draw calls.
func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	r = r.Canon()
	u := image.NewUniform(c)
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width)
	bottom := image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y)
	right := image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y)
	for _, e := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(dst, e.Intersect(dst.Bounds()), u, image.Point{}, draw.Src)
	}
}

// drawHandles fills the eight resize anchors of a selected box.
func drawHandles(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Canon()
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	anchors := []image.Point{
		{X: r.Min.X, Y: r.Min.Y}, {X: cx, Y: r.Min.Y}, {X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: cy}, {X: r.Max.X, Y: r.Max.Y}, {X: cx, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y}, {X: r.Min.X, Y: cy},
	}
	u := image.NewUniform(c)
	half := handleSide / 2
	for _, a := range anchors {
		sq := image.Rect(a.X-half, a.Y-half, a.X+half+1, a.Y+half+1)
		draw.Draw(dst, sq.Intersect(dst.Bounds()), u, image.Point{}, draw.Src)
	}
}

// strokeDashedRect draws a 1px dashed outline for the draw-tool rubber band.
func strokeDashedRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	period := marqueeDash + marqueeGap
	for x := r.Min.X; x < r.Max.X; x++ {
		if x%period < marqueeDash {
			dst.SetRGBA(x, r.Min.Y, c)
			dst.SetRGBA(x, r.Max.Y-1, c)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if y%period < marqueeDash {
			dst.SetRGBA(r.Min.X, y, c)
			dst.SetRGBA(r.Max.X-1, y, c)
		}
	}
}

func round(f float64) int { return int(math.Round(f)) }
