package images

import (
	"errors"
	"image"
	"image/draw"
	"math"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
)

// CropBox extracts the pixel region of a box from the subject image, for
// the editor panel thumbnail. The rectangle is clamped to image bounds and
// guaranteed at least 1x1. Returns the crop (always *image.RGBA) and the
// pixel rectangle relative to the subject.
func CropBox(subject image.Image, b annotation.Box) (*image.RGBA, image.Rectangle, error) {
	if subject == nil {
		return nil, image.Rectangle{}, errors.New("nil subject image")
	}
	sb := subject.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())
	x0 := sb.Min.X + int(math.Round(b.X*w))
	y0 := sb.Min.Y + int(math.Round(b.Y*h))
	x1 := sb.Min.X + int(math.Round((b.X+b.W)*w))
	y1 := sb.Min.Y + int(math.Round((b.Y+b.H)*h))
	r := image.Rect(x0, y0, x1, y1).Intersect(sb)
	if r.Dx() < 1 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() < 1 {
		r.Max.Y = r.Min.Y + 1
	}
	r = r.Intersect(sb)
	if r.Empty() {
		return nil, image.Rectangle{}, errors.New("box outside image bounds")
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), subject, r.Min, draw.Src)
	return out, r, nil
}
