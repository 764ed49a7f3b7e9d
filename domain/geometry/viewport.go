package geometry

// Viewport maps between the normalized coordinate space of a subject image
// and the screen pixel space of the canvas container. The mapping is derived
// from three inputs: container bounds, the image's natural pixel size, and a
// zoom/pan pair. All derived quantities (base fit, scaled size, display
// offset) are recomputed on demand so the two conversion directions stay
// exact mutual inverses.

const (
	// MinZoom and MaxZoom bound the zoom level. Requests outside the range
	// clamp silently.
	MinZoom = 0.25
	MaxZoom = 5.0

	// DefaultZoomStep is the increment applied by keyboard/toolbar zoom.
	DefaultZoomStep = 0.25

	// fitFraction is the share of the container the base fit may occupy.
	fitFraction = 0.95
)

// Point is a 2D coordinate. The space it lives in (normalized or screen
// pixels) is determined by context.
type Point struct {
	X float64
	Y float64
}

// Size is a 2D extent.
type Size struct {
	W float64
	H float64
}

// Viewport holds the current view state for one subject. The zero value is
// not usable; construct with NewViewport.
type Viewport struct {
	containerW float64
	containerH float64
	naturalW   float64
	naturalH   float64
	zoom       float64
	pan        Point
}

// NewViewport returns a viewport at zoom 1 with no pan. Container and
// natural sizes must be supplied before conversions are meaningful.
func NewViewport() *Viewport {
	return &Viewport{zoom: 1}
}

// SetContainer updates the container bounds in screen pixels.
func (v *Viewport) SetContainer(w, h float64) {
	if v == nil {
		return
	}
	v.containerW, v.containerH = w, h
}

// SetNatural records the subject's natural pixel dimensions.
func (v *Viewport) SetNatural(w, h int) {
	if v == nil {
		return
	}
	v.naturalW, v.naturalH = float64(w), float64(h)
}

// Ready reports whether both container bounds and natural dimensions are
// known. Conversions must not be attempted before Ready returns true; that
// is a caller lifecycle bug, not a runtime error.
func (v *Viewport) Ready() bool {
	return v != nil && v.containerW > 0 && v.containerH > 0 && v.naturalW > 0 && v.naturalH > 0
}

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 {
	if v == nil {
		return 1
	}
	return v.zoom
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom]. Recentering
// happens through the display offset, so callers never need a pan
// correction after a zoom change.
func (v *Viewport) SetZoom(z float64) {
	if v == nil {
		return
	}
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	v.zoom = z
}

// StepZoom adjusts zoom by delta with the usual clamping.
func (v *Viewport) StepZoom(delta float64) { v.SetZoom(v.Zoom() + delta) }

// Pan returns the accumulated pan offset in screen pixels.
func (v *Viewport) Pan() Point {
	if v == nil {
		return Point{}
	}
	return v.pan
}

// PanBy accumulates a screen-pixel delta 1:1 into the pan offset. The pan
// is already in screen space, so no scaling is applied.
func (v *Viewport) PanBy(dx, dy float64) {
	if v == nil {
		return
	}
	v.pan.X += dx
	v.pan.Y += dy
}

// Reset restores zoom 1 and zero pan. Called on subject switch and
// image-load completion.
func (v *Viewport) Reset() {
	if v == nil {
		return
	}
	v.zoom = 1
	v.pan = Point{}
}

// BaseSize returns the aspect-preserving fit of the natural image into
// fitFraction of the container. The limiting dimension is scaled to 95% of
// its container axis and the other follows from the aspect ratio.
func (v *Viewport) BaseSize() Size {
	if !v.Ready() {
		return Size{}
	}
	scaleW := fitFraction * v.containerW / v.naturalW
	scaleH := fitFraction * v.containerH / v.naturalH
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	return Size{W: v.naturalW * scale, H: v.naturalH * scale}
}

// ScaledSize is BaseSize multiplied by the zoom level.
func (v *Viewport) ScaledSize() Size {
	base := v.BaseSize()
	return Size{W: base.W * v.zoom, H: base.H * v.zoom}
}

// Offset returns the display offset: the scaled image centered in the
// container, shifted by the pan offset.
func (v *Viewport) Offset() Point {
	if !v.Ready() {
		return Point{}
	}
	scaled := v.ScaledSize()
	return Point{
		X: (v.containerW-scaled.W)/2 + v.pan.X,
		Y: (v.containerH-scaled.H)/2 + v.pan.Y,
	}
}

// ToScreen converts a normalized point to container screen pixels.
func (v *Viewport) ToScreen(n Point) Point {
	off := v.Offset()
	scaled := v.ScaledSize()
	return Point{X: off.X + n.X*scaled.W, Y: off.Y + n.Y*scaled.H}
}

// ToNormalized converts a screen pixel point to normalized coordinates,
// clamped to [0,1] on both axes.
func (v *Viewport) ToNormalized(s Point) Point {
	off := v.Offset()
	scaled := v.ScaledSize()
	if scaled.W <= 0 || scaled.H <= 0 {
		return Point{}
	}
	return Point{
		X: clamp01((s.X - off.X) / scaled.W),
		Y: clamp01((s.Y - off.Y) / scaled.H),
	}
}

// NormalizedDelta converts a screen-pixel delta to a normalized delta.
// Unlike ToNormalized it is unclamped; drag and resize math clamps the
// resulting geometry instead.
func (v *Viewport) NormalizedDelta(dx, dy float64) (float64, float64) {
	scaled := v.ScaledSize()
	if scaled.W <= 0 || scaled.H <= 0 {
		return 0, 0
	}
	return dx / scaled.W, dy / scaled.H
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
