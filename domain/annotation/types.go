package annotation

// Box geometry is normalized to the subject's natural pixel size: x, y,
// width and height are fractions in [0,1] with x+width<=1 and y+height<=1.

const (
	// CreateFloor is the minimum normalized width/height at box creation.
	CreateFloor = 0.02
	// EditFloor is the minimum normalized width/height after any edit.
	EditFloor = 0.03
)

// Status is the two-state review lifecycle of a box.
type Status int

const (
	StatusPending Status = iota
	StatusConfirmed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// ParseStatus maps the wire spelling back to a Status. Unrecognized input
// reports ok=false; callers decide the fallback.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "pending":
		return StatusPending, true
	case "confirmed":
		return StatusConfirmed, true
	default:
		return StatusPending, false
	}
}

// Box is one rectangular annotation.
type Box struct {
	ID         string
	X          float64
	Y          float64
	W          float64
	H          float64
	Confidence float64
	Label      string
	Status     Status
}

// Contains reports whether the normalized point lies within the box body.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// clamp normalizes geometry against the given size floor: width/height are
// forced into [floor,1], then the origin is shifted so the box stays inside
// the unit square. Confidence is clamped to [0,1]. Out-of-range input is
// corrected, never rejected.
func (b *Box) clamp(floor float64) {
	b.W = clampRange(b.W, floor, 1)
	b.H = clampRange(b.H, floor, 1)
	b.X = clampRange(b.X, 0, 1-b.W)
	b.Y = clampRange(b.Y, 0, 1-b.H)
	b.Confidence = clampRange(b.Confidence, 0, 1)
}

// Patch carries a partial box update; nil fields are left untouched.
type Patch struct {
	X          *float64
	Y          *float64
	W          *float64
	H          *float64
	Confidence *float64
	Label      *string
	Status     *Status
}

func clampRange(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
