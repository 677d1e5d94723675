package physics

// Geometry shared by the agent core and the arena. Coordinates follow screen
// conventions: x grows to the right and y grows downward, so Top < Bottom.

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Box is an axis-aligned rectangle described by its center and size.
// It is a value type; snapshots of boxes are safe to share read-only.
type Box struct {
	center orb.Point
	w, h   float64
}

func NewBox(center orb.Point, w, h float64) Box {
	return Box{center: center, w: w, h: h}
}

// BoxFromEdges builds a box from its four edges.
func BoxFromEdges(left, top, right, bottom float64) Box {
	return Box{
		center: orb.Point{(left + right) / 2, (top + bottom) / 2},
		w:      right - left,
		h:      bottom - top,
	}
}

func (b Box) Center() orb.Point { return b.center }
func (b Box) CenterX() float64  { return b.center[0] }
func (b Box) CenterY() float64  { return b.center[1] }
func (b Box) Width() float64    { return b.w }
func (b Box) Height() float64   { return b.h }
func (b Box) Left() float64     { return b.center[0] - b.w/2 }
func (b Box) Right() float64    { return b.center[0] + b.w/2 }
func (b Box) Top() float64      { return b.center[1] - b.h/2 }
func (b Box) Bottom() float64   { return b.center[1] + b.h/2 }

func (b Box) Translate(dx, dy float64) Box {
	b.center = orb.Point{b.center[0] + dx, b.center[1] + dy}
	return b
}

func (b Box) MoveTo(p orb.Point) Box {
	b.center = p
	return b
}

// Intersects reports whether the interiors overlap; touching edges do not count.
func (b Box) Intersects(o Box) bool {
	return b.Left() < o.Right() && b.Right() > o.Left() &&
		b.Top() < o.Bottom() && b.Bottom() > o.Top()
}

// Distance computes the Euclidean distance between two box centers.
func Distance(a, b Box) float64 { return planar.Distance(a.center, b.center) }

// HorizontalDistance is the signed center-x offset from a to b.
func HorizontalDistance(a, b Box) float64 { return b.center[0] - a.center[0] }

// StepToward moves from toward to by at most step, landing exactly on to
// when it is within reach.
func StepToward(from, to, step float64) float64 {
	d := to - from
	if math.Abs(d) <= step {
		return to
	}
	if d > 0 {
		return from + step
	}
	return from - step
}
