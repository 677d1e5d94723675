package sim

import (
	"time"

	"github.com/zeusync/evader/internal/core/systems/physics"
)

const (
	DefaultBulletSpeed  = 10
	DefaultBulletWidth  = 10
	DefaultBulletHeight = 20
	DefaultTickDuration = time.Second / 60
)

// Bullet travels straight up the screen by Speed pixels per tick.
type Bullet struct {
	Box   physics.Box
	Speed float64
}

// NewBullet places a bullet with its top-left corner at (x, y).
func NewBullet(x, y, speed float64) Bullet {
	return Bullet{
		Box:   physics.BoxFromEdges(x, y, x+DefaultBulletWidth, y+DefaultBulletHeight),
		Speed: speed,
	}
}

func (b *Bullet) Update() { b.Box = b.Box.Translate(0, -b.Speed) }

// OffScreen reports whether the bullet has fully left the top of the screen.
func (b *Bullet) OffScreen() bool { return b.Box.Bottom() < 0 }

// Clock is a manually advanced clock handed to the controller so that a
// simulated run does not depend on wall time.
type Clock struct{ now time.Time }

func NewClock(start time.Time) *Clock { return &Clock{now: start} }

func (c *Clock) Now() time.Time          { return c.now }
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }
