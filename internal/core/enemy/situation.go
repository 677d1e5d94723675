package enemy

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/zeusync/evader/internal/core/systems/physics"
)

// Transition is a change of the hit/backoff state machine.
type Transition uint8

const (
	// TransitionHit is Idle -> HitRecently.
	TransitionHit Transition = iota + 1
	// TransitionRecovered is HitRecently -> Idle.
	TransitionRecovered
)

func (t Transition) String() string {
	switch t {
	case TransitionHit:
		return "hit"
	case TransitionRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Situation is the evaluation context handed to every leaf for one tick:
// the world snapshot, the agent state and the clock.
//
// Projectiles and Obstacles are borrowed for the duration of the tick and
// are never written to.
type Situation struct {
	Projectiles []physics.Box
	Obstacles   []physics.Box
	Agent       *State

	clock  func() time.Time
	notify func(Transition)

	// nearest threat cache, dropped whenever the agent moves
	threat   physics.Box
	threatOK bool
	cached   bool
}

// NewSituation builds a context for evaluating leaves outside a Controller.
// A nil clock falls back to time.Now.
func NewSituation(agent *State, projectiles, obstacles []physics.Box, clock func() time.Time) *Situation {
	if clock == nil {
		clock = time.Now
	}
	return &Situation{Projectiles: projectiles, Obstacles: obstacles, Agent: agent, clock: clock}
}

// Now reads the injected clock.
func (s *Situation) Now() time.Time { return s.clock() }

// NearestThreat returns the projectile closest to the agent, computed at
// most once per agent position.
func (s *Situation) NearestThreat() (physics.Box, bool) {
	if !s.cached {
		s.threat, _, s.threatOK = NearestThreat(s.Agent.Box, s.Projectiles)
		s.cached = true
	}
	return s.threat, s.threatOK
}

func (s *Situation) moveTo(p orb.Point) {
	if p == s.Agent.Box.Center() {
		return
	}
	s.Agent.Box = s.Agent.Box.MoveTo(p)
	s.cached = false
}

func (s *Situation) moveBy(dx float64) {
	s.moveTo(orb.Point{s.Agent.Box.CenterX() + dx, s.Agent.Box.CenterY()})
}

func (s *Situation) emit(t Transition) {
	if s.notify != nil {
		s.notify(t)
	}
}
