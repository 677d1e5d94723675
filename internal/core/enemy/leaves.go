package enemy

import (
	"github.com/paulmach/orb"

	"github.com/zeusync/evader/internal/core/systems/physics"
)

// Conditions

func NoThreat(s *Situation) bool {
	_, ok := s.NearestThreat()
	return !ok
}

func ThreatPresent(s *Situation) bool {
	_, ok := s.NearestThreat()
	return ok
}

func IsBehindObstacle(s *Situation) bool {
	return BehindObstacle(s.Agent.Box, s.Obstacles)
}

func IsNotBehindObstacle(s *Situation) bool {
	return !BehindObstacle(s.Agent.Box, s.Obstacles)
}

// ThreatOnLeft reports whether the nearest threat's left edge is left of the
// agent's center.
func ThreatOnLeft(s *Situation) bool {
	threat, ok := s.NearestThreat()
	return ok && threat.Left() < s.Agent.Box.CenterX()
}

// Wait succeeds once the backoff since the last hit has elapsed and fails
// while it is still running.
//
// Observer with recorded side effect: on success it clears the waiting flag,
// reporting TransitionRecovered the first time.
func Wait(s *Situation) bool {
	st := s.Agent
	if s.Now().Sub(st.LastHit) < st.Backoff {
		return false
	}
	if st.Waiting {
		st.Waiting = false
		s.emit(TransitionRecovered)
	}
	return true
}

// HitRecently detects a hit: when a threat is present and the hit flag is
// set it records the current time and starts waiting.
//
// Observer with recorded side effect: it writes LastHit and Waiting and
// reports TransitionHit. Use BackingOff for a pure read.
func HitRecently(s *Situation) bool {
	if _, ok := s.NearestThreat(); !ok || !s.Agent.Hit {
		return false
	}
	s.Agent.LastHit = s.Now()
	s.Agent.Waiting = true
	s.emit(TransitionHit)
	return true
}

// BackingOff reports whether the agent is still cooling down after a hit.
func BackingOff(s *Situation) bool {
	return s.Agent.Waiting && s.Now().Sub(s.Agent.LastHit) < s.Agent.Backoff
}

// Actions

// MoveHome steps horizontally toward the home x by at most Speed and stays
// put once aligned. The vertical position is left alone.
func MoveHome(s *Situation) {
	x := physics.StepToward(s.Agent.Box.CenterX(), s.Agent.Home[0], s.Agent.Speed)
	s.moveTo(orb.Point{x, s.Agent.Box.CenterY()})
}

// Dodge moves horizontally away from the nearest threat: right when the
// threat's left edge is left of the agent's center, left otherwise.
func Dodge(s *Situation) {
	if _, ok := s.NearestThreat(); !ok {
		return
	}
	if ThreatOnLeft(s) {
		MoveRight(s)
		return
	}
	MoveLeft(s)
}

func MoveLeft(s *Situation)  { s.moveBy(-s.Agent.Speed) }
func MoveRight(s *Situation) { s.moveBy(s.Agent.Speed) }

// MoveToObstacle steps toward the horizontal center of the nearest obstacle.
func MoveToObstacle(s *Situation) {
	o, _, ok := NearestObstacle(s.Agent.Box, s.Obstacles)
	if !ok {
		return
	}
	x := physics.StepToward(s.Agent.Box.CenterX(), o.CenterX(), s.Agent.Speed)
	s.moveTo(orb.Point{x, s.Agent.Box.CenterY()})
}

// Hold keeps the agent where it is.
func Hold(*Situation) {}
