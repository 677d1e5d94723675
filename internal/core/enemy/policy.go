package enemy

import (
	"bytes"
	_ "embed"

	"github.com/zeusync/evader/internal/core/npc"
)

//go:embed policy.yaml
var defaultPolicy []byte

// Leaf names understood by policies built with NewRegistry.
const (
	CondNoThreat          = "no-threat"
	CondThreatPresent     = "threat-present"
	CondBehindObstacle    = "behind-obstacle"
	CondNotBehindObstacle = "not-behind-obstacle"
	CondThreatOnLeft      = "threat-on-left"
	CondWait              = "wait"
	CondHitRecently       = "hit-recently"
	CondBackingOff        = "backing-off"

	ActMoveHome       = "move-home"
	ActDodge          = "dodge"
	ActMoveLeft       = "move-left"
	ActMoveRight      = "move-right"
	ActMoveToObstacle = "move-to-obstacle"
	ActHold           = "hold"
)

// NewRegistry returns a registry holding every enemy leaf.
func NewRegistry() *npc.Registry[*Situation] {
	r := npc.NewRegistry[*Situation]()

	r.RegisterCondition(CondNoThreat, NoThreat)
	r.RegisterCondition(CondThreatPresent, ThreatPresent)
	r.RegisterCondition(CondBehindObstacle, IsBehindObstacle)
	r.RegisterCondition(CondNotBehindObstacle, IsNotBehindObstacle)
	r.RegisterCondition(CondThreatOnLeft, ThreatOnLeft)
	r.RegisterCondition(CondWait, Wait)
	r.RegisterCondition(CondHitRecently, HitRecently)
	r.RegisterCondition(CondBackingOff, BackingOff)

	r.RegisterAction(ActMoveHome, MoveHome)
	r.RegisterAction(ActDodge, Dodge)
	r.RegisterAction(ActMoveLeft, MoveLeft)
	r.RegisterAction(ActMoveRight, MoveRight)
	r.RegisterAction(ActMoveToObstacle, MoveToObstacle)
	r.RegisterAction(ActHold, Hold)
	return r
}

// DefaultPolicy returns a fresh copy of the stock dodge-and-hide policy:
//
//	Selector
//	  Sequence[no-threat, move-home]
//	  Sequence[behind-obstacle, wait]
//	  Sequence[threat-present, dodge]
//	  Sequence[no-threat, move-home]
//	  hold
func DefaultPolicy() (*npc.Config, error) {
	return npc.LoadYAML(bytes.NewReader(defaultPolicy))
}
