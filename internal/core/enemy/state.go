package enemy

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/zeusync/evader/internal/core/systems/physics"
)

// State is the agent's spatial and temporal state. The Controller owns it;
// tree leaves mutate it through a Situation during evaluation.
type State struct {
	Box     physics.Box
	Home    orb.Point
	Speed   float64
	Backoff time.Duration

	// Hit is set by the game loop when the agent was struck and consumed on
	// the next Advance.
	Hit     bool
	LastHit time.Time
	Waiting bool
}

func newState(cfg Config) State {
	start := cfg.Home
	if cfg.Start != nil {
		start = *cfg.Start
	}
	return State{
		Box:     physics.NewBox(start.Orb(), cfg.Size.W, cfg.Size.H),
		Home:    cfg.Home.Orb(),
		Speed:   cfg.Speed,
		Backoff: cfg.Backoff,
	}
}
