package enemy

import (
	"math"

	"github.com/zeusync/evader/internal/core/systems/physics"
)

// NearestThreat returns the projectile whose center is closest to the agent's
// center, its index, and false when there are no projectiles. Ties keep the
// earlier projectile.
func NearestThreat(agent physics.Box, projectiles []physics.Box) (physics.Box, int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, p := range projectiles {
		if d := physics.Distance(agent, p); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return physics.Box{}, -1, false
	}
	return projectiles[best], best, true
}

// BehindObstacle reports whether some obstacle's horizontal span strictly
// contains the agent's and the agent's bottom edge is above its top edge.
func BehindObstacle(agent physics.Box, obstacles []physics.Box) bool {
	for _, o := range obstacles {
		horizontal := agent.Left() > o.Left() && agent.Right() < o.Right()
		vertical := agent.Bottom() < o.Top()
		if horizontal && vertical {
			return true
		}
	}
	return false
}

// NearestObstacle returns the obstacle whose center is horizontally closest
// to the agent's center, its index, and false when there are no obstacles.
// Ties keep the earlier obstacle.
func NearestObstacle(agent physics.Box, obstacles []physics.Box) (physics.Box, int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, o := range obstacles {
		if d := math.Abs(physics.HorizontalDistance(agent, o)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return physics.Box{}, -1, false
	}
	return obstacles[best], best, true
}
