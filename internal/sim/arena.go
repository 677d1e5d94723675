package sim

import (
	"context"
	"time"

	"github.com/zeusync/evader/internal/core/enemy"
	"github.com/zeusync/evader/internal/core/events/bus"
	"github.com/zeusync/evader/internal/core/observability/log"
	"github.com/zeusync/evader/internal/core/systems/physics"
)

// ArenaConfig describes a headless arena with a single enemy.
type ArenaConfig struct {
	Enemy        enemy.Config
	Walls        []physics.Box
	TickDuration time.Duration
	BulletSpeed  float64
	Start        time.Time
}

// Arena plays the role of the game loop: it moves bullets, resolves hits
// and drives the enemy controller one tick at a time.
type Arena struct {
	enemy   *enemy.Controller
	walls   []physics.Box
	bullets []Bullet
	clock   *Clock
	events  bus.EventBus
	logger  log.Log

	tickDur     time.Duration
	bulletSpeed float64

	tick       uint64
	hits       int
	recoveries int
	branches   map[string]int
}

// NewArena builds the arena and its controller. opts are passed to
// enemy.New after the arena's own clock and event bus.
func NewArena(cfg ArenaConfig, logger log.Log, opts ...enemy.Option) (*Arena, error) {
	if logger == nil {
		logger = log.Provide()
	}
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = DefaultTickDuration
	}
	if cfg.BulletSpeed <= 0 {
		cfg.BulletSpeed = DefaultBulletSpeed
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Unix(0, 0).UTC()
	}

	a := &Arena{
		walls:       cfg.Walls,
		clock:       NewClock(cfg.Start),
		events:      bus.New(),
		logger:      logger,
		tickDur:     cfg.TickDuration,
		bulletSpeed: cfg.BulletSpeed,
		branches:    make(map[string]int),
	}
	if _, err := a.events.Subscribe(enemy.EventRecovered, func(bus.Event) error {
		a.recoveries++
		return nil
	}); err != nil {
		return nil, err
	}

	base := []enemy.Option{
		enemy.WithClock(a.clock.Now),
		enemy.WithEventBus(a.events),
		enemy.WithLogger(logger),
	}
	ctrl, err := enemy.New(cfg.Enemy, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	a.enemy = ctrl
	return a, nil
}

// Fire spawns a bullet with its top-left corner at (x, y).
func (a *Arena) Fire(x, y float64) {
	a.bullets = append(a.bullets, NewBullet(x, y, a.bulletSpeed))
}

// Step advances the world by one tick. Bullets move first. A bullet that
// strikes the enemy stays visible for this tick and is removed afterwards.
// Bullets that hit a wall or leave the screen are removed right away.
func (a *Arena) Step() {
	a.tick++

	live := a.bullets[:0]
	for _, b := range a.bullets {
		b.Update()
		if b.OffScreen() || a.blocked(b.Box) {
			continue
		}
		live = append(live, b)
	}
	a.bullets = live

	body := a.enemy.Bounds()
	snapshot := make([]physics.Box, len(a.bullets))
	struck := make([]bool, len(a.bullets))
	hit := false
	for i, b := range a.bullets {
		snapshot[i] = b.Box
		if b.Box.Intersects(body) {
			struck[i], hit = true, true
		}
	}
	if hit {
		a.hits++
		a.enemy.MarkHit()
		a.logger.Debug("bullet hit enemy", log.Uint64("tick", a.tick))
	}

	a.enemy.Advance(snapshot, a.walls)
	a.branches[a.enemy.LastDecision().BranchName]++

	if hit {
		live = a.bullets[:0]
		for i, b := range a.bullets {
			if !struck[i] {
				live = append(live, b)
			}
		}
		a.bullets = live
	}
	a.clock.Advance(a.tickDur)
}

// Run steps the arena up to ticks times, stopping early when ctx is done.
func (a *Arena) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Step()
	}
	return nil
}

func (a *Arena) blocked(b physics.Box) bool {
	for _, w := range a.walls {
		if b.Intersects(w) {
			return true
		}
	}
	return false
}

func (a *Arena) Enemy() *enemy.Controller { return a.enemy }
func (a *Arena) Bullets() int             { return len(a.bullets) }
func (a *Arena) Ticks() uint64            { return a.tick }
func (a *Arena) Hits() int                { return a.hits }
func (a *Arena) Now() time.Time           { return a.clock.Now() }

// Report summarises the arena so far.
func (a *Arena) Report() Report {
	x, y := a.enemy.Position()
	branches := make(map[string]int, len(a.branches))
	for k, v := range a.branches {
		branches[k] = v
	}
	last, _ := a.enemy.LastRecord()
	return Report{
		EnemyID:     a.enemy.ID(),
		Ticks:       a.tick,
		Hits:        a.hits,
		Recoveries:  a.recoveries,
		Final:       enemy.Point{X: x, Y: y},
		Branches:    branches,
		Last:        last,
		Fingerprint: a.enemy.Fingerprint(),
	}
}
