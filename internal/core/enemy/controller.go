package enemy

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/evader/internal/core/events/bus"
	"github.com/zeusync/evader/internal/core/npc"
	"github.com/zeusync/evader/internal/core/observability/log"
	"github.com/zeusync/evader/internal/core/systems/physics"
)

// Events published when a bus is configured.
const (
	EventHit       = "enemy.hit"
	EventRecovered = "enemy.recovered"
	EventBranch    = "enemy.branch"
)

// BranchChange is the payload of EventBranch.
type BranchChange struct {
	Tick     uint64
	From, To string
	Action   string
}

// Controller owns one agent: its state, its decision tree and its decision
// history. It is driven by a single game loop and is not safe for concurrent use.
type Controller struct {
	id      string
	state   State
	tree    *npc.Tree[*Situation]
	history *npc.History
	clock   func() time.Time
	logger  log.Log
	events  bus.EventBus

	tick uint64
	last npc.Decision
}

type options struct {
	id          string
	clock       func() time.Time
	logger      log.Log
	events      bus.EventBus
	policy      *npc.Config
	registry    *npc.Registry[*Situation]
	historySize int
}

type Option func(*options)

// WithClock replaces time.Now, e.g. with a simulated clock.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

func WithLogger(l log.Log) Option {
	return func(o *options) { o.logger = l }
}

// WithEventBus publishes hit, recovery and branch-change events to eb.
func WithEventBus(eb bus.EventBus) Option {
	return func(o *options) { o.events = eb }
}

// WithPolicy replaces the default policy tree.
func WithPolicy(cfg *npc.Config) Option {
	return func(o *options) { o.policy = cfg }
}

// WithRegistry resolves policy leaves in r instead of NewRegistry().
func WithRegistry(r *npc.Registry[*Situation]) Option {
	return func(o *options) { o.registry = r }
}

func WithHistorySize(n int) Option {
	return func(o *options) { o.historySize = n }
}

func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// New validates cfg and builds the agent with its decision tree. The tree is
// fixed from here on.
func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{
		id:          cfg.ID,
		clock:       time.Now,
		historySize: cfg.HistorySize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Provide()
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.policy == nil {
		p, err := DefaultPolicy()
		if err != nil {
			return nil, fmt.Errorf("load default policy: %w", err)
		}
		o.policy = p
	}
	tree, err := npc.Build(o.policy, o.registry)
	if err != nil {
		return nil, fmt.Errorf("build policy %q: %w", o.policy.Name, err)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	c := &Controller{
		id:      o.id,
		state:   newState(cfg),
		tree:    tree,
		history: npc.NewHistory(o.historySize),
		clock:   o.clock,
		logger:  o.logger.With(log.String("agent_id", o.id)),
		events:  o.events,
		last:    npc.Decision{Branch: -1},
	}
	c.logger.Debug("enemy created",
		log.String("policy", tree.Name()),
		log.Uint64("fingerprint", tree.Fingerprint()),
		log.Float64("x", c.state.Box.CenterX()),
		log.Float64("y", c.state.Box.CenterY()),
	)
	return c, nil
}

// Advance runs one tick against the given snapshot. The slices are only
// read. The hit flag set by MarkHit is consumed here.
func (c *Controller) Advance(projectiles, obstacles []physics.Box) {
	c.tick++
	s := &Situation{
		Projectiles: projectiles,
		Obstacles:   obstacles,
		Agent:       &c.state,
		clock:       c.clock,
		notify:      c.onTransition,
	}

	if c.state.Hit {
		HitRecently(s)
		c.state.Hit = false
	}

	d := c.tree.Tick(s)
	if d.Branch != c.last.Branch {
		c.onBranchChange(c.last, d)
	}
	c.last = d
	c.history.Append(npc.DecisionRecord{Tick: c.tick, Timestamp: c.clock(), Decision: d})
}

// MarkHit tells the agent it was struck since the last Advance.
func (c *Controller) MarkHit() { c.state.Hit = true }

func (c *Controller) Position() (x, y float64) {
	return c.state.Box.CenterX(), c.state.Box.CenterY()
}

func (c *Controller) Bounds() physics.Box { return c.state.Box }

// State returns a copy of the agent state.
func (c *Controller) State() State { return c.state }

func (c *Controller) ID() string                    { return c.id }
func (c *Controller) Ticks() uint64                 { return c.tick }
func (c *Controller) Tree() *npc.Tree[*Situation]   { return c.tree }
func (c *Controller) LastDecision() npc.Decision    { return c.last }
func (c *Controller) History() []npc.DecisionRecord { return c.history.Records() }
func (c *Controller) Fingerprint() uint64           { return c.tree.Fingerprint() }
func (c *Controller) Logger() log.Log               { return c.logger }

// LastRecord returns the newest history record, false before the first tick.
func (c *Controller) LastRecord() (npc.DecisionRecord, bool) { return c.history.Last() }

func (c *Controller) onTransition(t Transition) {
	st := c.state
	switch t {
	case TransitionHit:
		c.logger.Info("enemy hit, backing off",
			log.Uint64("tick", c.tick),
			log.Duration("backoff", st.Backoff),
		)
		c.publish(EventHit, st.LastHit)
	case TransitionRecovered:
		c.logger.Info("enemy recovered",
			log.Uint64("tick", c.tick),
			log.Duration("since_hit", c.clock().Sub(st.LastHit)),
		)
		c.publish(EventRecovered, st.LastHit)
	}
}

func (c *Controller) onBranchChange(from, to npc.Decision) {
	c.logger.Debug("branch changed",
		log.Uint64("tick", c.tick),
		log.String("from", from.BranchName),
		log.String("to", to.BranchName),
		log.String("action", to.Action),
	)
	c.publish(EventBranch, BranchChange{Tick: c.tick, From: from.BranchName, To: to.BranchName, Action: to.Action})
}

func (c *Controller) publish(typ string, data any) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(bus.NewEvent(typ, c.id, c.clock(), data)); err != nil {
		c.logger.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}
