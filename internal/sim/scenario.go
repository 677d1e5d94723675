package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/evader/internal/core/enemy"
	"github.com/zeusync/evader/internal/core/npc"
	"github.com/zeusync/evader/internal/core/observability/log"
	"github.com/zeusync/evader/internal/core/systems/physics"
	"github.com/zeusync/evader/pkg/sequence"
)

var (
	ErrInvalidTicks     = errors.New("sim: ticks must be positive")
	ErrInvalidTickDelta = errors.New("sim: tick duration must be positive")
)

// Wall is an obstacle given by its edges in screen coordinates.
type Wall struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

func (w Wall) Box() physics.Box { return physics.BoxFromEdges(w.Left, w.Top, w.Right, w.Bottom) }

// Shot fires one bullet before the given tick (1-based) is stepped.
type Shot struct {
	Tick uint64  `yaml:"tick"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Scenario is a scripted arena run loaded from YAML:
//
//	name: ambush
//	ticks: 240
//	tick_duration: 16ms
//	enemy: {home: {x: 400, y: 100}, speed: 2, backoff: 1s}
//	walls: [{left: 300, top: 200, right: 500, bottom: 220}]
//	shots: [{tick: 1, x: 395, y: 130}]
type Scenario struct {
	Name         string        `yaml:"name"`
	Ticks        int           `yaml:"ticks"`
	TickDuration time.Duration `yaml:"tick_duration"`
	BulletSpeed  float64       `yaml:"bullet_speed"`
	Enemy        enemy.Config  `yaml:"enemy"`
	Walls        []Wall        `yaml:"walls"`
	Shots        []Shot        `yaml:"shots"`
}

// LoadScenario decodes a scenario over the defaults and validates it.
func LoadScenario(r io.Reader) (*Scenario, error) {
	sc := &Scenario{
		Ticks:        600,
		TickDuration: DefaultTickDuration,
		BulletSpeed:  DefaultBulletSpeed,
		Enemy:        enemy.DefaultConfig(),
	}
	if err := yaml.NewDecoder(r).Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// LoadScenarioFile loads a scenario from path. The file name is used when
// the scenario has no name.
func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := LoadScenario(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

func (s *Scenario) Validate() error {
	if s.Ticks <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTicks, s.Ticks)
	}
	if s.TickDuration <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTickDelta, s.TickDuration)
	}
	if err := s.Enemy.Validate(); err != nil {
		return fmt.Errorf("enemy: %w", err)
	}
	return nil
}

// Run plays the scenario to completion or until ctx is done. The report is
// returned in both cases.
func (s *Scenario) Run(ctx context.Context, logger log.Log, opts ...enemy.Option) (Report, error) {
	if logger == nil {
		logger = log.Provide()
	}
	logger = logger.With(log.String("scenario", s.Name))

	walls := make([]physics.Box, len(s.Walls))
	for i, w := range s.Walls {
		walls[i] = w.Box()
	}
	arena, err := NewArena(ArenaConfig{
		Enemy:        s.Enemy,
		Walls:        walls,
		TickDuration: s.TickDuration,
		BulletSpeed:  s.BulletSpeed,
	}, logger, opts...)
	if err != nil {
		return Report{}, err
	}

	shots := sequence.NewPriorityQueue[Shot]()
	for _, shot := range s.Shots {
		shots.Enqueue(shot, int64(shot.Tick))
	}

	for i := 0; i < s.Ticks; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		for _, shot := range shots.PopUntil(int64(arena.Ticks() + 1)) {
			arena.Fire(shot.X, shot.Y)
		}
		arena.Step()
	}

	r := arena.Report()
	r.Scenario = s.Name
	return r, err
}

// Report is the outcome of an arena run. Last is the final decision and is
// zero when no tick ran.
type Report struct {
	Scenario    string             `json:"scenario,omitempty"`
	EnemyID     string             `json:"enemy_id"`
	Ticks       uint64             `json:"ticks"`
	Hits        int                `json:"hits"`
	Recoveries  int                `json:"recoveries"`
	Final       enemy.Point        `json:"final"`
	Branches    map[string]int     `json:"branches"`
	Fingerprint uint64             `json:"fingerprint"`
	Last        npc.DecisionRecord `json:"last"`
}

// Fields renders the report as structured log fields.
func (r Report) Fields() []log.Field {
	fields := []log.Field{
		log.String("scenario", r.Scenario),
		log.String("enemy_id", r.EnemyID),
		log.Uint64("ticks", r.Ticks),
		log.Int("hits", r.Hits),
		log.Int("recoveries", r.Recoveries),
		log.Float64("final_x", r.Final.X),
		log.Float64("final_y", r.Final.Y),
		log.Uint64("fingerprint", r.Fingerprint),
		log.String("last_branch", r.Last.BranchName),
		log.Time("last_decision_at", r.Last.Timestamp),
	}
	names := make([]string, 0, len(r.Branches))
	for name := range r.Branches {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fields = append(fields, log.Int("branch."+name, r.Branches[name]))
	}
	return fields
}
