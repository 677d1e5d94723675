package enemy

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidSpeed    = errors.New("enemy: speed must be positive and finite")
	ErrInvalidSize     = errors.New("enemy: size must be positive and finite")
	ErrInvalidBackoff  = errors.New("enemy: backoff must not be negative")
	ErrInvalidPosition = errors.New("enemy: position must be finite")
)

// Point is a configuration-friendly 2D point.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Orb() orb.Point { return orb.Point{p.X, p.Y} }

func (p Point) finite() bool { return finite(p.X) && finite(p.Y) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// positive rejects NaN and infinities along with non-positive values.
func positive(v float64) bool { return finite(v) && v > 0 }

type Size struct {
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Config describes one agent. Start defaults to Home.
type Config struct {
	ID          string        `json:"id,omitempty" yaml:"id,omitempty"`
	Size        Size          `json:"size" yaml:"size"`
	Home        Point         `json:"home" yaml:"home"`
	Start       *Point        `json:"start,omitempty" yaml:"start,omitempty"`
	Speed       float64       `json:"speed" yaml:"speed"`
	Backoff     time.Duration `json:"backoff" yaml:"backoff"`
	HistorySize int           `json:"history_size,omitempty" yaml:"history_size,omitempty"`
}

// DefaultConfig matches the stock enemy: parked at (400, 100), two pixels per
// tick, one second of backoff after a hit.
func DefaultConfig() Config {
	return Config{
		Size:    Size{W: 50, H: 50},
		Home:    Point{X: 400, Y: 100},
		Speed:   2,
		Backoff: time.Second,
	}
}

// Validate validates the agent configuration
func (c Config) Validate() error {
	if !positive(c.Speed) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, c.Speed)
	}
	if !positive(c.Size.W) || !positive(c.Size.H) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, c.Size.W, c.Size.H)
	}
	if !c.Home.finite() {
		return fmt.Errorf("%w: home %v,%v", ErrInvalidPosition, c.Home.X, c.Home.Y)
	}
	if c.Start != nil && !c.Start.finite() {
		return fmt.Errorf("%w: start %v,%v", ErrInvalidPosition, c.Start.X, c.Start.Y)
	}
	if c.Backoff < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidBackoff, c.Backoff)
	}
	return nil
}

// LoadConfig decodes YAML over DefaultConfig and validates the result.
// Durations use Go syntax, e.g. "750ms".
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode enemy config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
