package npc

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes a tree as a flat map of named nodes so that subtrees can be
// referenced from several parents. Leaves are resolved through a Registry.
type Config struct {
	Name  string                `json:"name" yaml:"name"`
	Root  string                `json:"root" yaml:"root"`
	Nodes map[string]ConfigNode `json:"nodes" yaml:"nodes"`
}

// ConfigNode describes one node. For leaves, Action or Condition names the
// registered function; when empty the node's own name is used.
type ConfigNode struct {
	Type      string   `json:"type" yaml:"type"`
	Children  []string `json:"children,omitempty" yaml:"children,omitempty"`
	Action    string   `json:"action,omitempty" yaml:"action,omitempty"`
	Condition string   `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// LoadJSON loads config from JSON reader. Unknown fields are rejected.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML loads config from YAML reader. Unknown fields are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the config shape without resolving leaves.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrEmptyRoot
	}
	if _, ok := c.Nodes[c.Root]; !ok {
		return fmt.Errorf("%w: root %s", ErrUnknownNode, c.Root)
	}
	for name, n := range c.Nodes {
		switch strings.ToLower(n.Type) {
		case "action", "condition":
			if len(n.Children) > 0 {
				return fmt.Errorf("node %s: leaf with children", name)
			}
		case "sequence", "selector":
		default:
			return fmt.Errorf("%w: %q in node %s", ErrUnsupportedType, n.Type, name)
		}
	}
	return nil
}

// Build constructs a tree from cfg, resolving leaves in reg. Nodes referenced
// more than once are built once and shared.
func Build[C any](cfg *Config, reg *Registry[C]) (*Tree[C], error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := builder[C]{
		cfg:      cfg,
		reg:      reg,
		created:  make(map[string]*Node[C], len(cfg.Nodes)),
		visiting: make(map[string]bool),
	}
	root, err := b.node(cfg.Root)
	if err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Root
	}
	return NewTree(name, root), nil
}

type builder[C any] struct {
	cfg      *Config
	reg      *Registry[C]
	created  map[string]*Node[C]
	visiting map[string]bool
}

func (b *builder[C]) node(name string) (*Node[C], error) {
	if n, ok := b.created[name]; ok {
		return n, nil
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("%w: %s", ErrCycle, name)
	}
	nc, ok := b.cfg.Nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	var n *Node[C]
	switch typ := strings.ToLower(nc.Type); typ {
	case "sequence", "selector":
		children := make([]*Node[C], 0, len(nc.Children))
		for _, chname := range nc.Children {
			ch, err := b.node(chname)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", name, err)
			}
			children = append(children, ch)
		}
		if typ == "sequence" {
			n = Sequence(name, children...)
		} else {
			n = Selector(name, children...)
		}
	case "action":
		key := nc.Action
		if key == "" {
			key = name
		}
		fn, ok := b.reg.Action(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAction, key)
		}
		n = Action(name, fn)
	case "condition":
		key := nc.Condition
		if key == "" {
			key = name
		}
		fn, ok := b.reg.Condition(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCondition, key)
		}
		n = Condition(name, fn)
	default:
		return nil, fmt.Errorf("%w: %q in node %s", ErrUnsupportedType, nc.Type, name)
	}
	b.created[name] = n
	return n, nil
}
