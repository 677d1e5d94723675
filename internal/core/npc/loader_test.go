package npc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flags struct {
	ready bool
	done  int
}

func flagRegistry() *Registry[*flags] {
	r := NewRegistry[*flags]()
	r.RegisterCondition("IsReady", func(f *flags) bool { return f.ready })
	r.RegisterAction("DoWork", func(f *flags) { f.done++ })
	return r
}

func TestLoadAndRunSimpleTree(t *testing.T) {
	yamlCfg := `
name: simple
root: Root
nodes:
  Root: {type: Sequence, children: [IsReady, DoWork]}
  IsReady: {type: condition}
  DoWork: {type: action}
`
	cfg, err := LoadYAML(strings.NewReader(yamlCfg))
	require.NoError(t, err)

	tree, err := Build(cfg, flagRegistry())
	require.NoError(t, err)
	assert.Equal(t, "simple", tree.Name())

	f := &flags{}
	assert.False(t, tree.Tick(f).Result)
	assert.Zero(t, f.done)

	f.ready = true
	d := tree.Tick(f)
	assert.True(t, d.Result)
	assert.Equal(t, "DoWork", d.Action)
	assert.Equal(t, 1, f.done)
}

func TestLoadJSONWithAliasedLeaves(t *testing.T) {
	jsonCfg := `{
  "root":"Root",
  "nodes":{
    "Root":{"type":"selector","children":["gate","work"]},
    "gate":{"type":"condition","condition":"IsReady"},
    "work":{"type":"action","action":"DoWork"}
  }
}`
	cfg, err := LoadJSON(strings.NewReader(jsonCfg))
	require.NoError(t, err)

	tree, err := Build(cfg, flagRegistry())
	require.NoError(t, err)
	assert.Equal(t, "Root", tree.Name())

	f := &flags{}
	d := tree.Tick(f)
	assert.Equal(t, Decision{Result: true, Branch: 1, BranchName: "work", Action: "work"}, d)
}

func TestBuildSharesRepeatedNodes(t *testing.T) {
	cfg := &Config{
		Root: "root",
		Nodes: map[string]ConfigNode{
			"root":    {Type: "selector", Children: []string{"guard", "guard"}},
			"guard":   {Type: "sequence", Children: []string{"IsReady", "DoWork"}},
			"IsReady": {Type: "condition"},
			"DoWork":  {Type: "action"},
		},
	}
	tree, err := Build(cfg, flagRegistry())
	require.NoError(t, err)

	kids := tree.Root().Children()
	require.Len(t, kids, 2)
	assert.Same(t, kids[0], kids[1])
}

func TestBuildErrors(t *testing.T) {
	leaf := func(typ string) ConfigNode { return ConfigNode{Type: typ} }
	tests := []struct {
		name string
		cfg  *Config
		want error
	}{
		{"nil", nil, ErrNilConfig},
		{"empty root", &Config{}, ErrEmptyRoot},
		{"missing root", &Config{Root: "r", Nodes: map[string]ConfigNode{}}, ErrUnknownNode},
		{"unknown child", &Config{Root: "r", Nodes: map[string]ConfigNode{
			"r": {Type: "sequence", Children: []string{"ghost"}},
		}}, ErrUnknownNode},
		{"unknown action", &Config{Root: "r", Nodes: map[string]ConfigNode{"r": leaf("action")}}, ErrUnknownAction},
		{"unknown condition", &Config{Root: "r", Nodes: map[string]ConfigNode{"r": leaf("condition")}}, ErrUnknownCondition},
		{"bad type", &Config{Root: "r", Nodes: map[string]ConfigNode{"r": leaf("parallel")}}, ErrUnsupportedType},
		{"cycle", &Config{Root: "a", Nodes: map[string]ConfigNode{
			"a": {Type: "sequence", Children: []string{"b"}},
			"b": {Type: "selector", Children: []string{"a"}},
		}}, ErrCycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.cfg, flagRegistry())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateRejectsLeafWithChildren(t *testing.T) {
	cfg := &Config{Root: "r", Nodes: map[string]ConfigNode{
		"r": {Type: "action", Children: []string{"x"}},
	}}
	assert.Error(t, cfg.Validate())
}

func TestRegistryNames(t *testing.T) {
	r := flagRegistry()
	r.RegisterCondition("Always", func(*flags) bool { return true })

	assert.Equal(t, []string{"DoWork"}, r.Actions())
	assert.Equal(t, []string{"Always", "IsReady"}, r.Conditions())

	_, ok := r.Action("missing")
	assert.False(t, ok)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	yamlCfg := `
root: Root
nodes:
  Root: {type: selector, childs: [IsReady, DoWork]}
  IsReady: {type: condition}
  DoWork: {type: action}
`
	_, err := LoadYAML(strings.NewReader(yamlCfg))
	assert.ErrorContains(t, err, "childs")

	_, err = LoadJSON(strings.NewReader(`{"root":"Root","nodes":{"Root":{"type":"action","acton":"DoWork"}}}`))
	assert.ErrorContains(t, err, "acton")
}
