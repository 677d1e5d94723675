package npc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	calls map[string]int
}

func newCounter() *counter { return &counter{calls: make(map[string]int)} }

func (c *counter) action(name string) *Node[*counter] {
	return Action(name, func(ctx *counter) { ctx.calls[name]++ })
}

func (c *counter) cond(name string, result bool) *Node[*counter] {
	return Condition(name, func(ctx *counter) bool {
		ctx.calls[name]++
		return result
	})
}

func TestSequenceShortCircuits(t *testing.T) {
	c := newCounter()
	seq := Sequence("seq", c.cond("no", false), c.action("act"))

	assert.False(t, seq.Evaluate(c))
	assert.Equal(t, 1, c.calls["no"])
	assert.Zero(t, c.calls["act"], "action after a failing condition must not run")
}

func TestSelectorShortCircuits(t *testing.T) {
	c := newCounter()
	sel := Selector("sel", c.cond("yes", true), c.action("act"))

	assert.True(t, sel.Evaluate(c))
	assert.Zero(t, c.calls["act"], "action after a succeeding condition must not run")
}

func TestSequenceRunsAllOnSuccess(t *testing.T) {
	c := newCounter()
	seq := Sequence("seq", c.cond("a", true), c.action("b"), c.cond("c", true))

	assert.True(t, seq.Evaluate(c))
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, c.calls)
}

func TestSelectorFailsWhenAllFail(t *testing.T) {
	c := newCounter()
	sel := Selector("sel", c.cond("a", false), c.cond("b", false))

	assert.False(t, sel.Evaluate(c))
	assert.Equal(t, 1, c.calls["a"])
	assert.Equal(t, 1, c.calls["b"])
}

func TestEmptyComposites(t *testing.T) {
	c := newCounter()
	assert.True(t, Sequence[*counter]("empty-seq").Evaluate(c))
	assert.False(t, Selector[*counter]("empty-sel").Evaluate(c))
}

func TestActionAlwaysSucceeds(t *testing.T) {
	c := newCounter()
	assert.True(t, c.action("act").Evaluate(c))
	assert.Equal(t, 1, c.calls["act"])
}

func TestNilLeafPanics(t *testing.T) {
	assert.Panics(t, func() { Action[int]("a", nil) })
	assert.Panics(t, func() { Condition[int]("c", nil) })
	assert.Panics(t, func() { Sequence[int]("s", nil) })
}

func TestChildrenIsACopy(t *testing.T) {
	c := newCounter()
	leaf := c.action("a")
	seq := Sequence("seq", leaf)

	kids := seq.Children()
	require.Len(t, kids, 1)
	kids[0] = c.action("b")

	assert.Same(t, leaf, seq.Children()[0])
	assert.Nil(t, leaf.Children())
	assert.Equal(t, KindSequence, seq.Kind())
	assert.Equal(t, "Sequence", seq.Kind().String())
}

func TestObserveReportsCompletionOrder(t *testing.T) {
	c := newCounter()
	root := Selector("root",
		Sequence("first", c.cond("gate", false), c.action("never")),
		Sequence("second", c.cond("open", true), c.action("go")),
	)

	var order []string
	ok := root.Observe(c, func(s Step[*counter]) { order = append(order, s.Node.Name()) })

	assert.True(t, ok)
	assert.Equal(t, []string{"gate", "first", "open", "go", "second", "root"}, order)
}

func TestTreeTickReportsDecidingBranch(t *testing.T) {
	c := newCounter()
	tree := NewTree("policy", Selector("root",
		Sequence("first", c.cond("gate", false), c.action("never")),
		Sequence("second", c.cond("open", true), c.action("go")),
		c.action("fallback"),
	))

	d := tree.Tick(c)

	assert.Equal(t, Decision{Result: true, Branch: 1, BranchName: "second", Action: "go"}, d)
	assert.Zero(t, c.calls["fallback"])
}

func TestTreeTickLeafRoot(t *testing.T) {
	c := newCounter()
	tree := NewTree("leaf", c.cond("only", false))

	d := tree.Tick(c)

	assert.Equal(t, Decision{Result: false, Branch: -1}, d)
}

func TestFingerprintIsStructural(t *testing.T) {
	build := func(name string) *Tree[*counter] {
		c := newCounter()
		return NewTree("t", Selector("root", c.cond("a", true), c.action(name)))
	}

	a, b, other := build("x"), build("x"), build("y")
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), other.Fingerprint())

	before := a.Fingerprint()
	for i := 0; i < 10; i++ {
		a.Tick(newCounter())
	}
	assert.Equal(t, before, fingerprint(a.Root()))
}

func TestWalkSkipsChildren(t *testing.T) {
	c := newCounter()
	root := Selector("root", Sequence("inner", c.action("hidden")), c.action("leaf"))

	var seen []string
	root.Walk(func(n *Node[*counter], depth int) bool {
		seen = append(seen, n.Name())
		return n.Name() != "inner"
	})

	assert.Equal(t, []string{"root", "inner", "leaf"}, seen)
}
