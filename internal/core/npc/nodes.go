package npc

// Node is a behavior tree node evaluated against a context of type C.
//
// Nodes are immutable once built. Leaves receive the context explicitly, so
// any state they read or write lives in C rather than in the node.
type Node[C any] struct {
	kind     Kind
	name     string
	act      func(C)
	cond     func(C) bool
	children []*Node[C]
}

// Action wraps a side-effecting operation. Actions always succeed.
func Action[C any](name string, fn func(C)) *Node[C] {
	if fn == nil {
		panic("npc: nil action " + name)
	}
	return &Node[C]{kind: KindAction, name: name, act: fn}
}

// Condition wraps a predicate. A condition may record a side effect on the
// context when queried; such conditions must say so in their documentation.
func Condition[C any](name string, fn func(C) bool) *Node[C] {
	if fn == nil {
		panic("npc: nil condition " + name)
	}
	return &Node[C]{kind: KindCondition, name: name, cond: fn}
}

// Sequence succeeds iff every child succeeds, evaluated left to right and
// stopping at the first failure. An empty sequence succeeds.
func Sequence[C any](name string, children ...*Node[C]) *Node[C] {
	return &Node[C]{kind: KindSequence, name: name, children: compact(name, children)}
}

// Selector succeeds iff any child succeeds, evaluated left to right and
// stopping at the first success. An empty selector fails.
func Selector[C any](name string, children ...*Node[C]) *Node[C] {
	return &Node[C]{kind: KindSelector, name: name, children: compact(name, children)}
}

func compact[C any](name string, children []*Node[C]) []*Node[C] {
	out := make([]*Node[C], len(children))
	for i, ch := range children {
		if ch == nil {
			panic("npc: nil child in " + name)
		}
		out[i] = ch
	}
	return out
}

func (n *Node[C]) Kind() Kind   { return n.kind }
func (n *Node[C]) Name() string { return n.name }

// Children returns a copy of the child list; nil for leaves.
func (n *Node[C]) Children() []*Node[C] {
	if n.kind.IsLeaf() {
		return nil
	}
	cp := make([]*Node[C], len(n.children))
	copy(cp, n.children)
	return cp
}

// Evaluate runs the node against ctx and reports success.
func (n *Node[C]) Evaluate(ctx C) bool { return n.evaluate(ctx, nil, 0, 0) }

// Observe is Evaluate with every evaluated node reported to obs.
func (n *Node[C]) Observe(ctx C, obs Observer[C]) bool { return n.evaluate(ctx, obs, 0, 0) }

func (n *Node[C]) evaluate(ctx C, obs Observer[C], depth, index int) bool {
	var ok bool
	switch n.kind {
	case KindAction:
		n.act(ctx)
		ok = true
	case KindCondition:
		ok = n.cond(ctx)
	case KindSequence:
		ok = true
		for i, ch := range n.children {
			if !ch.evaluate(ctx, obs, depth+1, i) {
				ok = false
				break
			}
		}
	case KindSelector:
		for i, ch := range n.children {
			if ch.evaluate(ctx, obs, depth+1, i) {
				ok = true
				break
			}
		}
	}
	if obs != nil {
		obs(Step[C]{Node: n, Depth: depth, Index: index, Result: ok})
	}
	return ok
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node. Shared subtrees are visited once
// per reference.
func (n *Node[C]) Walk(fn func(node *Node[C], depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node[C]) walk(fn func(*Node[C], int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, ch := range n.children {
		ch.walk(fn, depth+1)
	}
}
