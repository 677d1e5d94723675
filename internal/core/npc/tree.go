package npc

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Tree is a named root node. The structure is fixed at construction, which
// the fingerprint captures.
type Tree[C any] struct {
	name        string
	root        *Node[C]
	fingerprint uint64
}

func NewTree[C any](name string, root *Node[C]) *Tree[C] {
	if root == nil {
		panic("npc: nil root for tree " + name)
	}
	return &Tree[C]{name: name, root: root, fingerprint: fingerprint(root)}
}

func (t *Tree[C]) Name() string        { return t.name }
func (t *Tree[C]) Root() *Node[C]      { return t.root }
func (t *Tree[C]) Fingerprint() uint64 { return t.fingerprint }

// Tick evaluates the root once and reports which branch decided the outcome.
func (t *Tree[C]) Tick(ctx C) Decision {
	d := Decision{Branch: -1}
	d.Result = t.root.Observe(ctx, func(s Step[C]) {
		if s.Depth == 1 {
			d.Branch = s.Index
			d.BranchName = s.Node.name
		}
		if s.Node.kind == KindAction {
			d.Action = s.Node.name
		}
	})
	return d
}

// fingerprint hashes kind, depth, arity and name of every node in pre-order.
func fingerprint[C any](root *Node[C]) uint64 {
	h := xxhash.New()
	var buf [9]byte
	root.Walk(func(n *Node[C], depth int) bool {
		buf[0] = byte(n.kind)
		binary.LittleEndian.PutUint32(buf[1:5], uint32(depth))
		binary.LittleEndian.PutUint32(buf[5:9], uint32(len(n.children)))
		_, _ = h.Write(buf[:])
		_, _ = h.WriteString(n.name)
		return true
	})
	return h.Sum64()
}
