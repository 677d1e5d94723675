package npc

import "time"

// Kind identifies which of the four node variants a Node is.
// The set is closed: every dispatch in this package switches over all four.
type Kind uint8

const (
	KindAction Kind = iota
	KindCondition
	KindSequence
	KindSelector
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "Action"
	case KindCondition:
		return "Condition"
	case KindSequence:
		return "Sequence"
	case KindSelector:
		return "Selector"
	default:
		return "Invalid"
	}
}

// IsLeaf reports whether nodes of this kind have no children.
func (k Kind) IsLeaf() bool { return k == KindAction || k == KindCondition }

// Step describes one evaluated node. Observers receive steps in completion
// order, so a composite is reported after the children it evaluated.
type Step[C any] struct {
	Node *Node[C]
	// Depth is 0 for the node evaluation started from.
	Depth int
	// Index is the position among the parent's children, 0 for the start node.
	Index  int
	Result bool
}

// Observer is notified about every node evaluated during a tick.
type Observer[C any] func(s Step[C])

// Decision summarizes one tree tick.
type Decision struct {
	Result bool `json:"result"`
	// Branch is the index of the last direct child of the root that was
	// evaluated, i.e. the child that decided the outcome. -1 when the root is a leaf.
	Branch     int    `json:"branch"`
	BranchName string `json:"branch_name,omitempty"`
	// Action is the name of the last action node executed, empty if none ran.
	Action string `json:"action,omitempty"`
}

// DecisionRecord is kept by History for debugging and reporting.
type DecisionRecord struct {
	Tick      uint64    `json:"tick"`
	Timestamp time.Time `json:"ts"`
	Decision
}
