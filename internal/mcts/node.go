package mcts

// ExpansionState tracks whether a Node's action edges have been populated
// yet. Expanding is reserved for a future parallel-expansion phase (a node
// being expanded concurrently by another worker); this single-threaded
// engine only ever performs Unexpanded -> Expanded transitions.
type ExpansionState int

const (
	Unexpanded ExpansionState = iota
	Expanding
	Expanded
)

func (s ExpansionState) String() string {
	switch s {
	case Unexpanded:
		return "Unexpanded"
	case Expanding:
		return "Expanding"
	case Expanded:
		return "Expanded"
	default:
		return "Unknown"
	}
}

// ParentRef is a non-owning back-reference from a Node to the (parent node,
// action) pair that led to it.
type ParentRef struct {
	Node   NodeId
	Action ActionId
}

// Node is one decision state in the search tree: a state fingerprint, its
// depth from the root, a back-edge to its parent (nil for the root), its
// action edges once expanded, and terminal/expansion flags.
type Node struct {
	stateKey       StateKey
	depth          uint64
	parent         *ParentRef
	edges          []ActionEdge
	isTerminal     bool
	expansionState ExpansionState
}

// newNode constructs a fresh, unexpanded node for state fingerprint
// stateKey at the given depth, with the given parent back-reference (nil
// for the root) and terminal flag.
func newNode(stateKey StateKey, depth uint64, parent *ParentRef, isTerminal bool) *Node {
	return &Node{
		stateKey:       stateKey,
		depth:          depth,
		parent:         parent,
		isTerminal:     isTerminal,
		expansionState: Unexpanded,
	}
}

// StateKey returns the fingerprint of the state this node represents.
func (n *Node) StateKey() StateKey { return n.stateKey }

// Depth returns the number of edges from the root to this node.
func (n *Node) Depth() uint64 { return n.depth }

// Parent returns the (node, action) pair that led to this node, or nil for
// the root.
func (n *Node) Parent() *ParentRef { return n.parent }

// IsTerminal reports whether this state has no further actions by domain
// definition (as opposed to a zero-action sink discovered lazily).
func (n *Node) IsTerminal() bool { return n.isTerminal }

// ExpansionState returns the node's current expansion tri-state.
func (n *Node) ExpansionState() ExpansionState { return n.expansionState }

// IsExpanded reports whether this node's action edges have been populated.
func (n *Node) IsExpanded() bool { return n.expansionState == Expanded }

// Edges returns the node's action edges in action-id order. Empty unless
// the node is Expanded.
func (n *Node) Edges() []ActionEdge { return n.edges }

// Edge returns the edge for the given action, or nil if out of range.
func (n *Node) Edge(action ActionId) *ActionEdge {
	idx := action.Index()
	if idx < 0 || idx >= len(n.edges) {
		return nil
	}
	return &n.edges[idx]
}

// expand populates numActions fresh edges with action ids 0..numActions, if
// not already Expanded. It is idempotent and must never be called on a
// terminal node.
func (n *Node) expand(numActions int) {
	if n.expansionState == Expanded {
		return
	}
	n.edges = make([]ActionEdge, numActions)
	for i := range n.edges {
		n.edges[i].action = ActionId(i)
	}
	n.expansionState = Expanded
}

// selectEdge picks the edge maximizing UCB score, breaking ties by smallest
// action index. Returns (0, false) if the node has no edges.
func (n *Node) selectEdge(c float64) (ActionId, bool) {
	if len(n.edges) == 0 {
		return 0, false
	}
	var nParent uint64
	for i := range n.edges {
		nParent += n.edges[i].Visits()
	}
	if nParent < 1 {
		nParent = 1
	}

	best := -1
	bestScore := 0.0
	for i := range n.edges {
		score := n.edges[i].ucb(nParent, c)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	return n.edges[best].Action(), true
}
