package mcts

// TreePolicyResult is what one descent of the tree policy produces: the
// path of (node, action) edges taken from the root, the leaf reached, and
// whether that leaf was just allocated.
type TreePolicyResult struct {
	// Path holds the edges taken from root to leaf, in order.
	Path []ParentRef
	// Leaf is the node where a rollout should start (often newly created).
	Leaf NodeId
	// LeafIsNew reports whether Leaf was just allocated by this descent.
	LeafIsNew bool
	// Reward is the sum of step rewards accumulated along Path.
	Reward float64
}

// Tree owns the append-only node arena for one search. Index 0 is always
// the root.
type Tree struct {
	nodes arena[Node]
}

// NewTree creates a tree with a single root node for the given state
// fingerprint and terminal flag.
func NewTree(rootStateKey StateKey, rootIsTerminal bool) *Tree {
	t := &Tree{}
	t.nodes.allocate(*newNode(rootStateKey, 0, nil, rootIsTerminal))
	return t
}

// RootId returns the root node's id, always 0.
func (t *Tree) RootId() NodeId { return 0 }

// NodeCount returns how many nodes exist in the tree's arena.
func (t *Tree) NodeCount() int { return t.nodes.len() }

// Node returns a handle to the node at id. It points into the tree's own
// storage, so edge updates made through it (e.g. ActionEdge.Record) change
// the tree.
func (t *Tree) Node(id NodeId) (*Node, error) {
	n := t.nodes.get(id)
	if n == nil {
		return nil, &ErrMissingNode{NodeId: id}
	}
	return n, nil
}

// nodeMut returns a mutable handle to the node at id.
func (t *Tree) nodeMut(id NodeId) (*Node, error) {
	n := t.nodes.get(id)
	if n == nil {
		return nil, &ErrMissingNode{NodeId: id}
	}
	return n, nil
}

// BestRootActionByVisits picks the root edge with the most visits,
// breaking ties by smallest action index. Returns (0, false) if the root
// has no edges (never expanded).
func (t *Tree) BestRootActionByVisits() (ActionId, bool, error) {
	root, err := t.Node(t.RootId())
	if err != nil {
		return 0, false, err
	}
	best := -1
	var bestVisits uint64
	for i := range root.edges {
		v := root.edges[i].Visits()
		if best == -1 || v > bestVisits {
			best = i
			bestVisits = v
		}
	}
	if best == -1 {
		return 0, false, nil
	}
	return root.edges[best].Action(), true, nil
}

// BestRootActionByValue picks the root edge with the highest Q, breaking
// ties by smallest action index. Returns (0, false) if the root has no
// edges (never expanded).
func (t *Tree) BestRootActionByValue() (ActionId, bool, error) {
	root, err := t.Node(t.RootId())
	if err != nil {
		return 0, false, err
	}
	best := -1
	bestQ := 0.0
	for i := range root.edges {
		q := root.edges[i].Q()
		if best == -1 || q > bestQ {
			best = i
			bestQ = q
		}
	}
	if best == -1 {
		return 0, false, nil
	}
	return root.edges[best].Action(), true, nil
}

// treePolicy descends the tree from the root, expanding on demand and
// resolving chance outcomes, accumulating the reward seen along the way.
//
// Edge cases: a terminal root yields an empty path and leaf == root; a
// mid-descent node with zero actions is an expected sink and is returned as
// the leaf; a step that routes back to an already-observed next state
// descends into the existing child rather than allocating a new one (the
// caller's step function is responsible for eventually making progress --
// the tree policy itself has no descent step bound, unlike rollout).
func (t *Tree) treePolicy(c float64, numActions NumActionsFunc, step StepFunc) (TreePolicyResult, error) {
	current := t.RootId()
	var path []ParentRef
	var reward float64

	for {
		node, err := t.Node(current)
		if err != nil {
			return TreePolicyResult{}, err
		}
		stateKey, depth, isTerminal := node.StateKey(), node.Depth(), node.IsTerminal()

		if isTerminal {
			return TreePolicyResult{Path: path, Leaf: current, LeafIsNew: false, Reward: reward}, nil
		}

		if !node.IsExpanded() {
			n, err := numActions(stateKey)
			if err != nil {
				return TreePolicyResult{}, err
			}
			if n == 0 {
				return TreePolicyResult{Path: path, Leaf: current, LeafIsNew: false, Reward: reward}, nil
			}
			mutNode, err := t.nodeMut(current)
			if err != nil {
				return TreePolicyResult{}, err
			}
			mutNode.expand(n)
		}

		node, err = t.Node(current)
		if err != nil {
			return TreePolicyResult{}, err
		}
		action, ok := node.selectEdge(c)
		if !ok {
			return TreePolicyResult{}, &ErrActionSelectionFailed{NodeId: current}
		}
		path = append(path, ParentRef{Node: current, Action: action})

		nextKey, r, nextTerminal, err := step(stateKey, action)
		if err != nil {
			return TreePolicyResult{}, err
		}
		reward += r

		mutNode, err := t.nodeMut(current)
		if err != nil {
			return TreePolicyResult{}, err
		}
		edge := mutNode.Edge(action)
		if edge == nil {
			return TreePolicyResult{}, &ErrMissingEdge{NodeId: current, ActionId: action}
		}

		if child, ok := edge.IncrementOutcome(nextKey); ok {
			current = child
			continue
		}

		childId := t.nodes.allocate(*newNode(nextKey, depth+1, &ParentRef{Node: current, Action: action}, nextTerminal))

		mutNode, err = t.nodeMut(current)
		if err != nil {
			return TreePolicyResult{}, err
		}
		edge = mutNode.Edge(action)
		if edge == nil {
			return TreePolicyResult{}, &ErrMissingEdge{NodeId: current, ActionId: action}
		}
		if !edge.InsertOutcome(nextKey, childId) {
			return TreePolicyResult{}, &ErrOutcomeInsertFailed{NodeId: current, ActionId: action}
		}

		return TreePolicyResult{Path: path, Leaf: childId, LeafIsNew: true, Reward: reward}, nil
	}
}

// backpropagate applies totalReturn to every edge on path, in order. Only
// edges on the descent path are updated; node-level visit counts are
// derived on demand (by summing sibling edge visits) rather than
// materialized.
func (t *Tree) backpropagate(path []ParentRef, totalReturn float64) error {
	for _, ref := range path {
		node, err := t.nodeMut(ref.Node)
		if err != nil {
			return err
		}
		edge := node.Edge(ref.Action)
		if edge == nil {
			return &ErrMissingEdge{NodeId: ref.Node, ActionId: ref.Action}
		}
		edge.Record(totalReturn)
	}
	return nil
}
