package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// chainNumActions and chainStep model a linear deterministic chain:
// 0 -> 1 -> 2(terminal), used by TestDeterministicChain.
func chainNumActions(s StateKey) (int, error) {
	switch s {
	case 0, 1:
		return 1, nil
	default:
		return 0, nil
	}
}

func chainStep(s StateKey, a ActionId) (StateKey, float64, bool, error) {
	switch s {
	case 0:
		return 1, 1.0, false, nil
	case 1:
		return 2, 2.0, true, nil
	}
	return s, 0, true, nil
}

func firstActionPolicy(state StateKey, n int) (ActionId, error) {
	return 0, nil
}

func TestDeterministicChain(t *testing.T) {
	tree := NewTree(0, false)
	cb := Callbacks{NumActions: chainNumActions, Step: chainStep, RolloutPolicy: firstActionPolicy}
	config := SearchConfig{Iterations: 2, C: 1.4, Gamma: 1.0, MaxSteps: 8, ReturnType: Discounted}

	metrics, err := tree.Run(config, cb)
	require.NoError(t, err)
	require.Equal(t, 2, metrics.Completed)
	require.Equal(t, 3, tree.NodeCount())
}

// stochasticNumActions and newStochasticStep model a single root action
// whose outcome cycles 1, 2, 1
// across successive visits, all terminal with reward 0.
func stochasticNumActions(s StateKey) (int, error) {
	if s == 0 {
		return 1, nil
	}
	return 0, nil
}

func newStochasticStep() StepFunc {
	sequence := []StateKey{1, 2, 1}
	call := 0
	return func(s StateKey, a ActionId) (StateKey, float64, bool, error) {
		next := sequence[call%len(sequence)]
		call++
		return next, 0, true, nil
	}
}

func TestStochasticBranching(t *testing.T) {
	tree := NewTree(0, false)
	cb := Callbacks{NumActions: stochasticNumActions, Step: newStochasticStep(), RolloutPolicy: firstActionPolicy}
	config := SearchConfig{Iterations: 3, C: 1.4, Gamma: 1.0, MaxSteps: 8, ReturnType: Discounted}

	metrics, err := tree.Run(config, cb)
	require.NoError(t, err)
	require.Equal(t, 3, metrics.Completed)
	require.Equal(t, 3, tree.NodeCount())

	root, err := tree.Node(tree.RootId())
	require.NoError(t, err)
	require.Len(t, root.Edges(), 1)

	edge := root.Edge(0)
	require.Equal(t, 2, edge.OutcomesLen())
	count1, ok := edge.OutcomeCountFor(1)
	require.True(t, ok)
	require.Equal(t, uint64(2), count1)
	count2, ok := edge.OutcomeCountFor(2)
	require.True(t, ok)
	require.Equal(t, uint64(1), count2)
}

func TestTerminalRoot(t *testing.T) {
	tree := NewTree(0, true)
	cb := Callbacks{NumActions: chainNumActions, Step: chainStep, RolloutPolicy: firstActionPolicy}
	config := SearchConfig{Iterations: 1, C: 1.4, Gamma: 1.0, MaxSteps: 8, ReturnType: Discounted}

	metrics, err := tree.Run(config, cb)
	require.NoError(t, err)
	require.Equal(t, 1, metrics.Completed)
	require.Equal(t, 0.0, metrics.Sum)
	require.Equal(t, 1, tree.NodeCount())
}

func zeroActions(StateKey) (int, error) { return 0, nil }

func TestZeroActionNonTerminalRoot(t *testing.T) {
	tree := NewTree(0, false)
	cb := Callbacks{NumActions: zeroActions, Step: chainStep, RolloutPolicy: firstActionPolicy}
	config := SearchConfig{Iterations: 3, C: 1.4, Gamma: 1.0, MaxSteps: 8, ReturnType: Discounted}

	metrics, err := tree.Run(config, cb)
	require.NoError(t, err)
	require.Equal(t, 3, metrics.Completed)
	require.Equal(t, 0.0, metrics.Sum)
	require.Equal(t, 1, tree.NodeCount())
}

func TestInvalidRolloutAction(t *testing.T) {
	tree := NewTree(0, false)
	numActions := func(StateKey) (int, error) { return 1, nil }
	badPolicy := func(state StateKey, n int) (ActionId, error) { return 99, nil }
	cb := Callbacks{NumActions: numActions, Step: chainStep, RolloutPolicy: badPolicy}
	config := SearchConfig{Iterations: 1, C: 1.4, Gamma: 1.0, MaxSteps: 8, ReturnType: Discounted}

	_, err := tree.Run(config, cb)
	require.Error(t, err)
	var invalidErr *ErrInvalidRolloutAction
	require.ErrorAs(t, err, &invalidErr)
	require.Equal(t, 99, invalidErr.ActionId.Index())
	require.Equal(t, 1, invalidErr.NumActions)
}

// twoActionNumActions gives the root exactly two actions, each leading to
// an immediate terminal state with a fixed reward.
func twoActionNumActions(s StateKey) (int, error) {
	if s == 0 {
		return 2, nil
	}
	return 0, nil
}

func twoActionStep(s StateKey, a ActionId) (StateKey, float64, bool, error) {
	if a.Index() == 0 {
		return 1, 1.0, true, nil
	}
	return 2, 5.0, true, nil
}

func TestValueDrivenRootSelection(t *testing.T) {
	tree := NewTree(0, false)
	cb := Callbacks{NumActions: twoActionNumActions, Step: twoActionStep, RolloutPolicy: firstActionPolicy}
	config := SearchConfig{Iterations: 20, C: 0, Gamma: 1.0, MaxSteps: 8, ReturnType: Discounted}

	metrics, err := tree.Run(config, cb)
	require.NoError(t, err)
	require.Equal(t, 20, metrics.Completed)

	byVisits, ok, err := tree.BestRootActionByVisits()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, byVisits.Index())

	byValue, ok, err := tree.BestRootActionByValue()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, byValue.Index())
}

func TestBestRootActionOnUnexpandedRoot(t *testing.T) {
	tree := NewTree(0, false)
	_, ok, err := tree.BestRootActionByVisits()
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = tree.BestRootActionByValue()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSnapshotRoundTripsNodeCount(t *testing.T) {
	tree := NewTree(0, false)
	cb := Callbacks{NumActions: twoActionNumActions, Step: twoActionStep, RolloutPolicy: firstActionPolicy}
	config := SearchConfig{Iterations: 10, C: 1.4, Gamma: 1.0, MaxSteps: 8, ReturnType: Discounted}
	_, err := tree.Run(config, cb)
	require.NoError(t, err)

	snap := tree.Snapshot()
	require.Equal(t, tree.NodeCount(), snap.NodeCount)
	require.Equal(t, tree.NodeCount(), len(snap.Nodes))
	require.Equal(t, 0, snap.RootNodeId)
	require.Nil(t, snap.Nodes[0].ParentNodeId)
	require.Len(t, snap.Nodes[0].Edges, 2)
}
