package mcts

import "fmt"

// ErrMissingNode indicates an arena lookup with a stale or fabricated node
// id. It signals a programming error and is fatal to the current
// operation.
type ErrMissingNode struct {
	NodeId NodeId
}

func (e *ErrMissingNode) Error() string {
	return fmt.Sprintf("mcts: missing node %s", e.NodeId)
}

// ErrMissingEdge indicates a path entry referencing an action that doesn't
// exist on the given node, surfaced during backpropagation.
type ErrMissingEdge struct {
	NodeId   NodeId
	ActionId ActionId
}

func (e *ErrMissingEdge) Error() string {
	return fmt.Sprintf("mcts: missing edge %s on node %s", e.ActionId, e.NodeId)
}

// ErrActionSelectionFailed indicates the tree policy needed to select an
// action on a node that had no edges.
type ErrActionSelectionFailed struct {
	NodeId NodeId
}

func (e *ErrActionSelectionFailed) Error() string {
	return fmt.Sprintf("mcts: failed to select an action on node %s", e.NodeId)
}

// ErrOutcomeInsertFailed indicates an outcome insertion raced with an
// existing entry for the same next-state key. Under the descent algorithm
// this should never occur; seeing it means a child was concurrently
// inserted outside the engine's single-threaded contract.
type ErrOutcomeInsertFailed struct {
	NodeId   NodeId
	ActionId ActionId
}

func (e *ErrOutcomeInsertFailed) Error() string {
	return fmt.Sprintf("mcts: failed to insert new outcome for edge %s on node %s", e.ActionId, e.NodeId)
}

// ErrInvalidRolloutAction indicates a rollout policy returned an action
// index outside [0, NumActions).
type ErrInvalidRolloutAction struct {
	StateKey   StateKey
	ActionId   ActionId
	NumActions int
}

func (e *ErrInvalidRolloutAction) Error() string {
	return fmt.Sprintf("mcts: rollout policy selected invalid action %s for %s with %d actions",
		e.ActionId, e.StateKey, e.NumActions)
}
