package mcts

import "math"

// ActionEdge represents taking a particular action from a decision node: it
// owns the action's stats and the set of observed chance outcomes.
type ActionEdge struct {
	action   ActionId
	stats    EdgeStats
	outcomes OutcomeSet
}

// Action returns this edge's position within its parent node's edge
// sequence.
func (e *ActionEdge) Action() ActionId { return e.action }

// Visits forwards EdgeStats.Visits.
func (e *ActionEdge) Visits() uint64 { return e.stats.Visits() }

// ValueSum forwards EdgeStats.ValueSum.
func (e *ActionEdge) ValueSum() float64 { return e.stats.ValueSum() }

// Q forwards EdgeStats.Q.
func (e *ActionEdge) Q() float64 { return e.stats.Q() }

// IsUnvisited forwards EdgeStats.IsUnvisited.
func (e *ActionEdge) IsUnvisited() bool { return e.stats.IsUnvisited() }

// Record forwards EdgeStats.Record, used during backpropagation.
func (e *ActionEdge) Record(ret float64) { e.stats.Record(ret) }

// GetChildFor forwards OutcomeSet.GetChildFor.
func (e *ActionEdge) GetChildFor(nextStateKey StateKey) (NodeId, bool) {
	return e.outcomes.GetChildFor(nextStateKey)
}

// InsertOutcome forwards OutcomeSet.InsertOutcome.
func (e *ActionEdge) InsertOutcome(nextStateKey StateKey, child NodeId) bool {
	return e.outcomes.InsertOutcome(nextStateKey, child)
}

// IncrementOutcome forwards OutcomeSet.IncrementOutcome.
func (e *ActionEdge) IncrementOutcome(nextStateKey StateKey) (NodeId, bool) {
	return e.outcomes.IncrementOutcome(nextStateKey)
}

// OutcomesLen forwards OutcomeSet.Len.
func (e *ActionEdge) OutcomesLen() int { return e.outcomes.Len() }

// OutcomeCountFor forwards OutcomeSet.CountFor.
func (e *ActionEdge) OutcomeCountFor(nextStateKey StateKey) (uint64, bool) {
	return e.outcomes.CountFor(nextStateKey)
}

// ForEachOutcome forwards OutcomeSet.forEach.
func (e *ActionEdge) ForEachOutcome(fn func(nextStateKey StateKey, child NodeId, count uint64)) {
	e.outcomes.forEach(fn)
}

// ucb scores this edge under the UCB1-style tree policy formula:
//
//	+Inf                              if unvisited
//	Q + c * sqrt(ln(nParent) / visits) otherwise
//
// nParent is the (at-least-1) sum of visits across all sibling edges,
// computed by the owning node so edges stay unaware of their siblings.
func (e *ActionEdge) ucb(nParent uint64, c float64) float64 {
	if e.stats.IsUnvisited() {
		return math.Inf(1)
	}
	return e.stats.Q() + c*math.Sqrt(math.Log(float64(nParent))/float64(e.stats.Visits()))
}
