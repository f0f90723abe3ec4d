package mcts

// EdgeStats stores the running visit count and value sum MCTS maintains for
// one action edge.
type EdgeStats struct {
	visits   uint64
	valueSum float64
}

// Visits returns how many times this edge has been traversed during
// backpropagation.
func (s EdgeStats) Visits() uint64 { return s.visits }

// ValueSum returns the accumulated backpropagated return for this edge.
func (s EdgeStats) ValueSum() float64 { return s.valueSum }

// IsUnvisited reports whether this edge has never been backpropagated into.
func (s EdgeStats) IsUnvisited() bool { return s.visits == 0 }

// Q returns value_sum/visits, or 0 for an unvisited edge. The zero
// convention (rather than NaN) keeps downstream float comparisons
// total-order-safe.
func (s EdgeStats) Q() float64 {
	if s.visits == 0 {
		return 0
	}
	return s.valueSum / float64(s.visits)
}

// Record increments visits by one and adds ret to the value sum. It is the
// sole mutator of EdgeStats, invoked once per edge per backpropagation pass.
func (s *EdgeStats) Record(ret float64) {
	s.visits++
	s.valueSum += ret
}
