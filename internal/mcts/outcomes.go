package mcts

// outcome represents one observed next-state under a given (node, action)
// edge: a next-state fingerprint, the child node it routes to, and how many
// times it has been observed.
type outcome struct {
	nextStateKey StateKey
	child        NodeId
	count        uint64
}

// OutcomeSet is the insertion-ordered collection of outcomes observed for a
// single action edge. Outcome degree is small in practice (a handful of
// chance branches at most), so a linear scan beats a hashed map in both
// simplicity and deterministic iteration order for snapshots.
type OutcomeSet struct {
	outcomes []outcome
}

// Len returns how many distinct next-state outcomes have been observed.
func (s *OutcomeSet) Len() int { return len(s.outcomes) }

// CountFor returns the observation count for nextStateKey, or (0, false) if
// it has never been observed.
func (s *OutcomeSet) CountFor(nextStateKey StateKey) (uint64, bool) {
	for _, o := range s.outcomes {
		if o.nextStateKey == nextStateKey {
			return o.count, true
		}
	}
	return 0, false
}

// GetChildFor returns the child node routed to by nextStateKey, if any.
func (s *OutcomeSet) GetChildFor(nextStateKey StateKey) (NodeId, bool) {
	for _, o := range s.outcomes {
		if o.nextStateKey == nextStateKey {
			return o.child, true
		}
	}
	return 0, false
}

// InsertOutcome appends a brand-new (nextStateKey, child) pair with count 1.
// It is a collision guard: if nextStateKey was already present it does
// nothing and returns false.
func (s *OutcomeSet) InsertOutcome(nextStateKey StateKey, child NodeId) bool {
	for _, o := range s.outcomes {
		if o.nextStateKey == nextStateKey {
			return false
		}
	}
	s.outcomes = append(s.outcomes, outcome{nextStateKey: nextStateKey, child: child, count: 1})
	return true
}

// IncrementOutcome adds one to the observation count of an already-known
// outcome and returns its child node. Returns (0, false) if nextStateKey
// hasn't been observed yet.
func (s *OutcomeSet) IncrementOutcome(nextStateKey StateKey) (NodeId, bool) {
	for i := range s.outcomes {
		if s.outcomes[i].nextStateKey == nextStateKey {
			s.outcomes[i].count++
			return s.outcomes[i].child, true
		}
	}
	return 0, false
}

// forEach iterates outcomes in insertion order, used by the snapshot
// exporter to produce deterministic output.
func (s *OutcomeSet) forEach(fn func(nextStateKey StateKey, child NodeId, count uint64)) {
	for _, o := range s.outcomes {
		fn(o.nextStateKey, o.child, o.count)
	}
}
