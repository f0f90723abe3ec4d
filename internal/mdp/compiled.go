package mdp

import "sort"

// StateKey is a dense index into a Compiled MDP's state table.
type StateKey int

// Index returns the underlying state index.
func (k StateKey) Index() int { return int(k) }

type stateRec struct {
	terminal bool
	actions  []actionRec
}

type actionRec struct {
	outcomes []outcomeRec
	cdf      []float64
}

type outcomeRec struct {
	next   StateKey
	reward float64
}

// Compiled is the runtime form of an MDP: resolved state references and a
// precomputed cumulative distribution per action, ready for fast sampling.
type Compiled struct {
	start        StateKey
	states       []stateRec
	stateIds     []string
	stateIdToKey map[string]StateKey
}

// compileFromSpec validates spec and builds its runtime representation.
func compileFromSpec(spec *Spec) (*Compiled, error) {
	if err := spec.ValidateWithTolerance(ProbTolerance); err != nil {
		return nil, err
	}

	stateIdToKey := make(map[string]StateKey, len(spec.States))
	stateIds := make([]string, len(spec.States))
	for idx, state := range spec.States {
		key := StateKey(idx)
		stateIdToKey[state.Id] = key
		stateIds[idx] = state.Id
	}

	start, ok := stateIdToKey[spec.Start]
	if !ok {
		return nil, &ErrUnknownStartState{Start: spec.Start}
	}

	states := make([]stateRec, len(spec.States))
	for idx, state := range spec.States {
		rec := stateRec{terminal: state.IsTerminal()}

		for _, action := range state.Actions {
			outcomes := make([]outcomeRec, 0, len(action.Outcomes))
			cdf := make([]float64, 0, len(action.Outcomes))
			var cumulative float64

			for _, outcome := range action.Outcomes {
				cumulative += outcome.Prob
				cdf = append(cdf, cumulative)
				next, ok := stateIdToKey[outcome.Next]
				if !ok {
					return nil, &ErrUnknownNextState{State: state.Id, Action: action.Id, Next: outcome.Next}
				}
				outcomes = append(outcomes, outcomeRec{next: next, reward: outcome.Reward})
			}

			rec.actions = append(rec.actions, actionRec{outcomes: outcomes, cdf: cdf})
		}

		states[idx] = rec
	}

	return &Compiled{start: start, states: states, stateIds: stateIds, stateIdToKey: stateIdToKey}, nil
}

// Start returns the compiled start state.
func (c *Compiled) Start() StateKey { return c.start }

// StateCount returns the number of compiled states.
func (c *Compiled) StateCount() int { return len(c.states) }

// IsTerminal reports whether key is a terminal state. The second return
// value is false if key is out of range.
func (c *Compiled) IsTerminal(key StateKey) (bool, bool) {
	idx := key.Index()
	if idx < 0 || idx >= len(c.states) {
		return false, false
	}
	return c.states[idx].terminal, true
}

// NumActions returns how many actions are available from key. The second
// return value is false if key is out of range.
func (c *Compiled) NumActions(key StateKey) (int, bool) {
	idx := key.Index()
	if idx < 0 || idx >= len(c.states) {
		return 0, false
	}
	return len(c.states[idx].actions), true
}

// StateId converts a state key back to its original string id.
func (c *Compiled) StateId(key StateKey) (string, bool) {
	idx := key.Index()
	if idx < 0 || idx >= len(c.stateIds) {
		return "", false
	}
	return c.stateIds[idx], true
}

// StateKeyFor converts a string id into a compiled state key.
func (c *Compiled) StateKeyFor(id string) (StateKey, bool) {
	key, ok := c.stateIdToKey[id]
	return key, ok
}

// SampleTransition samples one transition for (stateKey, actionIdx) using a
// uniform sample in [0, 1). A terminal stateKey yields a zero-reward
// self-transition with ok == true, whatever actionIdx is. Otherwise returns
// ok == false if stateKey or actionIdx is out of range, or the action has
// no outcomes.
func (c *Compiled) SampleTransition(stateKey StateKey, actionIdx int, sample float64) (next StateKey, reward float64, terminal bool, ok bool) {
	idx := stateKey.Index()
	if idx < 0 || idx >= len(c.states) {
		return 0, 0, false, false
	}
	state := c.states[idx]
	if state.terminal {
		return stateKey, 0, true, true
	}

	if actionIdx < 0 || actionIdx >= len(state.actions) {
		return 0, 0, false, false
	}
	action := state.actions[actionIdx]
	if len(action.outcomes) == 0 {
		return 0, 0, false, false
	}

	chosen := sort.Search(len(action.cdf), func(i int) bool { return action.cdf[i] >= sample })
	if chosen >= len(action.outcomes) {
		chosen = len(action.outcomes) - 1
	}

	outcome := action.outcomes[chosen]
	nextTerminal := c.states[outcome.next.Index()].terminal
	return outcome.next, outcome.reward, nextTerminal, true
}
