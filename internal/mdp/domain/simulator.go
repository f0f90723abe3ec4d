package domain

import (
	"math/rand/v2"

	"github.com/janpfeifer/weavetree/internal/mcts"
)

// Simulator runs a seeded simulation over a typed Domain, interning states
// into mcts.StateKey values on first sight.
type Simulator[S comparable] struct {
	domain   Domain[S]
	interner *StateInterner[S]
	rng      *rand.Rand
}

// NewSimulator wraps domain in a simulator seeded deterministically from
// seed. The domain's start state is interned immediately as key 0.
func NewSimulator[S comparable](domain Domain[S], seed uint64) *Simulator[S] {
	interner := NewStateInterner[S]()
	interner.Intern(domain.StartState())

	var seedBytes [32]byte
	for i := 0; i < 4; i++ {
		v := seed
		for b := 0; b < 8; b++ {
			seedBytes[i*8+b] = byte(v)
			v >>= 8
		}
	}
	return &Simulator[S]{domain: domain, interner: interner, rng: rand.New(rand.NewChaCha8(seedBytes))}
}

// StartStateKey returns the interned key of the domain's start state,
// always 0.
func (s *Simulator[S]) StartStateKey() mcts.StateKey { return 0 }

// Domain returns the underlying domain implementation.
func (s *Simulator[S]) Domain() Domain[S] { return s.domain }

// StateFor resolves an interned key back to its decoded state.
func (s *Simulator[S]) StateFor(key mcts.StateKey) (S, bool) {
	return s.interner.Get(key.Value())
}

// IsTerminalByKey reports whether an interned state key is terminal. An
// unknown key is treated as terminal.
func (s *Simulator[S]) IsTerminalByKey(key mcts.StateKey) bool {
	state, ok := s.interner.Get(key.Value())
	if !ok {
		return true
	}
	return s.domain.IsTerminal(state)
}

// NumActionsByKey returns how many actions are available from an interned
// state key. An unknown key reports zero.
func (s *Simulator[S]) NumActionsByKey(key mcts.StateKey) int {
	state, ok := s.interner.Get(key.Value())
	if !ok {
		return 0
	}
	return s.domain.NumActions(state)
}

// StepByKey samples one transition and interns the resulting state.
// Invalid keys are treated as a no-op terminal transition.
func (s *Simulator[S]) StepByKey(key mcts.StateKey, actionIdx int) (mcts.StateKey, float64, bool) {
	state, ok := s.interner.Get(key.Value())
	if !ok {
		return key, 0, true
	}
	sample := s.rng.Float64()
	next, reward, terminal := s.domain.Step(state, actionIdx, sample)
	nextKey := s.interner.Intern(next)
	return mcts.StateKey(nextKey), reward, terminal
}

// NumActionsFunc returns an mcts.NumActionsFunc bound to this simulator.
func (s *Simulator[S]) NumActionsFunc() mcts.NumActionsFunc {
	return func(key mcts.StateKey) (int, error) { return s.NumActionsByKey(key), nil }
}

// StepFunc returns an mcts.StepFunc bound to this simulator.
func (s *Simulator[S]) StepFunc() mcts.StepFunc {
	return func(key mcts.StateKey, action mcts.ActionId) (mcts.StateKey, float64, bool, error) {
		next, reward, terminal := s.StepByKey(key, action.Index())
		return next, reward, terminal, nil
	}
}
