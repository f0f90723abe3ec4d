package mdp

import "math/rand/v2"

// Simulator drives a Compiled MDP with a deterministic, seeded PRNG,
// exposing the shape the mcts package's callbacks expect.
type Simulator struct {
	mdp *Compiled
	rng *rand.Rand
}

// NewSimulator wraps mdp in a simulator seeded deterministically from seed.
func NewSimulator(mdp *Compiled, seed uint64) *Simulator {
	var seedBytes [32]byte
	for i := 0; i < 4; i++ {
		v := seed
		for b := 0; b < 8; b++ {
			seedBytes[i*8+b] = byte(v)
			v >>= 8
		}
	}
	return &Simulator{mdp: mdp, rng: rand.New(rand.NewChaCha8(seedBytes))}
}

// Mdp returns the underlying compiled MDP.
func (s *Simulator) Mdp() *Compiled { return s.mdp }

// NumActions returns how many actions are available for stateKey.
func (s *Simulator) NumActions(stateKey StateKey) int {
	n, ok := s.mdp.NumActions(stateKey)
	if !ok {
		return 0
	}
	return n
}

// Step samples one (next_state, reward, terminal) transition. Invalid
// state/action inputs are treated as a no-op terminal transition.
func (s *Simulator) Step(stateKey StateKey, actionIdx int) (StateKey, float64, bool) {
	sample := s.rng.Float64()
	next, reward, terminal, ok := s.mdp.SampleTransition(stateKey, actionIdx, sample)
	if !ok {
		return stateKey, 0, true
	}
	return next, reward, terminal
}
