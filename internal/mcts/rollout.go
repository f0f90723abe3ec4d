package mcts

// ReturnType controls how rollout rewards are aggregated into a return.
type ReturnType int

const (
	// EpisodicUndiscounted sums raw rewards until terminal or the rollout
	// step limit.
	EpisodicUndiscounted ReturnType = iota
	// Discounted sums rewards weighted by gamma^t.
	Discounted
	// FixedHorizon sums raw rewards but clamps the step limit to
	// min(MaxSteps, FixedHorizonSteps).
	FixedHorizon
)

func (t ReturnType) String() string {
	switch t {
	case EpisodicUndiscounted:
		return "episodic_undiscounted"
	case Discounted:
		return "discounted"
	case FixedHorizon:
		return "fixed_horizon"
	default:
		return "unknown"
	}
}

// RolloutParams controls the return shape and stopping criteria of a single
// rollout.
type RolloutParams struct {
	ReturnType        ReturnType
	Gamma             float64
	MaxSteps          int
	FixedHorizonSteps int
}

// StepLimit resolves the effective step bound for the current return mode:
// FixedHorizon clamps to the smaller of MaxSteps and FixedHorizonSteps;
// the other two modes use MaxSteps directly.
func (p RolloutParams) StepLimit() int {
	if p.ReturnType == FixedHorizon {
		if p.FixedHorizonSteps < p.MaxSteps {
			return p.FixedHorizonSteps
		}
	}
	return p.MaxSteps
}

// NumActionsFunc answers how many legal actions exist from a state. It must
// be deterministic in its StateKey argument. Returning 0 marks a sink state,
// not an error.
type NumActionsFunc func(StateKey) (int, error)

// StepFunc advances one action from a state, returning the next state's
// fingerprint, a finite reward, and whether the next state is terminal.
type StepFunc func(StateKey, ActionId) (next StateKey, reward float64, terminal bool, err error)

// RolloutPolicyFunc picks a default-policy action during rollout; it must
// return an index in [0, numActions).
type RolloutPolicyFunc func(state StateKey, numActions int) (ActionId, error)

// rollout runs a bounded default-policy simulation from startStateKey and
// returns the accumulated return per params. The environment interface
// stays generic: num_actions/step/rollout_policy are the engine's only
// contact with the domain.
func rollout(startStateKey StateKey, numActions NumActionsFunc, step StepFunc, rolloutPolicy RolloutPolicyFunc, params RolloutParams) (float64, error) {
	state := startStateKey
	total := 0.0
	discount := 1.0

	for i := 0; i < params.StepLimit(); i++ {
		n, err := numActions(state)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}

		action, err := rolloutPolicy(state, n)
		if err != nil {
			return 0, err
		}
		if action.Index() >= n || action.Index() < 0 {
			return 0, &ErrInvalidRolloutAction{StateKey: state, ActionId: action, NumActions: n}
		}

		next, reward, terminal, err := step(state, action)
		if err != nil {
			return 0, err
		}

		switch params.ReturnType {
		case Discounted:
			total += discount * reward
			discount *= params.Gamma
		default: // EpisodicUndiscounted, FixedHorizon
			total += reward
		}

		state = next
		if terminal {
			break
		}
	}

	return total, nil
}
