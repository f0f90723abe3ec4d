package mcts

import "context"

// IterationMetrics reports the outcome of a single tree-policy-plus-rollout
// iteration.
type IterationMetrics struct {
	Index         int
	Leaf          NodeId
	LeafIsNew     bool
	PathLen       int
	RewardPrefix  float64
	RolloutReturn float64
	TotalReturn   float64
}

// RunMetrics summarizes a full Run/RunWithHook call.
type RunMetrics struct {
	IterationsRequested int
	Completed           int
	Sum                 float64
	Avg                 float64
}

// Callbacks bundles the three domain hooks an engine run needs. All three
// are fallible; see NumActionsFunc, StepFunc, RolloutPolicyFunc.
type Callbacks struct {
	NumActions    NumActionsFunc
	Step          StepFunc
	RolloutPolicy RolloutPolicyFunc
}

// InfallibleNumActionsFunc is the error-free counterpart to NumActionsFunc,
// for domains that can never fail (e.g. a compiled, pre-validated MDP).
type InfallibleNumActionsFunc func(StateKey) int

// InfallibleStepFunc is the error-free counterpart to StepFunc.
type InfallibleStepFunc func(StateKey, ActionId) (next StateKey, reward float64, terminal bool)

// InfallibleRolloutPolicyFunc is the error-free counterpart to
// RolloutPolicyFunc.
type InfallibleRolloutPolicyFunc func(state StateKey, numActions int) ActionId

// Fallible adapts an infallible num_actions callback into the fallible
// shape the engine core always uses internally. This is the callback
// polymorphism the engine offers: one core implementation, two call-site
// ergonomics.
func (f InfallibleNumActionsFunc) Fallible() NumActionsFunc {
	return func(s StateKey) (int, error) { return f(s), nil }
}

// Fallible adapts an infallible step callback into StepFunc.
func (f InfallibleStepFunc) Fallible() StepFunc {
	return func(s StateKey, a ActionId) (StateKey, float64, bool, error) {
		next, reward, terminal := f(s, a)
		return next, reward, terminal, nil
	}
}

// Fallible adapts an infallible rollout-policy callback into
// RolloutPolicyFunc.
func (f InfallibleRolloutPolicyFunc) Fallible() RolloutPolicyFunc {
	return func(s StateKey, n int) (ActionId, error) { return f(s, n), nil }
}

// Backpropagate applies totalReturn to every edge on path. Exported for
// callers that drive the tree policy and rollout themselves instead of
// going through Iterate/Run.
func (t *Tree) Backpropagate(path []ParentRef, totalReturn float64) error {
	return t.backpropagate(path, totalReturn)
}

// Iterate runs one tree-policy descent followed by a bounded rollout from
// the reached leaf, then backpropagates the combined return along the
// descent path.
func (t *Tree) Iterate(config SearchConfig, cb Callbacks) (IterationMetrics, error) {
	tp, err := t.treePolicy(config.C, cb.NumActions, cb.Step)
	if err != nil {
		return IterationMetrics{}, err
	}

	leafNode, err := t.Node(tp.Leaf)
	if err != nil {
		return IterationMetrics{}, err
	}

	var rolloutReturn float64
	if !leafNode.IsTerminal() {
		rolloutReturn, err = rollout(leafNode.StateKey(), cb.NumActions, cb.Step, cb.RolloutPolicy, config.RolloutParams())
		if err != nil {
			return IterationMetrics{}, err
		}
	}

	total := tp.Reward + rolloutReturn
	if err := t.backpropagate(tp.Path, total); err != nil {
		return IterationMetrics{}, err
	}

	return IterationMetrics{
		Leaf:          tp.Leaf,
		LeafIsNew:     tp.LeafIsNew,
		PathLen:       len(tp.Path),
		RewardPrefix:  tp.Reward,
		RolloutReturn: rolloutReturn,
		TotalReturn:   total,
	}, nil
}

// Run executes config.Iterations iterations and returns their aggregate
// statistics. Equivalent to RunWithHook with a nil hook and a
// never-cancelled context.
func (t *Tree) Run(config SearchConfig, cb Callbacks) (RunMetrics, error) {
	return t.RunWithHook(context.Background(), config, cb, nil)
}

// RunWithHook executes config.Iterations iterations, invoking onIteration
// (if non-nil) after each one completes. The run stops early, without
// error, if ctx is cancelled between iterations.
func (t *Tree) RunWithHook(ctx context.Context, config SearchConfig, cb Callbacks, onIteration func(IterationMetrics)) (RunMetrics, error) {
	metrics := RunMetrics{IterationsRequested: config.Iterations}

	for i := 0; i < config.Iterations; i++ {
		select {
		case <-ctx.Done():
			return metrics, nil
		default:
		}

		im, err := t.Iterate(config, cb)
		if err != nil {
			return metrics, err
		}
		im.Index = i
		metrics.Completed++
		metrics.Sum += im.TotalReturn
		metrics.Avg = metrics.Sum / float64(metrics.Completed)
		if onIteration != nil {
			onIteration(im)
		}
	}

	return metrics, nil
}
