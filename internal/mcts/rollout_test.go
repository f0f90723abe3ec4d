package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// constantRewardNumActions and constantRewardStep never terminate on their
// own; numActions always reports one legal action and step always returns
// reward=1, letting the rollout's
// own step bound be the only thing that stops it.
func constantRewardNumActions(StateKey) (int, error) { return 1, nil }
func constantRewardStep(s StateKey, a ActionId) (StateKey, float64, bool, error) {
	return s + 1, 1.0, false, nil
}

func TestRolloutEpisodicUndiscountedSumsRawRewards(t *testing.T) {
	params := RolloutParams{ReturnType: EpisodicUndiscounted, MaxSteps: 5}
	ret, err := rollout(0, constantRewardNumActions, constantRewardStep, firstActionPolicy, params)
	require.NoError(t, err)
	require.Equal(t, 5.0, ret)
}

func TestRolloutDiscountedAppliesGammaPerStep(t *testing.T) {
	params := RolloutParams{ReturnType: Discounted, Gamma: 0.5, MaxSteps: 3}
	ret, err := rollout(0, constantRewardNumActions, constantRewardStep, firstActionPolicy, params)
	require.NoError(t, err)
	// 1*1 + 0.5*1 + 0.25*1 = 1.75
	require.InDelta(t, 1.75, ret, 1e-9)
}

func TestRolloutFixedHorizonClampsStepLimit(t *testing.T) {
	params := RolloutParams{ReturnType: FixedHorizon, MaxSteps: 100, FixedHorizonSteps: 4}
	require.Equal(t, 4, params.StepLimit())
	ret, err := rollout(0, constantRewardNumActions, constantRewardStep, firstActionPolicy, params)
	require.NoError(t, err)
	require.Equal(t, 4.0, ret)
}

func TestRolloutStopsOnTerminal(t *testing.T) {
	numActions := func(s StateKey) (int, error) {
		if s == 0 {
			return 1, nil
		}
		return 0, nil
	}
	step := func(s StateKey, a ActionId) (StateKey, float64, bool, error) {
		return 1, 10.0, true, nil
	}
	params := RolloutParams{ReturnType: EpisodicUndiscounted, MaxSteps: 100}
	ret, err := rollout(0, numActions, step, firstActionPolicy, params)
	require.NoError(t, err)
	require.Equal(t, 10.0, ret)
}

func TestRolloutStopsOnZeroActions(t *testing.T) {
	params := RolloutParams{ReturnType: EpisodicUndiscounted, MaxSteps: 100}
	ret, err := rollout(0, zeroActions, constantRewardStep, firstActionPolicy, params)
	require.NoError(t, err)
	require.Equal(t, 0.0, ret)
}

func TestRolloutRejectsOutOfRangeAction(t *testing.T) {
	badPolicy := func(state StateKey, n int) (ActionId, error) { return ActionId(n), nil }
	params := RolloutParams{ReturnType: EpisodicUndiscounted, MaxSteps: 5}
	_, err := rollout(0, constantRewardNumActions, constantRewardStep, badPolicy, params)
	require.Error(t, err)
	var invalidErr *ErrInvalidRolloutAction
	require.ErrorAs(t, err, &invalidErr)
}
