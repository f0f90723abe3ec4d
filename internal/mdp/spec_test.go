package mdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func twoStateSpec() *Spec {
	notTerminal := false
	terminal := true
	return &Spec{
		Start: "s0",
		States: []StateSpec{
			{Id: "s0", Terminal: &notTerminal, Actions: []ActionSpec{
				{Id: "a0", Outcomes: []OutcomeSpec{{Next: "s1", Prob: 1.0, Reward: 1.0}}},
			}},
			{Id: "s1", Terminal: &terminal},
		},
	}
}

func TestSpecValidateAcceptsWellFormedSpec(t *testing.T) {
	require.NoError(t, twoStateSpec().Validate())
}

func TestSpecValidateRejectsEmptyStart(t *testing.T) {
	spec := twoStateSpec()
	spec.Start = ""
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrMissingStart
	require.ErrorAs(t, err, &e)
}

func TestSpecValidateRejectsUnknownStart(t *testing.T) {
	spec := twoStateSpec()
	spec.Start = "nonexistent"
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrUnknownStartState
	require.ErrorAs(t, err, &e)
}

func TestSpecValidateRejectsDuplicateStateId(t *testing.T) {
	spec := twoStateSpec()
	spec.States = append(spec.States, StateSpec{Id: "s0"})
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrDuplicateStateId
	require.ErrorAs(t, err, &e)
}

func TestSpecValidateRejectsTerminalStateWithActions(t *testing.T) {
	spec := twoStateSpec()
	spec.States[1].Actions = []ActionSpec{{Id: "a0", Outcomes: []OutcomeSpec{{Next: "s1", Prob: 1, Reward: 0}}}}
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrTerminalStateHasActions
	require.ErrorAs(t, err, &e)
}

func TestSpecValidateRejectsUnknownNextState(t *testing.T) {
	spec := twoStateSpec()
	spec.States[0].Actions[0].Outcomes[0].Next = "ghost"
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrUnknownNextState
	require.ErrorAs(t, err, &e)
}

func TestSpecValidateRejectsBadProbabilitySum(t *testing.T) {
	spec := twoStateSpec()
	spec.States[0].Actions[0].Outcomes[0].Prob = 0.5
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrProbabilitySum
	require.ErrorAs(t, err, &e)
}

func TestSpecValidateRejectsEmptyOutcomes(t *testing.T) {
	spec := twoStateSpec()
	spec.States[0].Actions[0].Outcomes = nil
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrEmptyOutcomes
	require.ErrorAs(t, err, &e)
}

func TestSpecValidateRejectsDuplicateActionId(t *testing.T) {
	spec := twoStateSpec()
	spec.States[0].Actions = append(spec.States[0].Actions, ActionSpec{
		Id:       "a0",
		Outcomes: []OutcomeSpec{{Next: "s1", Prob: 1, Reward: 0}},
	})
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrDuplicateActionId
	require.ErrorAs(t, err, &e)
}

func TestSpecValidateRejectsInvalidProbability(t *testing.T) {
	spec := twoStateSpec()
	spec.States[0].Actions[0].Outcomes[0].Prob = -0.1
	err := spec.Validate()
	require.Error(t, err)
	var e *ErrInvalidProbability
	require.ErrorAs(t, err, &e)
}
