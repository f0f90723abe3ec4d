package mdp

import (
	"math"
	"strings"

	"github.com/janpfeifer/weavetree/internal/generics"
)

// ProbTolerance is the floating point tolerance used when validating that
// an action's outcome probabilities sum to 1.
const ProbTolerance = 1e-9

// Spec is the serializable schema used for YAML IO and validation.
type Spec struct {
	// Version is an optional schema version for future compatibility checks.
	Version *uint32     `yaml:"version,omitempty"`
	Start   string      `yaml:"start"`
	States  []StateSpec `yaml:"states"`
}

// StateSpec is a single state declaration in the MDP schema.
type StateSpec struct {
	Id       string       `yaml:"id"`
	Terminal *bool        `yaml:"terminal,omitempty"`
	Actions  []ActionSpec `yaml:"actions,omitempty"`
}

// IsTerminal reports the effective terminal flag, defaulting to false.
func (s StateSpec) IsTerminal() bool { return s.Terminal != nil && *s.Terminal }

// ActionSpec is a named action and its stochastic outcomes.
type ActionSpec struct {
	Id       string        `yaml:"id"`
	Outcomes []OutcomeSpec `yaml:"outcomes"`
}

// OutcomeSpec is one probabilistic transition for an action.
type OutcomeSpec struct {
	Next   string  `yaml:"next"`
	Prob   float64 `yaml:"prob"`
	Reward float64 `yaml:"reward"`
}

// Validate checks schema invariants using the package default tolerance.
func (s *Spec) Validate() error {
	return s.ValidateWithTolerance(ProbTolerance)
}

// ValidateWithTolerance checks ids, transitions, and probability
// constraints, accepting probability sums within tolerance of 1.0.
func (s *Spec) ValidateWithTolerance(tolerance float64) error {
	if len(strings.TrimSpace(s.Start)) == 0 {
		return &ErrMissingStart{}
	}

	ids := generics.MakeSet[string](len(s.States))
	for _, state := range s.States {
		if ids.Has(state.Id) {
			return &ErrDuplicateStateId{Id: state.Id}
		}
		ids.Insert(state.Id)
	}

	if !ids.Has(s.Start) {
		return &ErrUnknownStartState{Start: s.Start}
	}

	for _, state := range s.States {
		terminal := state.IsTerminal()
		actions := state.Actions

		if terminal && len(actions) > 0 {
			return &ErrTerminalStateHasActions{State: state.Id}
		}

		actionIds := generics.MakeSet[string](len(actions))
		for _, action := range actions {
			if actionIds.Has(action.Id) {
				return &ErrDuplicateActionId{State: state.Id, Action: action.Id}
			}
			actionIds.Insert(action.Id)

			if len(action.Outcomes) == 0 {
				return &ErrEmptyOutcomes{State: state.Id, Action: action.Id}
			}

			var sum float64
			for i, outcome := range action.Outcomes {
				if math.IsNaN(outcome.Prob) || math.IsInf(outcome.Prob, 0) || outcome.Prob < 0 {
					return &ErrInvalidProbability{State: state.Id, Action: action.Id, OutcomeIndex: i, Value: outcome.Prob}
				}
				if math.IsNaN(outcome.Reward) || math.IsInf(outcome.Reward, 0) {
					return &ErrInvalidReward{State: state.Id, Action: action.Id, OutcomeIndex: i, Value: outcome.Reward}
				}
				if !ids.Has(outcome.Next) {
					return &ErrUnknownNextState{State: state.Id, Action: action.Id, Next: outcome.Next}
				}
				sum += outcome.Prob
			}

			if math.Abs(sum-1.0) > tolerance {
				return &ErrProbabilitySum{State: state.Id, Action: action.Id, Sum: sum, Tolerance: tolerance}
			}
		}
	}

	return nil
}

// Compile validates the spec and produces a fast runtime representation.
func (s *Spec) Compile() (*Compiled, error) {
	return compileFromSpec(s)
}
