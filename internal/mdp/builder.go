package mdp

// Builder constructs a Spec programmatically instead of through YAML,
// convenient for small fixtures and generated MDPs.
type Builder struct {
	start  string
	states []StateSpec
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// SetStart sets the id of the MDP's start state.
func (b *Builder) SetStart(state string) *Builder {
	b.start = state
	return b
}

// AddState declares a new state, terminal or not.
func (b *Builder) AddState(id string, terminal bool) *Builder {
	b.states = append(b.states, StateSpec{Id: id, Terminal: &terminal, Actions: []ActionSpec{}})
	return b
}

func (b *Builder) findState(stateId string) *StateSpec {
	for i := range b.states {
		if b.states[i].Id == stateId {
			return &b.states[i]
		}
	}
	return nil
}

// AddAction declares a new action on an already-added state.
func (b *Builder) AddAction(stateId, actionId string) (*Builder, error) {
	state := b.findState(stateId)
	if state == nil {
		return nil, &ErrBuilderUnknownState{State: stateId}
	}
	state.Actions = append(state.Actions, ActionSpec{Id: actionId})
	return b, nil
}

// AddOutcome appends one stochastic outcome to an already-added action.
func (b *Builder) AddOutcome(stateId, actionId, next string, prob, reward float64) (*Builder, error) {
	state := b.findState(stateId)
	if state == nil {
		return nil, &ErrBuilderUnknownState{State: stateId}
	}
	for i := range state.Actions {
		if state.Actions[i].Id == actionId {
			state.Actions[i].Outcomes = append(state.Actions[i].Outcomes, OutcomeSpec{Next: next, Prob: prob, Reward: reward})
			return b, nil
		}
	}
	return nil, &ErrBuilderUnknownAction{State: stateId, Action: actionId}
}

// BuildSpec validates and returns the assembled Spec.
func (b *Builder) BuildSpec() (*Spec, error) {
	if b.start == "" {
		return nil, &ErrMissingStart{}
	}
	version := uint32(1)
	spec := &Spec{Version: &version, Start: b.start, States: b.states}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Compile builds the spec and compiles it in one step.
func (b *Builder) Compile() (*Compiled, error) {
	spec, err := b.BuildSpec()
	if err != nil {
		return nil, err
	}
	return spec.Compile()
}
