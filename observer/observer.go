package observer

import (
	"errors"
	"fmt"
)

// ErrNondeterministic indicates two outgoing transitions of the same state
// share the exact same trigger, violating spec.md §4.4's determinism
// requirement. This is a tool/program-construction fault (spec.md §7 kind 2).
var ErrNondeterministic = errors.New("observer: nondeterministic transition")

// ErrNoInitialState indicates an observer was built with no state flagged
// as initial; at least one is required (spec.md §6's Observer API contract).
var ErrNoInitialState = errors.New("observer: no initial state")

// transition pairs a trigger event with the destination state.
type transition struct {
	trigger Event
	dst     *State
}

// AddTransition adds an outgoing transition from s, firing on trigger and
// leading to dst. It fails with ErrNondeterministic if s already has a
// transition with the exact same trigger.
func (s *State) AddTransition(trigger Event, dst *State) error {
	for _, t := range s.transitions {
		if t.trigger.Equal(trigger) {
			return fmt.Errorf("observer: state %q: %w", s.name, ErrNondeterministic)
		}
	}
	s.transitions = append(s.transitions, transition{trigger: trigger, dst: dst})
	return nil
}

// next gives the destination of the transition matching evt, if any.
func (s *State) next(evt Event) (*State, bool) {
	for _, t := range s.transitions {
		if t.trigger.Equal(evt) {
			return t.dst, true
		}
	}
	return nil, false
}

// Observer is a deterministic automaton over Events: linearizability
// observers and SMR observers are both instances of this same machinery,
// distinguished only by which states/transitions the program author builds
// (spec.md §4.4).
type Observer struct {
	states []*State
	init   MultiState
}

// NewObserver builds an Observer from a fully wired state set (transitions
// already attached via State.AddTransition). At least one state must be
// initial; NewObserver takes the parallel product of every initial state as
// the observer's initial MultiState (spec.md §4.4/§6).
func NewObserver(states []*State) (*Observer, error) {
	var initials []*State
	for _, s := range states {
		if s.IsInitial() {
			initials = append(initials, s)
		}
	}
	if len(initials) == 0 {
		return nil, ErrNoInitialState
	}
	return &Observer{states: states, init: MultiState{states: initials}}, nil
}

// InitialState gives the MultiState used by the initial configuration.
func (o *Observer) InitialState() MultiState {
	return o.init
}

// States gives every state of the automaton.
func (o *Observer) States() []*State {
	return o.states
}
