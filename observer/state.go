package observer

import "fmt"

// State is one automaton state: a name, whether it is initial/final/marked,
// an optional color, and its outgoing transitions.
//
// is_marked flags a usage-invariant violation: an execution entering a
// marked state is invalid and discarded, not a bug (spec.md §4.4) — callers
// must check IsMarked before treating IsFinal as a real violation.
//
// Color marks states that must not appear simultaneously in the observed
// thread and an interferer (see MultiState.ColorsIntersect). fixpoint does
// not read colors when it generates candidate interferences.
type State struct {
	name        string
	isInitial   bool
	isFinal     bool
	isMarked    bool
	isColored   bool
	color       int
	transitions []transition
}

// NewState builds a state. Transitions are added afterwards via the owning
// Observer's builder (see NewObserver), since a transition needs to name its
// destination state by index within the same automaton.
func NewState(name string, isInitial, isFinal bool) *State {
	return &State{name: name, isInitial: isInitial, isFinal: isFinal}
}

// WithMarked flags the state as marked (a usage-invariant violation state).
func (s *State) WithMarked() *State {
	s.isMarked = true
	return s
}

// WithColor assigns an interference-pruning color to the state.
func (s *State) WithColor(color int) *State {
	s.isColored = true
	s.color = color
	return s
}

func (s *State) Name() string   { return s.name }
func (s *State) IsInitial() bool { return s.isInitial }
func (s *State) IsFinal() bool   { return s.isFinal }
func (s *State) IsMarked() bool  { return s.isMarked }
func (s *State) IsColored() bool { return s.isColored }

// Color gives the state's color; callers must check IsColored first.
func (s *State) Color() int {
	if !s.isColored {
		panic(fmt.Sprintf("observer: state %q has no color", s.name))
	}
	return s.color
}

func (s *State) String() string { return s.name }
