// Package observer implements layer L3: deterministic finite-state automata
// over program events, used both for the linearizability observer and the
// safe-memory-reclamation (SMR) observer (spec.md §4.4). Both are built from
// the same State/Transition/MultiState machinery; only the automaton itself
// (built by the program author via NewObserver) differs.
package observer

