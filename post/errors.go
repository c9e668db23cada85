package post

import "errors"

// Sentinel errors raised by the post-image calculus. These are
// program-under-analysis faults (spec.md §7 kind 1): a real execution of
// the input program would dereference a dangling pointer or double-free a
// cell, so fixpoint reports them as verification findings, not bugs in the
// verifier itself.
//
// ERROR PRIORITY: dereference -> double-free -> unsupported shape -> cycle -> SMR/observer violation.
var (
	// ErrDerefNullOrUndef indicates a statement read `x.next` while x could
	// be NULL or UNDEF (spec.md §4.6's assignment `x = y.next` contract).
	ErrDerefNullOrUndef = errors.New("post: dereference of possibly NULL/UNDEF pointer")

	// ErrDoubleFree indicates free/retire targeted a cell already freed.
	ErrDoubleFree = errors.New("post: double free")

	// ErrAliasedFree indicates free/retire targeted a cell still owned by
	// another live register, violating the no-aliased-free discipline.
	ErrAliasedFree = errors.New("post: free of aliased cell")

	// ErrSelectorSelector indicates an assignment of the shape
	// `x.next = y.next`, which the source marks unsupported.
	ErrSelectorSelector = errors.New("post: selector-to-selector assignment unsupported")

	// ErrWouldCycle indicates `x.next = y` would close a cycle back to x.
	ErrWouldCycle = errors.New("post: assignment would create a cycle")

	// ErrOwnedGuarded indicates a hazard-pointer set (or retire) targeted a
	// cell this thread still exclusively owns, violating the discipline
	// that owned cells are never published to other threads.
	ErrOwnedGuarded = errors.New("post: owned cell guarded or retired")

	// ErrObserverViolation indicates a linearisation point drove the
	// linearizability observer into a final (rejecting) state: a
	// specification violation in the program under analysis.
	ErrObserverViolation = errors.New("post: linearisation point reached observer's final state")

	// ErrSMRViolation indicates a retire or quiescent-region transition
	// drove the SMR observer into a final, non-marked (rejecting) state —
	// e.g. retiring a cell twice with no intervening function return, or re-entering a
	// quiescent region without leaving it first, per whatever automaton
	// examplesprog wires as the program's SMR observer. A final state that
	// is also marked is a different thing (spec.md §4.4: an invalid
	// execution, silently discarded) and never raises this error.
	ErrSMRViolation = errors.New("post: retire reached SMR observer's final state")

	// ErrUnsupportedStatement indicates Post was asked to step a
	// Statement whose concrete type it does not recognise. This should be
	// unreachable given program.Statement's closed set of kinds; it exists
	// so Post fails loudly rather than silently if that set ever grows.
	ErrUnsupportedStatement = errors.New("post: unsupported statement kind")
)
