package fixpoint

import "errors"

// Sentinel errors raised by the fixed-point driver itself, as opposed to
// the program-under-analysis faults post.Post surfaces (spec.md §7 kind 2:
// these are tool/construction faults, not verification verdicts).
//
// ERROR PRIORITY: unknown statement id -> ambiguous init -> empty program.
var (
	// ErrUnknownStatementID indicates a configuration's program counter
	// does not resolve against the built Program — an internal consistency
	// failure, never a fault in the program under analysis.
	ErrUnknownStatementID = errors.New("fixpoint: program counter does not resolve to a statement")

	// ErrAmbiguousInit indicates the program's init sequence produced more
	// than one post-image; init.cpp's mk_init_cfg asserts exactly one.
	ErrAmbiguousInit = errors.New("fixpoint: init sequence is not deterministic")

	// ErrNoFunctions indicates the program declares no callable functions,
	// so no thread could ever do anything after init completes.
	ErrNoFunctions = errors.New("fixpoint: program declares no functions")
)
