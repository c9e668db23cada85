package program

import "errors"

// Sentinel errors returned by Build and the validators it runs.
//
// ERROR PRIORITY: name clash -> unknown name -> structural (CAS-in-while,
// summary discipline) -> internal (id/next table invariant).
var (
	// ErrDuplicateName indicates two globals, two functions, two template
	// locals, or two locals of the same function share a name. A variable
	// named like a function, and a local named like a global, are not
	// rejected; the local then shadows the global.
	ErrDuplicateName = errors.New("program: duplicate name")

	// ErrUnknownName indicates an expression refers to a variable that was
	// never declared.
	ErrUnknownName = errors.New("program: unknown name")

	// ErrReservedName indicates a function is named "init", which is
	// reserved for the program's own initialization sequence.
	ErrReservedName = errors.New("program: \"init\" is a reserved function name")

	// ErrCASInWhile indicates a CompareAndSwap appears inside a While body,
	// disallowed because the post-image calculus may not interleave
	// interference inside a loop iteration boundary (spec.md §6).
	ErrCASInWhile = errors.New("program: CAS not allowed inside a while loop")

	// ErrSummaryDiscipline indicates REPLACE_INTERFERENCE_WITH_SUMMARY is set
	// but a function carries no summary, or its summary violates the static
	// SSA discipline of spec.md §4.5.
	ErrSummaryDiscipline = errors.New("program: summary violates SSA discipline")

	// ErrSummaryCondition indicates a summary's conditional uses a compound,
	// CAS, or oracle condition, which spec.md §4.5 restricts to ordinary
	// function bodies.
	ErrSummaryCondition = errors.New("program: summary conditional must be a plain eq/neq test")
)
