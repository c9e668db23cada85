// Package options replaces the source's compile-time `#define` flags with a
// runtime struct the fixpoint driver and CLI both consume (spec.md §9's
// explicit re-architecture note). Every field here was a build-time boolean
// in the original; they are read by the fixpoint driver, chkmimic, the
// printer and the CLI, and a struct passed by value is enough — no
// package-level mutable state.
package options

// Memory is which of the three memory-reclamation semantics fixpoint
// verifies the program under (spec.md §6's --PRF|--GC|--MM).
type Memory int

const (
	// HazardPointers (--PRF, "protect-retire-free") guards cells with
	// hazard pointers before dereferencing them.
	HazardPointers Memory = iota
	// GarbageCollected (--GC) never reclaims memory; free/retire is a
	// no-op for shape purposes.
	GarbageCollected
	// ManualMemory (--MM) reclaims eagerly via free with no protection
	// scheme; double-free and use-after-free are the properties checked.
	ManualMemory
)

func (m Memory) String() string {
	switch m {
	case HazardPointers:
		return "PRF"
	case GarbageCollected:
		return "GC"
	case ManualMemory:
		return "MM"
	default:
		return "unknown"
	}
}

// Expectation is the driver's --fail/--success exit-code contract
// (spec.md §6); Unset means the driver exits 0 regardless of the verdict.
type Expectation int

const (
	Unset Expectation = iota
	ExpectSuccess
	ExpectFail
)

// Options collects every runtime tunable spec.md §6 names, replacing the
// source's scattered #define flags with one value the driver constructs
// from CLI flags and passes down to fixpoint.
type Options struct {
	Memory Memory

	// InitToMalloc records --init|--malloc. The CLI logs a warning when it
	// is set; the program's init section always runs verbatim and nothing
	// rewrites it.
	InitToMalloc bool

	// Ages records --ages|--no-ages. Neither the printer nor fixpoint reads
	// it; cell ages are never rendered.
	Ages bool

	// CompareAndSwapIsHardware records --ccas|--hwcas. postCAS in
	// post/cas.go has a single CAS model and does not read this field.
	CompareAndSwapIsHardware bool

	Expect Expectation

	// ReplaceInterferenceWithSummary switches fixpoint from per-statement
	// interference analysis to CHK-MIMIC summary checking
	// (REPLACE_INTERFERENCE_WITH_SUMMARY).
	ReplaceInterferenceWithSummary bool

	// KillIsNoop prunes kill statements from the interference candidates,
	// since they cannot observably affect another thread's shape.
	// SkipNoops records --skip-noops; nothing reads it, and noop statements
	// stay interference candidates.
	SkipNoops  bool
	KillIsNoop bool

	// InterferenceOptimization is spec.md §9's open question: the source
	// leaves it off and its intended behavior is incompletely specified.
	// fixpoint logs a warning and ignores it if set, rather than guessing.
	InterferenceOptimization bool

	// MergeValidPtr records --merge-valid-ptr (default true). Nothing reads
	// it: when encoding.Store.Take folds two configurations together it
	// always AND-merges validPtr, validNext and own, whatever this field
	// says; there is no merge path that leaves validPtr unmerged.
	MergeValidPtr bool

	// AdHocPrecision enables extra, source-specific key-order refinements
	// documented as a coarseness knob in spec.md §6; left available for
	// callers but unused by this implementation's keyOrder (see
	// encoding/order.go).
	AdHocPrecision bool

	// PrintID includes statement ids when rendering a program.
	PrintID bool
}

// Default gives the reference driver's defaults: hazard pointers, no
// init-to-malloc rewrite, cooperative CAS, no expectation, interference
// mode with validPtr AND-merging on.
func Default() Options {
	return Options{
		Memory:        HazardPointers,
		MergeValidPtr: true,
	}
}
