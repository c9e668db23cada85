package chkmimic

import "errors"

// ERROR PRIORITY: unknown statement id -> wrong mode -> wrong memory setup -> free needs summary -> uncovered effect.
var (
	// ErrUnknownStatementID indicates a configuration's program counter
	// does not resolve against the built Program, or a function claimed to
	// need a summary but none is attached — an internal consistency
	// failure, never a fault in the program under analysis.
	ErrUnknownStatementID = errors.New("chkmimic: program counter does not resolve to a statement")

	// ErrNotSummaryMode indicates CheckMimic was asked to run over a fixed
	// point that was not built with ReplaceInterferenceWithSummary; the
	// check is meaningless without a declared summary for every function.
	ErrNotSummaryMode = errors.New("chkmimic: available only in summary mode")

	// ErrNotHazardPointers mirrors the source's check restricting
	// CHK-MIMIC to PRF (hazard pointer) semantics.
	ErrNotHazardPointers = errors.New("chkmimic: available for hazard-pointer semantics only")

	// ErrFreeNeedsSummary indicates a Free statement produced an effect a
	// trivial (empty) summary could never cover — the source treats this
	// as a misbehaving-summary construction fault, not a reachable
	// verification verdict.
	ErrFreeNeedsSummary = errors.New("chkmimic: free statement requires a non-empty summary")

	// ErrSummaryUnsound is the genuine verification finding: some
	// effectful post-configuration of the real statement is not covered
	// by any post-configuration of running the function's summary.
	ErrSummaryUnsound = errors.New("chkmimic: declared summary does not cover an effect of the real statement")
)
