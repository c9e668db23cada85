package abaaware

import "errors"

// ERROR PRIORITY: unknown statement id -> inverted comparison -> not exactly one shared side -> both invalid -> malicious retry -> malicious escape.
var (
	// ErrUnknownStatementID indicates a configuration's program counter
	// does not resolve against the built Program — an internal
	// consistency failure, never a fault in the program under analysis.
	ErrUnknownStatementID = errors.New("abaaware: program counter does not resolve to a statement")

	// ErrInvertedComparison indicates an ABA-prone-shaped condition used
	// != instead of ==; the source only knows how to reason about ==.
	ErrInvertedComparison = errors.New("abaaware: ABA-prone condition must use ==, not !=")

	// ErrNotExactlyOneShared indicates neither or both sides of an
	// otherwise ABA-prone-shaped comparison are thread-local.
	ErrNotExactlyOneShared = errors.New("abaaware: ABA-prone condition must compare exactly one shared pointer")

	// ErrBothInvalid indicates both sides of the comparison are
	// unvalidated pointers, which the source cannot classify.
	ErrBothInvalid = errors.New("abaaware: ABA-prone condition compares two invalid pointers")

	// ErrMaliciousRetry is the genuine verification finding for the retry
	// side: some configuration that loops back to the comparison does not
	// match the state the check assumed, meaning the thread could retry
	// into a reused cell unnoticed.
	ErrMaliciousRetry = errors.New("abaaware: retrying configuration does not match the expected pre-comparison state")

	// ErrMaliciousEscape is the genuine verification finding for the
	// no-retry side: a configuration that escapes the retry loop could
	// have taken the comparison's true branch instead, meaning ABA went
	// undetected.
	ErrMaliciousEscape = errors.New("abaaware: non-retrying configuration could have taken the comparison's true branch")

	// ErrInvariantViolated guards the source's unfinished TODO ("ensure
	// that the shared state was not changed when computing the
	// continuations cfgs"): this port checks it as a runtime assertion
	// instead of silently assuming it, per spec.md §9.
	ErrInvariantViolated = errors.New("abaaware: shared heap shape changed while searching for a retry or escape")
)
