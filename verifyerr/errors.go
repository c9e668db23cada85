package verifyerr

import (
	"errors"
	"fmt"

	"github.com/wolff09/tmrverify/abaaware"
	"github.com/wolff09/tmrverify/chkmimic"
	"github.com/wolff09/tmrverify/post"
)

// ConformanceError wraps a program-under-analysis fault (spec.md §7 kind 1):
// fixpoint caught this error from a post transformer and is reporting it as
// a verification verdict, not a tool bug.
type ConformanceError struct {
	Reason string
	Err    error
}

func (e *ConformanceError) Error() string {
	return fmt.Sprintf("conformance violated: %s: %v", e.Reason, e.Err)
}

func (e *ConformanceError) Unwrap() error { return e.Err }

// ToolError wraps a verifier-internal fault (spec.md §7 kind 2): malformed
// input or a construct the verifier does not support. Fatal — the analysis
// stops rather than silently ignoring it.
type ToolError struct {
	Reason string
	Err    error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool error: %s: %v", e.Reason, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// conformanceSentinels lists every sentinel post.Post, chkmimic.CheckMimic,
// or abaaware.CheckABAAwareness can raise that reports a real fault in the
// program under analysis (a misbehaving summary, or a retry/escape that
// slips an ABA past its guard, both count as such), rather than a
// construct or configuration the verifier itself failed to handle.
var conformanceSentinels = []error{
	post.ErrDerefNullOrUndef,
	post.ErrDoubleFree,
	post.ErrAliasedFree,
	post.ErrWouldCycle,
	post.ErrOwnedGuarded,
	post.ErrObserverViolation,
	post.ErrSMRViolation,
	chkmimic.ErrFreeNeedsSummary,
	chkmimic.ErrSummaryUnsound,
	abaaware.ErrMaliciousRetry,
	abaaware.ErrMaliciousEscape,
}

// Classify wraps err as a ConformanceError if it matches one of the known
// program-under-analysis faults, or as a ToolError otherwise. nil passes
// through unchanged. Grounded on spec.md §7's two-kind split.
func Classify(reason string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range conformanceSentinels {
		if errors.Is(err, sentinel) {
			return &ConformanceError{Reason: reason, Err: err}
		}
	}
	return &ToolError{Reason: reason, Err: err}
}

// IsConformance reports whether err (or something it wraps) is a
// ConformanceError — the shape fixpoint checks before deciding whether to
// report a verdict or abort with a diagnostic.
func IsConformance(err error) bool {
	var ce *ConformanceError
	return errors.As(err, &ce)
}

