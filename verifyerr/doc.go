// Package verifyerr classifies every error the verifier can raise into one
// of spec.md §7's two kinds: a ConformanceError reports a real fault in the
// program under analysis (the post transformer found a dereference of a
// dangling pointer, a double-free, an observer violation, ...) and is a
// verification result, not a bug; a ToolError reports a fault in the
// verifier's own machinery (malformed summary, unsupported syntax, an empty
// relation cell) and is fatal — the analysis stops and the diagnostic is
// reported as a tool defect, never silently swallowed.
//
// Grounded on katalvlaran-lvlath/matrix/errors.go's sentinel-set convention
// (package-level vars, documented priority, %w only at boundaries).
package verifyerr
