// Package post implements layer L6: the post-image calculus (spec.md
// §4.6). Each file groups the transformers for one statement family,
// mirroring the original implementation's post/*.cpp split; Post is the
// single entry point fixpoint calls, dispatching on program.Statement's
// Kind().
//
// Every transformer takes an owning *verifcfg.Configuration and returns
// the (possibly empty, possibly multi-element) set of successor
// configurations, never mutating its input — callers that want to discard
// the original keep doing so explicitly.
package post
