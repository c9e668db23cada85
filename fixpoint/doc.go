// Package fixpoint implements layer L8: the worklist fixed-point driver
// that repeatedly applies post (layer L6) to every configuration in the
// canonical store (layer L7) until no configuration yields anything new,
// alternating a sequential post-image phase with an interference phase
// that lets one configuration's thread stand in for an arbitrary number of
// additional concurrent threads (spec.md §4.7/§4.8).
//
// Grounded on the original implementation's fixpoint.cpp, fixp/cfgpost.cpp
// and fixp/interference.cpp. Two simplifications follow directly from this
// Go port's AST: filter_pc's noop-skipping loop is subsumed by post.Post,
// which already resolves Break and statically-true conditionals to their
// true successor statement rather than stopping at an intermediate program
// counter; and interference's prune_local_relations, left entirely
// commented out in the source, is not ported (spec.md §9 notes it was
// never completed there either).
package fixpoint
