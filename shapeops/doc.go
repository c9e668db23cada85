// Package shapeops implements layer L2: the algorithms that keep shapes
// consistent (MakeConcretisation), split them along a decision (Disambiguate,
// IsolatePartialConcretisation), join them back (Merge), and the small
// relation-set utilities (GetRelated, RelateAll, ExtendAll, RemoveSuccessors)
// the post-image calculus is built from.
package shapeops
