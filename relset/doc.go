// Package relset is the innermost layer (L0) of the verifier: the six-valued
// relation alphabet (=, ↦, ↤, ⇢, ⇠, ⋈) between cell terms, relation sets over
// that alphabet, and the precomputed consistency table used by shapeops to
// decide whether a triple of relations can have a common witness.
//
// Everything here is pure and allocation-free; RelSet is a uint8 so relation
// sets pass by value with no heap traffic, which matters because every cell
// of every shape is one.
package relset
