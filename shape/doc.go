// Package shape is layer L1 of the verifier: the abstract heap representation
// itself, a square matrix of relset.RelSet cells over a dynamic set of cell
// terms (program variables, the NULL/UNDEF/REUSE constants, and observer
// witnesses). See relset for the relation alphabet and shapeops for the
// consistency/disambiguation/merge algorithms built on top of Shape.
package shape
