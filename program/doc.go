// Package program implements layer L4: the program AST that post and
// fixpoint interpret. It follows spec.md §4.5's re-architecture note — the
// original class hierarchy (Expr/NullExpr/VarExpr/Selector, a dozen
// Statement subclasses) becomes a closed set of Go interfaces discriminated
// by a Kind() method, so callers use exhaustive switches instead of runtime
// downcasts.
//
// Callers assemble the tree from statement slices and Ite/While/Atomic
// nodes with ordinary Go pointers and pass it to NewProgram. Build() then
// assigns every Statement a small positive id (0 is reserved for "function
// returned"), computes the control-flow "next" statement for every node per
// the rules of spec.md §4.5 and stores it as a pointer on the node, and
// indexes statements by id (StatementByID, NextID). There is no separate
// id-keyed next table: post follows the successor pointers, while a
// Configuration records only statement ids as its program counters, which
// keeps it comparable without dragging AST pointers into the encoding key.
package program
