package post

import (
	"fmt"

	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
)

// varIndex resolves a NullExpr or VarExpr to its cell-term index in s. It
// is not meaningful for a Selector, which the caller must special-case
// (spec.md §4.6 treats `x.next` assignments structurally, not as a plain
// index lookup).
func varIndex(s *shape.Shape, e program.Expr, tid int) (int, bool) {
	switch v := e.(type) {
	case program.NullExpr:
		return s.IndexNull(), true
	case *program.VarExpr:
		return declIndex(s, v.Decl(), tid), true
	default:
		return 0, false
	}
}

func declIndex(s *shape.Shape, decl *program.Variable, tid int) int {
	if decl.Global() {
		return s.IndexGlobal(decl.ID())
	}
	return s.IndexLocal(decl.ID(), tid)
}

func mustVarIndex(s *shape.Shape, e program.Expr, tid int) int {
	idx, ok := varIndex(s, e, tid)
	if !ok {
		panic(fmt.Sprintf("post: %T is not a plain variable reference", e))
	}
	return idx
}

// checkPtrAccess raises ErrDerefNullOrUndef when idx might be NULL (its
// relation to NULL admits EQ) or uninitialized (its relation to UNDEF
// admits MT) — spec.md §4.6's dereference guard, grounded on the source's
// check_ptr_access.
func checkPtrAccess(s *shape.Shape, idx int) error {
	if s.At(idx, s.IndexNull()).Contains(relset.EQ) {
		return ErrDerefNullOrUndef
	}
	if s.At(idx, s.IndexUndef()).Contains(relset.MT) {
		return ErrDerefNullOrUndef
	}
	return nil
}
