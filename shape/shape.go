package shape

import (
	"fmt"
	"strings"

	"github.com/wolff09/tmrverify/relset"
)

// Shape is a square matrix of relation sets over the current cell terms.
//
// Layout (spec.md §3), indices into the matrix:
//
//	0              NULL
//	1              UNDEF
//	2              REUSE
//	3..3+O-1       observer variables (O = numObsVars)
//	3+O..3+O+G-1   global variables   (G = numGlobals)
//	3+O+G..        per-thread local blocks, L vars each, one block per thread
//
// Shape owns its backing storage; callers needing an independent copy use
// Clone. Cells are accessed with (row, col) pairs; Set also writes the
// symmetric relation into (col, row), keeping the matrix consistent with
// spec.md §3's invariant shape[j][i] = symmetric(shape[i][j]).
type Shape struct {
	numObsVars int
	numGlobals int
	numLocals  int
	numThreads int
	bounds     int
	cells      []relset.RelSet // bounds*bounds, row-major, matches Dense's flat layout
}

// Stage 1 (Validate): none needed, all parameters are non-negative by construction.
// Stage 2 (Prepare): allocate the flat backing slice, default every cell to
// {BT} save the diagonal ({EQ}), and impose the special-cell invariants.
// Stage 3 (Finalize): return the initialised Shape.
// Complexity: O(n^2) with n = 3+numObsVars+numGlobals+numThreads*numLocals.
func New(numObsVars, numGlobals, numLocals, numThreads int) *Shape {
	bounds := 3 + numObsVars + numGlobals + numThreads*numLocals
	s := &Shape{
		numObsVars: numObsVars,
		numGlobals: numGlobals,
		numLocals:  numLocals,
		numThreads: numThreads,
		bounds:     bounds,
		cells:      make([]relset.RelSet, bounds*bounds),
	}
	for i := 0; i < bounds; i++ {
		for j := 0; j < bounds; j++ {
			s.cells[i*bounds+j] = relset.BT_
		}
		s.cells[i*bounds+i] = relset.EQ_
	}
	// NULL, UNDEF, REUSE are pairwise unrelated ({BT} only), already the
	// default; REUSE ↦ NULL is definite (spec.md §3).
	s.Set(s.IndexReuse(), s.IndexNull(), relset.MT_)
	// Every non-special cell relates to UNDEF only by {MT, GT, BT}.
	for i := s.OffsetVars(); i < bounds; i++ {
		s.Set(i, s.IndexUndef(), relset.MT_GT_BT)
	}
	return s
}

// Size gives the number of cell terms currently in the shape.
func (s *Shape) Size() int { return s.bounds }

// SizeLocals gives the number of per-thread local variables.
func (s *Shape) SizeLocals() int { return s.numLocals }

// SizeObservers gives the number of observer variables.
func (s *Shape) SizeObservers() int { return s.numObsVars }

// NumThreads gives the number of thread-local blocks currently admitted.
func (s *Shape) NumThreads() int { return s.numThreads }

// Cell-term index helpers, spec.md §3's fixed layout.
func (s *Shape) IndexNull() int  { return 0 }
func (s *Shape) IndexUndef() int { return 1 }
func (s *Shape) IndexReuse() int { return 2 }

// OffsetVars is the first index past the three special cells.
func (s *Shape) OffsetVars() int { return 3 }

// IndexObserverVar maps an observer-variable id to its shape index.
func (s *Shape) IndexObserverVar(id int) int {
	return s.OffsetVars() + id
}

// OffsetGlobals is the first index of the global-variable region.
func (s *Shape) OffsetGlobals() int {
	return s.OffsetVars() + s.numObsVars
}

// IndexGlobal maps a global-variable id to its shape index.
func (s *Shape) IndexGlobal(id int) int {
	return s.OffsetGlobals() + id
}

// OffsetProgramVars is the first index of program (non-observer) variables,
// i.e. the start of the global-variable region. Kept distinct from
// OffsetGlobals in naming to mirror the source's offset_program_vars(),
// used by encoding's key order to scope "global x global" pairs.
func (s *Shape) OffsetProgramVars() int { return s.OffsetGlobals() }

// OffsetLocals is the first index of thread tid's local-variable block.
func (s *Shape) OffsetLocals(tid int) int {
	return s.OffsetGlobals() + s.numGlobals + tid*s.numLocals
}

// IndexLocal maps a local-variable id for thread tid to its shape index.
func (s *Shape) IndexLocal(id, tid int) int {
	return s.OffsetLocals(tid) + id
}

func (s *Shape) checkIndex(i int) error {
	if i < 0 || i >= s.bounds {
		return fmt.Errorf("Shape: index %d: %w", i, ErrIndexOutOfRange)
	}
	return nil
}

// At reads the relation set at (i, j).
func (s *Shape) At(i, j int) relset.RelSet {
	return s.cells[i*s.bounds+j]
}

func (s *Shape) setRaw(i, j int, rs relset.RelSet) {
	s.cells[i*s.bounds+j] = rs
}

// Set writes rs into (i, j) and the symmetric relation into (j, i),
// preserving the shape's symmetry invariant (spec.md §3).
func (s *Shape) Set(i, j int, rs relset.RelSet) {
	s.setRaw(i, j, rs)
	s.setRaw(j, i, relset.Symmetric(rs))
}

// AddRelation adds r to cell (i, j), and Symmetric(r) to (j, i).
func (s *Shape) AddRelation(i, j int, r relset.Rel) {
	s.setRaw(i, j, s.At(i, j)|relset.Singleton(r))
	s.setRaw(j, i, s.At(j, i)|relset.Singleton(r.Symmetric()))
}

// RemoveRelation removes r from cell (i, j), and Symmetric(r) from (j, i).
func (s *Shape) RemoveRelation(i, j int, r relset.Rel) {
	s.setRaw(i, j, s.At(i, j)&^relset.Singleton(r))
	s.setRaw(j, i, s.At(j, i)&^relset.Singleton(r.Symmetric()))
}

// Clone gives an independent deep copy of the shape.
func (s *Shape) Clone() *Shape {
	out := &Shape{
		numObsVars: s.numObsVars,
		numGlobals: s.numGlobals,
		numLocals:  s.numLocals,
		numThreads: s.numThreads,
		bounds:     s.bounds,
		cells:      make([]relset.RelSet, len(s.cells)),
	}
	copy(out.cells, s.cells)
	return out
}

// Extend appends one thread's worth of locals, setting the new rows/columns
// to the default {BT} relation (save the diagonal, which is {EQ}).
// extend() then shrink() is a no-op (spec.md §8).
func (s *Shape) Extend() {
	oldBounds := s.bounds
	newBounds := oldBounds + s.numLocals
	newCells := make([]relset.RelSet, newBounds*newBounds)
	for i := 0; i < newBounds; i++ {
		for j := 0; j < newBounds; j++ {
			newCells[i*newBounds+j] = relset.BT_
		}
		newCells[i*newBounds+i] = relset.EQ_
	}
	for i := 0; i < oldBounds; i++ {
		for j := 0; j < oldBounds; j++ {
			newCells[i*newBounds+j] = s.cells[i*oldBounds+j]
		}
	}
	s.cells = newCells
	s.bounds = newBounds
	s.numThreads++
}

// Shrink drops the last thread-local block added by Extend.
func (s *Shape) Shrink() {
	newBounds := s.bounds - s.numLocals
	newCells := make([]relset.RelSet, newBounds*newBounds)
	for i := 0; i < newBounds; i++ {
		for j := 0; j < newBounds; j++ {
			newCells[i*newBounds+j] = s.cells[i*s.bounds+j]
		}
	}
	s.cells = newCells
	s.bounds = newBounds
	s.numThreads--
}

// WithExtension runs fn against a shape temporarily extended by one
// thread-local block, unconditionally shrinking back on return (spec.md §9's
// "scoped extend" re-architecture note: the engine passes a mutable shape
// into a closure and shrink always runs on exit, success or error).
func (s *Shape) WithExtension(fn func(*Shape) error) error {
	s.Extend()
	defer s.Shrink()
	return fn(s)
}

// Compare gives a total order over shapes of equal size, comparing the
// upper triangle left-to-right, top-to-bottom (mirrors Shape::operator< in
// the source, used so encoding buckets can be kept in a sorted container).
// Shapes of different size compare by size first so Compare remains total.
func (s *Shape) Compare(other *Shape) int {
	if s.bounds != other.bounds {
		if s.bounds < other.bounds {
			return -1
		}
		return 1
	}
	for i := 0; i < s.bounds; i++ {
		for j := i + 1; j < s.bounds; j++ {
			l, r := s.At(i, j), other.At(i, j)
			if l != r {
				if l < r {
					return -1
				}
				return 1
			}
		}
	}
	return 0
}

// Equal reports whether two shapes of equal size have identical cells.
func (s *Shape) Equal(other *Shape) bool {
	return s.Compare(other) == 0
}

// String renders the shape as a row/column matrix of relation-set glyphs,
// matching Shape::print in the source.
func (s *Shape) String() string {
	var sb strings.Builder
	sb.WriteString("      \t")
	for i := 0; i < s.bounds; i++ {
		fmt.Fprintf(&sb, "%d   \t ", i)
	}
	sb.WriteByte('\n')
	for row := 0; row < s.bounds; row++ {
		fmt.Fprintf(&sb, "%d:   \t", row)
		for col := 0; col < s.bounds; col++ {
			sb.WriteString(s.At(row, col).String())
			sb.WriteString("\t ")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
