package verifcfg

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/shape"
)

// NumSlots is the width of the pc/arg multi-stores: the observed thread,
// a second component used in summary mode, and a transient third slot
// admitted during an interference pass (spec.md §4.2/§4.8).
const NumSlots = 3

// Configuration is one abstract program state explored by fixpoint: a
// program-counter tuple, the two observer MultiStates (linearizability and
// SMR), the argument data value carried into each slot's current function
// call, an owned Shape, and per-cell auxiliary registers not captured by
// the shape's relations (spec.md §4.2/§4.4's Cfg).
//
// Per-cell register slices are indexed exactly like Shape: same length as
// Shape.Size(), same cell-term layout. Offender and LocalEpoch are kept
// for the epoch-based-reclamation variant of spec.md §9's open question;
// nothing in this implementation writes to them.
type Configuration struct {
	PC     [NumSlots]int
	Arg    [NumSlots]observer.DataValue
	State0 observer.MultiState // linearizability observer
	State1 observer.MultiState // SMR observer
	Shape  *shape.Shape

	Own        []bool
	ValidPtr   []bool
	ValidNext  []bool
	Guard0     []bool
	Guard1     []bool
	Freed      []bool
	Retired    []bool
	Oracle     map[string]bool
	Offender   []bool
	LocalEpoch []int

	// Sets holds the (at most three) logical data-sets spec.md §4.5's
	// set-operation statements maintain, keyed by cell-term index.
	Sets [3]map[int]bool
}

// New builds a configuration over a freshly constructed shape, with every
// auxiliary register at its zero value (not owned, not valid, not guarded,
// not freed/retired).
func New(s *shape.Shape, init0, init1 observer.MultiState) *Configuration {
	n := s.Size()
	return &Configuration{
		State0:     init0,
		State1:     init1,
		Shape:      s,
		Own:        make([]bool, n),
		ValidPtr:   make([]bool, n),
		ValidNext:  make([]bool, n),
		Guard0:     make([]bool, n),
		Guard1:     make([]bool, n),
		Freed:      make([]bool, n),
		Retired:    make([]bool, n),
		Oracle:     map[string]bool{},
		Offender:   make([]bool, n),
		LocalEpoch: make([]int, n),
		Sets:       [3]map[int]bool{{}, {}, {}},
	}
}

// Copy gives a deep, independent copy: a cloned shape and fresh register
// slices, safe to mutate without aliasing c.
func (c *Configuration) Copy() *Configuration {
	out := &Configuration{
		PC:     c.PC,
		Arg:     c.Arg,
		State0: c.State0,
		State1: c.State1,
		Shape:  c.Shape.Clone(),
	}
	out.Own = append([]bool(nil), c.Own...)
	out.ValidPtr = append([]bool(nil), c.ValidPtr...)
	out.ValidNext = append([]bool(nil), c.ValidNext...)
	out.Guard0 = append([]bool(nil), c.Guard0...)
	out.Guard1 = append([]bool(nil), c.Guard1...)
	out.Freed = append([]bool(nil), c.Freed...)
	out.Retired = append([]bool(nil), c.Retired...)
	out.Offender = append([]bool(nil), c.Offender...)
	out.LocalEpoch = append([]int(nil), c.LocalEpoch...)
	out.Oracle = make(map[string]bool, len(c.Oracle))
	for k, v := range c.Oracle {
		out.Oracle[k] = v
	}
	for i := range c.Sets {
		out.Sets[i] = make(map[int]bool, len(c.Sets[i]))
		for k, v := range c.Sets[i] {
			out.Sets[i][k] = v
		}
	}
	return out
}

// Extend grows c in place by one fresh thread-local block, mirroring
// Shape.Extend at the Configuration level. Pair with Shrink to reverse it.
// Unlike WithExtension, the extension persists until the caller calls
// Shrink explicitly — used by fixpoint's interference pass, which must run
// post on the extended configuration before projecting the interferer's
// thread back out.
func (c *Configuration) Extend() {
	zero := len(c.Own)
	c.Shape.Extend()
	n := c.Shape.Size()
	c.Own = growBool(c.Own, zero, n)
	c.ValidPtr = growBool(c.ValidPtr, zero, n)
	c.ValidNext = growBool(c.ValidNext, zero, n)
	c.Guard0 = growBool(c.Guard0, zero, n)
	c.Guard1 = growBool(c.Guard1, zero, n)
	c.Freed = growBool(c.Freed, zero, n)
	c.Retired = growBool(c.Retired, zero, n)
	c.Offender = growBool(c.Offender, zero, n)
	c.LocalEpoch = growInt(c.LocalEpoch, zero, n)
}

// Shrink reverses the most recent Extend, dropping the last thread-local
// block and its per-cell registers.
func (c *Configuration) Shrink() {
	newSize := c.Shape.Size() - c.Shape.SizeLocals()
	c.Shape.Shrink()
	c.Own = c.Own[:newSize]
	c.ValidPtr = c.ValidPtr[:newSize]
	c.ValidNext = c.ValidNext[:newSize]
	c.Guard0 = c.Guard0[:newSize]
	c.Guard1 = c.Guard1[:newSize]
	c.Freed = c.Freed[:newSize]
	c.Retired = c.Retired[:newSize]
	c.Offender = c.Offender[:newSize]
	c.LocalEpoch = c.LocalEpoch[:newSize]
}

// WithExtension runs fn against a copy of c that has been Extended, then
// discards the extension — the brief admission of an interferer thread
// during fixpoint's interference pass (spec.md §9).
func (c *Configuration) WithExtension(fn func(*Configuration) error) error {
	extended := c.Copy()
	extended.Extend()
	defer extended.Shrink()
	return fn(extended)
}

func growBool(s []bool, from, to int) []bool {
	out := make([]bool, to)
	copy(out, s[:from])
	return out
}

func growInt(s []int, from, to int) []int {
	out := make([]int, to)
	copy(out, s[:from])
	return out
}

// ResetCell restores cell i's auxiliary registers to their zero values,
// used by Kill (spec.md §4.6) alongside the shape-level row reset.
func (c *Configuration) ResetCell(i int) {
	c.Own[i] = false
	c.ValidPtr[i] = false
	c.ValidNext[i] = false
	c.Guard0[i] = false
	c.Guard1[i] = false
	c.Freed[i] = false
	c.Retired[i] = false
	c.Offender[i] = false
	c.LocalEpoch[i] = 0
}
