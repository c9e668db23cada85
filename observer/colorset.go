package observer

import "github.com/bits-and-blooms/bitset"

// Colorset is a set of observer-state colors (the is_colored machinery of
// spec.md §4.4). fixpoint does not consult it: interference candidates are
// not pruned by color, and every candidate pair runs the interference post.
//
// Colors are small non-negative integers assigned by the observer author
// (State.WithColor); a dense bitset is the natural representation, same
// role as the register/constraint bitsets in a constraint-compiler's static
// analysis passes.
type Colorset struct {
	bits *bitset.BitSet
}

// NewColorset creates an empty color set.
func NewColorset() *Colorset {
	return &Colorset{bits: bitset.New(0)}
}

// Add records that color is in play.
func (c *Colorset) Add(color int) {
	c.bits.Set(uint(color))
}

// AddState records every color carried by the MultiState's component states.
func (c *Colorset) AddState(m MultiState) {
	for _, s := range m.States() {
		if s.IsColored() {
			c.Add(s.Color())
		}
	}
}

// Has reports whether color has been recorded.
func (c *Colorset) Has(color int) bool {
	return c.bits.Test(uint(color))
}

// Intersects reports whether c and other share any recorded color.
func (c *Colorset) Intersects(other *Colorset) bool {
	return c.bits.IntersectionCardinality(other.bits) > 0
}

// Clone gives an independent copy of the color set.
func (c *Colorset) Clone() *Colorset {
	return &Colorset{bits: c.bits.Clone()}
}
