package encoding

import (
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/verifcfg"
)

// bucket is the inner store for one keyOrder group, keyed by fullOrder.
type bucket map[string]*verifcfg.Configuration

// Store is the two-level bucketed canonical store fixpoint's worklist
// de-duplicates configurations against (spec.md §4.7), grounded on the
// source's Encoding.
type Store struct {
	buckets map[string]bucket
	count   int
}

// NewStore gives an empty store.
func NewStore() *Store {
	return &Store{buckets: map[string]bucket{}}
}

// Size gives the total number of distinct configurations held, summed
// across every bucket.
func (s *Store) Size() int { return s.count }

// Take folds cfg into the store: if no configuration shares cfg's key and
// full order, cfg is inserted verbatim and Take reports true (new). If one
// does, its shape is widened by a pointwise union with cfg's shape and its
// ValidPtr/ValidNext/Own registers are narrowed by conjunction with cfg's;
// Take reports whether that changed anything. The returned Configuration is
// always the one now stored, never cfg itself once a merge occurs.
// Grounded on Encoding::take.
func (s *Store) Take(cfg *verifcfg.Configuration) (bool, *verifcfg.Configuration) {
	key := keyOrder(cfg)
	b, ok := s.buckets[key]
	if !ok {
		b = bucket{}
		s.buckets[key] = b
	}

	full := fullOrder(cfg)
	existing, ok := b[full]
	if !ok {
		b[full] = cfg
		s.count++
		return true, cfg
	}

	return mergeInto(existing, cfg), existing
}

// All gives every configuration currently held, in no particular order.
func (s *Store) All() []*verifcfg.Configuration {
	out := make([]*verifcfg.Configuration, 0, s.count)
	for _, b := range s.buckets {
		for _, cfg := range b {
			out = append(out, cfg)
		}
	}
	return out
}

// Regions gives every coarse keyOrder bucket as its own slice — the unit
// fixpoint's interference pass compares configurations within, since two
// configurations in different regions could never satisfy canInterfere's
// shared-shape check anyway (spec.md §4.8; mirrors the source's
// Encoding::operator[] iteration over key buckets in
// mk_all_interference).
func (s *Store) Regions() [][]*verifcfg.Configuration {
	out := make([][]*verifcfg.Configuration, 0, len(s.buckets))
	for _, b := range s.buckets {
		region := make([]*verifcfg.Configuration, 0, len(b))
		for _, cfg := range b {
			region = append(region, cfg)
		}
		out = append(out, region)
	}
	return out
}

// mergeInto widens dst's shape and narrows its merge-eligible registers
// with src's, reporting whether anything about dst changed.
func mergeInto(dst, src *verifcfg.Configuration) bool {
	updated := false

	n := dst.Shape.Size()
	for row := 0; row < n; row++ {
		for col := row; col < n; col++ {
			both := relset.Union(dst.Shape.At(row, col), src.Shape.At(row, col))
			if both != dst.Shape.At(row, col) {
				dst.Shape.Set(row, col, both)
				updated = true
			}
		}
	}

	for i := dst.Shape.OffsetLocals(0); i < n; i++ {
		if narrow(&dst.ValidPtr[i], dst.ValidPtr[i] && src.ValidPtr[i]) {
			updated = true
		}
		if narrow(&dst.ValidNext[i], dst.ValidNext[i] && src.ValidNext[i]) {
			updated = true
		}
		if narrow(&dst.Own[i], dst.Own[i] && src.Own[i]) {
			updated = true
		}
	}

	return updated
}

func narrow(field *bool, newValue bool) bool {
	if *field == newValue {
		return false
	}
	*field = newValue
	return true
}
