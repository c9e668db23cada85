package relset

import "sync"

// consistentEQ answers whether x=z is consistent with x~y (xy) and y~z (yz).
func consistentEQ(xy, yz RelSet) bool {
	return HaveCommon(xy, Symmetric(yz))
}

// consistentMT answers whether x↦z is consistent with xy and yz.
func consistentMT(xy, yz RelSet) bool {
	if xy.Contains(MT) && yz.Contains(EQ) {
		return true
	}
	if xy.Contains(MF) && yz.Contains(GT) {
		return true
	}
	if xy.Contains(GT) && HaveCommon(yz, MF_GF) {
		return true
	}
	if xy.Contains(GF) && yz.Contains(GT) {
		return true
	}
	if xy.Contains(EQ) && yz.Contains(MT) {
		return true
	}
	if xy.Contains(BT) && HaveCommon(yz, MT_GT_BT) {
		return true
	}
	return false
}

// consistentMF answers whether x↤z is consistent, derived from consistentMT
// by symmetry (x↤z is equivalent to z↦x, i.e. flip the roles of xy and yz).
func consistentMF(xy, yz RelSet) bool {
	return consistentMT(Symmetric(yz), Symmetric(xy))
}

// consistentGT answers whether x⇢z is consistent with xy and yz.
func consistentGT(xy, yz RelSet) bool {
	if xy.Contains(MT) && HaveCommon(yz, MT_GT) {
		return true
	}
	if xy.Contains(MF) && yz.Contains(GT) {
		return true
	}
	if xy.Contains(GT) && HaveCommon(yz, EQ_MT_MF_GT_GF) {
		return true
	}
	if xy.Contains(GF) && yz.Contains(GT) {
		return true
	}
	if xy.Contains(EQ) && yz.Contains(GT) {
		return true
	}
	if xy.Contains(BT) && HaveCommon(yz, MT_GT_BT) {
		return true
	}
	return false
}

// consistentGF answers whether x⇠z is consistent, derived from consistentGT by symmetry.
func consistentGF(xy, yz RelSet) bool {
	return consistentGT(Symmetric(yz), Symmetric(xy))
}

// consistentBT answers whether x⋈z is consistent with xy and yz.
func consistentBT(xy, yz RelSet) bool {
	if xy.Contains(MT) && HaveCommon(yz, MF_GF_BT) {
		return true
	}
	if xy.Contains(MF) && yz.Contains(BT) {
		return true
	}
	if xy.Contains(GT) && HaveCommon(yz, MF_GF_BT) {
		return true
	}
	if xy.Contains(GF) && yz.Contains(BT) {
		return true
	}
	if xy.Contains(EQ) && yz.Contains(BT) {
		return true
	}
	if xy.Contains(BT) {
		return true
	}
	return false
}

// consistentFn is the per-relation witness predicate, indexed by Rel.
var consistentFn = [numRels]func(xy, yz RelSet) bool{
	EQ: consistentEQ,
	MT: consistentMT,
	MF: consistentMF,
	GT: consistentGT,
	GF: consistentGF,
	BT: consistentBT,
}

// lookupTable is a 6 x 64 x 64 precomputed table: lookupTable[rel][xy][yz].
type lookupTable [numRels][64][64]bool

var (
	tableOnce sync.Once
	table     lookupTable
)

// buildTable fills the static 64x64x6 consistency table once, as called for
// by spec.md §4.1 and §9 (precomputed, lazily initialised singleton).
func buildTable() {
	for rel := Rel(0); rel < numRels; rel++ {
		fn := consistentFn[rel]
		for xy := 0; xy < 64; xy++ {
			for yz := 0; yz < 64; yz++ {
				table[rel][xy][yz] = fn(RelSet(xy), RelSet(yz))
			}
		}
	}
}

// ConsistentRel answers whether there exists some witness y such that x~z
// (with ~ = xz) is consistent with x(xy)y and y(yz)z, per the standard
// transitivity table for the six relations (spec.md §4.1).
func ConsistentRel(xz Rel, xy, yz RelSet) bool {
	tableOnce.Do(buildTable)
	return table[xz][xy][yz]
}
