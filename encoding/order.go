package encoding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wolff09/tmrverify/verifcfg"
)

// keyOrder is the coarse bucket key: configurations with different keys can
// never be merged, so they never even compete for the same inner bucket.
// It mirrors key_comparator — freed/retired flags, the SMR observer state,
// and the pairwise relation between every two shared (global) variables —
// deliberately coarser than fullOrder so cheap fields prune the search
// before the expensive full comparison runs.
func keyOrder(cfg *verifcfg.Configuration) string {
	var b strings.Builder
	writeBoolSlice(&b, cfg.Freed)
	b.WriteByte(';')
	writeBoolSlice(&b, cfg.Retired)
	b.WriteByte(';')
	b.WriteString(cfg.State1.String())
	b.WriteByte(';')

	s := cfg.Shape
	begin, end := s.OffsetProgramVars(), s.OffsetLocals(0)
	for i := begin; i < end; i++ {
		for j := i + 1; j < end; j++ {
			fmt.Fprintf(&b, "%d,%d=%s;", i, j, s.At(i, j).String())
		}
	}
	return b.String()
}

// fullOrder picks the exact bucket within a keyOrder group: the program
// counters, the oracle commitments, and both guard states, mirroring
// cfg_comparator's pc/inout/oracle/guard0state/guard1state chain. Shape and
// the merge-eligible registers (ValidPtr/ValidNext/Own) are deliberately
// excluded — those are exactly what Take folds together within a bucket.
func fullOrder(cfg *verifcfg.Configuration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v;", cfg.PC)
	for _, v := range cfg.Arg {
		fmt.Fprintf(&b, "%d,", v)
	}
	b.WriteByte(';')
	writeSortedOracle(&b, cfg.Oracle)
	b.WriteByte(';')
	writeBoolSlice(&b, cfg.Guard0)
	b.WriteByte(';')
	writeBoolSlice(&b, cfg.Guard1)
	return b.String()
}

func writeBoolSlice(b *strings.Builder, bs []bool) {
	for _, v := range bs {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
}

func writeSortedOracle(b *strings.Builder, oracle map[string]bool) {
	names := make([]string, 0, len(oracle))
	for k := range oracle {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(b, "%s=%v,", k, oracle[k])
	}
}
