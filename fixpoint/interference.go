package fixpoint

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/verifcfg"
)

// interferenceTid is the transient third slot Configuration.Extend admits
// for the interferer thread during one interference step (spec.md §4.8).
const interferenceTid = 2

// mkAllInterference folds the interference of every pair of configurations
// that could plausibly affect each other into work, region by region.
// Regions partition the store by keyOrder, since two configurations with
// different keys could never pass canInterfere's shared-shape check.
// Mirrors fixp/interference.cpp's mk_all_interference.
func mkAllInterference(work *remainingWork, regions [][]*verifcfg.Configuration, prog *program.Program, killIsNoop bool, steps *int) error {
	for _, region := range regions {
		if err := mkRegionalInterference(work, region, prog, killIsNoop, steps); err != nil {
			return err
		}
	}
	return nil
}

func mkRegionalInterference(work *remainingWork, region []*verifcfg.Configuration, prog *program.Program, killIsNoop bool, steps *int) error {
	for i := range region {
		c1 := region[i]
		for j := i; j < len(region); j++ {
			c2 := region[j]
			if !canInterfere(c1, c2, prog, killIsNoop) {
				continue
			}
			r1, err := mkOneInterference(c1, c2, prog)
			if err != nil {
				return err
			}
			r2, err := mkOneInterference(c2, c1, prog)
			if err != nil {
				return err
			}
			work.addAll(r1)
			work.addAll(r2)
			*steps += 2
		}
	}
	return nil
}

// isNoop reports whether a statement's post-image is always an identity
// copy, so it could never be the effectful half of an interference pair.
// Mirrors fixp/interference.cpp's is_noop.
func isNoop(stmt program.Statement, killIsNoop bool) bool {
	switch stmt.Kind() {
	case program.WhileKind, program.BreakKind:
		return true
	case program.KillKind:
		return killIsNoop
	default:
		return false
	}
}

func pcIsNoop(cfg *verifcfg.Configuration, tid int, prog *program.Program, killIsNoop bool) bool {
	if cfg.PC[tid] == 0 {
		return false
	}
	stmt, ok := prog.StatementByID(cfg.PC[tid])
	return ok && isNoop(stmt, killIsNoop)
}

// canInterfere decides whether interferer's next step could plausibly
// affect cfg: matching global info (observer states and thread 0's exact
// program point, argument, and logical sets) plus a shared-shape
// intersection test. Mirrors fixp/interference.cpp's can_interfere.
//
// The source additionally compares per-tid dataset/epoch-selector arrays
// this port's Configuration does not carry (its logical sets are global,
// not per-thread, and LocalEpoch/Offender are unused placeholders per
// verifcfg's own doc comment) — Sets equality stands in for the dataset
// comparison; there is no analogue to port for datasel/epochsel.
func canInterfere(cfg, interferer *verifcfg.Configuration, prog *program.Program, killIsNoop bool) bool {
	if pcIsNoop(cfg, 0, prog, killIsNoop) || pcIsNoop(cfg, 1, prog, killIsNoop) {
		return false
	}
	if pcIsNoop(interferer, 0, prog, killIsNoop) || pcIsNoop(interferer, 1, prog, killIsNoop) {
		return false
	}

	if !cfg.State0.Equal(interferer.State0) || !cfg.State1.Equal(interferer.State1) {
		return false
	}

	if cfg.PC[0] != interferer.PC[0] || cfg.Arg[0] != interferer.Arg[0] {
		return false
	}

	if !setsEqual(cfg.Sets, interferer.Sets) {
		return false
	}

	return doShapesMatch(cfg, interferer)
}

func setsEqual(a, b [3]map[int]bool) bool {
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for k, v := range a[i] {
			if b[i][k] != v {
				return false
			}
		}
	}
	return true
}

// doShapesMatch reports whether every shared-or-thread-0 cell pair admits
// at least one common relation between cfg and interferer, i.e. the two
// configurations could be describing the same concrete heap region.
// Mirrors fixp/interference.cpp's do_shapes_match.
func doShapesMatch(cfg, interferer *verifcfg.Configuration) bool {
	end := cfg.Shape.OffsetLocals(1)
	for i := 0; i < end; i++ {
		for j := i + 1; j < end; j++ {
			if !relset.HaveCommon(cfg.Shape.At(i, j), interferer.Shape.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// mkOneInterference extends victim with interferer's thread-1 state as a
// transient thread 2, correlates the shared shape region by intersection,
// runs one post step for thread 2, and projects the result back down to
// two tracked threads. Mirrors fixp/interference.cpp's mk_one_interference
// and extend_cfg, with prune_local_relations omitted (spec.md §9: the
// source left it entirely commented out, unfinished).
func mkOneInterference(victim, interferer *verifcfg.Configuration, prog *program.Program) ([]*verifcfg.Configuration, error) {
	extended := victim.Copy()
	extended.Extend()
	correlateShared(extended, interferer)
	copyInterfererLocals(extended, interferer)

	extended.PC[interferenceTid] = interferer.PC[1]
	extended.Arg[interferenceTid] = interferer.Arg[1]

	postcfgs, err := mkTidPost(extended, interferenceTid, prog)
	if err != nil {
		return nil, err
	}

	result := make([]*verifcfg.Configuration, 0, len(postcfgs))
	for _, pcf := range postcfgs {
		projectAway(pcf, interferenceTid)
		pcf.Shrink()
		result = append(result, pcf)
	}
	return result, nil
}

// correlateShared narrows every shared-or-thread-0 cell of extended to
// the intersection with interferer's corresponding cell — victim and
// interferer describe the same concrete heap, so only relations both agree
// are possible survive.
func correlateShared(extended, interferer *verifcfg.Configuration) {
	end := extended.Shape.OffsetLocals(1)
	if ie := interferer.Shape.OffsetLocals(1); ie < end {
		end = ie
	}
	for i := 0; i < end; i++ {
		for j := i + 1; j < end; j++ {
			extended.Shape.Set(i, j, relset.Intersection(extended.Shape.At(i, j), interferer.Shape.At(i, j)))
		}
	}
}

// copyInterfererLocals overlays interferer's thread-1 local block onto
// extended's freshly extended thread-2 block: local-to-local relations
// straight from interferer, and local-to-everything-else relations copied
// from the corresponding rows of interferer's shape, since extended's own
// thread-2 locals start out unconstrained ({BT}).
func copyInterfererLocals(extended, interferer *verifcfg.Configuration) {
	n := interferer.Shape.SizeLocals()
	srcBase := interferer.Shape.OffsetLocals(1)
	dstBase := extended.Shape.OffsetLocals(interferenceTid)
	sharedEnd := interferer.Shape.OffsetLocals(1)

	for i := 0; i < n; i++ {
		dstI := dstBase + i
		srcI := srcBase + i

		for j := i; j < n; j++ {
			dstJ := dstBase + j
			srcJ := srcBase + j
			extended.Shape.Set(dstI, dstJ, interferer.Shape.At(srcI, srcJ))
		}

		for k := 0; k < sharedEnd; k++ {
			extended.Shape.Set(dstI, k, interferer.Shape.At(srcI, k))
		}

		extended.Own[dstI] = interferer.Own[srcI]
		extended.ValidPtr[dstI] = interferer.ValidPtr[srcI]
		extended.ValidNext[dstI] = interferer.ValidNext[srcI]
		extended.Guard0[dstI] = interferer.Guard0[srcI]
		extended.Guard1[dstI] = interferer.Guard1[srcI]
		extended.Freed[dstI] = interferer.Freed[srcI]
		extended.Retired[dstI] = interferer.Retired[srcI]
	}
}

// projectAway discards everything this port tracked about thread tid's
// locals before Shrink drops the block entirely: ownership defaults back
// to true (unknown, assume possibly owned by someone), validity and guard
// registers reset. Mirrors fixp/interference.cpp's project_away.
func projectAway(cfg *verifcfg.Configuration, tid int) {
	begin := cfg.Shape.OffsetLocals(tid)
	end := cfg.Shape.Size()
	for i := begin; i < end; i++ {
		cfg.Own[i] = true
		cfg.ValidPtr[i] = false
		cfg.ValidNext[i] = false
		cfg.Guard0[i] = false
		cfg.Guard1[i] = false
	}
	cfg.PC[tid] = 0
	cfg.Arg[tid] = observer.OTHER
}
