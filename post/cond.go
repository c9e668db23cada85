package post

import (
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shapeops"
	"github.com/wolff09/tmrverify/verifcfg"
)

// evalCondition partitions cfg into the configurations that take the true
// branch and those that take the false branch of cond, grounded on the
// source's eval_eqneq.cpp / condition evaluators. A condition that cannot
// be resolved either way (inconsistent shape) simply contributes to
// neither list.
func evalCondition(cfg *verifcfg.Configuration, cond program.Condition, tid int) (trueCfgs, falseCfgs []*verifcfg.Configuration, err error) {
	switch c := cond.(type) {
	case program.TrueCondition:
		return []*verifcfg.Configuration{cfg.Copy()}, nil, nil

	case *program.EqNeqCondition:
		lhsIdx, ok1 := varIndex(cfg.Shape, c.LHS, tid)
		rhsIdx, ok2 := varIndex(cfg.Shape, c.RHS, tid)
		if !ok1 || !ok2 {
			return nil, nil, ErrSelectorSelector
		}
		eqShape, eqOK := shapeops.IsolatePartialConcretisation(cfg.Shape, lhsIdx, rhsIdx, relset.EQ_)
		neqShape, neqOK := shapeops.IsolatePartialConcretisation(cfg.Shape, lhsIdx, rhsIdx, relset.MT_GT_MF_GF_BT)

		var eqCfgs, neqCfgs []*verifcfg.Configuration
		if eqOK {
			out := cfg.Copy()
			out.Shape = eqShape
			eqCfgs = append(eqCfgs, out)
		}
		if neqOK {
			out := cfg.Copy()
			out.Shape = neqShape
			neqCfgs = append(neqCfgs, out)
		}
		if c.Inverted {
			return neqCfgs, eqCfgs, nil
		}
		return eqCfgs, neqCfgs, nil

	case *program.CompoundCondition:
		lhsTrue, lhsFalse, err := evalCondition(cfg, c.LHS, tid)
		if err != nil {
			return nil, nil, err
		}
		falseCfgs = append(falseCfgs, lhsFalse...)
		for _, mid := range lhsTrue {
			rhsTrue, rhsFalse, err := evalCondition(mid, c.RHS, tid)
			if err != nil {
				return nil, nil, err
			}
			trueCfgs = append(trueCfgs, rhsTrue...)
			falseCfgs = append(falseCfgs, rhsFalse...)
		}
		return trueCfgs, falseCfgs, nil

	case *program.OracleCondition:
		if v, known := cfg.Oracle[c.Name]; known {
			out := cfg.Copy()
			if v {
				return []*verifcfg.Configuration{out}, nil, nil
			}
			return nil, []*verifcfg.Configuration{out}, nil
		}
		trueOut := cfg.Copy()
		trueOut.Oracle[c.Name] = true
		falseOut := cfg.Copy()
		falseOut.Oracle[c.Name] = false
		return []*verifcfg.Configuration{trueOut}, []*verifcfg.Configuration{falseOut}, nil

	default:
		return nil, nil, ErrUnsupportedStatement
	}
}
