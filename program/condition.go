package program

// ConditionKind discriminates the condition shapes a Conditional or
// LinearisationPoint can guard on (spec.md §4.5/§4.6).
type ConditionKind int

const (
	// TrueConditionKind always takes the true branch; used when a
	// conditional statement has no real guard (e.g. an unconditional
	// linearisation point).
	TrueConditionKind ConditionKind = iota
	// EqNeqConditionKind is `lhs == rhs` or, inverted, `lhs != rhs`.
	EqNeqConditionKind
	// CompoundConditionKind is a conjunction of two conditions.
	CompoundConditionKind
	// OracleConditionKind branches on a pre-declared nondeterministic
	// boolean (spec.md §4.5's "oracle / check-prophecy").
	OracleConditionKind
)

// Condition is a tagged sum over TrueCondition, EqNeqCondition,
// CompoundCondition, and OracleCondition.
type Condition interface {
	Kind() ConditionKind
	String() string
	namecheck(scope *scope) error
}

// TrueCondition is the trivial always-true guard.
type TrueCondition struct{}

func (TrueCondition) Kind() ConditionKind        { return TrueConditionKind }
func (TrueCondition) String() string             { return "true" }
func (TrueCondition) namecheck(*scope) error     { return nil }

// EqNeqCondition is `lhs == rhs` (Inverted == false) or `lhs != rhs`
// (Inverted == true); spec.md §4.6 resolves it via
// shapeops.IsolatePartialConcretisation with relset.EQ_ or the inequality
// relations respectively.
type EqNeqCondition struct {
	LHS, RHS Expr
	Inverted bool
}

// NewEqCondition builds `lhs == rhs`.
func NewEqCondition(lhs, rhs Expr) *EqNeqCondition {
	return &EqNeqCondition{LHS: lhs, RHS: rhs}
}

// NewNeqCondition builds `lhs != rhs`.
func NewNeqCondition(lhs, rhs Expr) *EqNeqCondition {
	return &EqNeqCondition{LHS: lhs, RHS: rhs, Inverted: true}
}

func (c *EqNeqCondition) Kind() ConditionKind { return EqNeqConditionKind }

func (c *EqNeqCondition) String() string {
	op := "=="
	if c.Inverted {
		op = "!="
	}
	return c.LHS.String() + " " + op + " " + c.RHS.String()
}

func (c *EqNeqCondition) namecheck(sc *scope) error {
	if err := c.LHS.namecheck(sc); err != nil {
		return err
	}
	return c.RHS.namecheck(sc)
}

// CompoundCondition is the conjunction LHS && RHS.
type CompoundCondition struct {
	LHS, RHS Condition
}

// NewCompoundCondition builds `lhs && rhs`.
func NewCompoundCondition(lhs, rhs Condition) *CompoundCondition {
	return &CompoundCondition{LHS: lhs, RHS: rhs}
}

func (c *CompoundCondition) Kind() ConditionKind { return CompoundConditionKind }
func (c *CompoundCondition) String() string      { return "(" + c.LHS.String() + " && " + c.RHS.String() + ")" }

func (c *CompoundCondition) namecheck(sc *scope) error {
	if err := c.LHS.namecheck(sc); err != nil {
		return err
	}
	return c.RHS.namecheck(sc)
}

// OracleCondition branches on a nondeterministic, pre-declared boolean: one
// branch commits to the prophecy, the other discards it. Name identifies
// which oracle register the branch reads, so the same oracle can be
// consulted at several check-prophecy points.
type OracleCondition struct {
	Name string
}

// NewOracleCondition builds an oracle guard named name.
func NewOracleCondition(name string) *OracleCondition {
	return &OracleCondition{Name: name}
}

func (c *OracleCondition) Kind() ConditionKind      { return OracleConditionKind }
func (c *OracleCondition) String() string           { return "oracle(" + c.Name + ")" }
func (c *OracleCondition) namecheck(*scope) error   { return nil }
