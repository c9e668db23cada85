package program

// StatementKind discriminates the statement shapes of spec.md §4.5/§4.6.
// Record-field and logical-set operations are collapsed into SetOp, which
// carries its own sub-kind, keeping the top-level switch exhaustive and
// small.
type StatementKind int

const (
	AssignKind StatementKind = iota
	MallocKind
	FreeKind
	HazardKind
	QuiescentKind
	LinearisationKind
	CASKind
	IteKind
	WhileKind
	BreakKind
	AtomicKind
	SetOpKind
	KillKind
)

// stmtBase carries the id every statement gets from Build, shared by
// embedding rather than repeated per concrete type.
type stmtBase struct {
	id int
}

func (b *stmtBase) ID() int { return b.id }

// Statement is a tagged sum over every node kind reachable from a
// Function's body. Kind() is the discriminant; callers switch on it and
// type-assert to the concrete type named by that kind — there is no
// separate downcast interface.
type Statement interface {
	Kind() StatementKind
	ID() int
	IsConditional() bool
	namecheck(sc *scope) error
}

// linearStmt is satisfied by every non-branching, non-loop statement: it
// has a single successor, resolved by Build and exposed via Next.
type linearStmt interface {
	Statement
	setNext(Statement)
	Next() Statement
}

type linear struct {
	stmtBase
	next Statement
}

func (l *linear) IsConditional() bool  { return false }
func (l *linear) setNext(s Statement)  { l.next = s }
func (l *linear) Next() Statement      { return l.next }

// Assign is `lhs = rhs`, covering both the plain-variable and
// field-selector forms of spec.md §4.6, and the null-assignment special
// case when RHS is a NullExpr.
type Assign struct {
	linear
	LHS, RHS Expr
}

// NewAssign builds `lhs = rhs`.
func NewAssign(lhs, rhs Expr) *Assign { return &Assign{LHS: lhs, RHS: rhs} }

func (*Assign) Kind() StatementKind { return AssignKind }

func (s *Assign) namecheck(sc *scope) error {
	if err := s.LHS.namecheck(sc); err != nil {
		return err
	}
	return s.RHS.namecheck(sc)
}

// Malloc allocates a fresh cell into Var (spec.md §4.6).
type Malloc struct {
	linear
	Var *VarExpr
}

// NewMalloc builds `malloc(v)`.
func NewMalloc(v *VarExpr) *Malloc { return &Malloc{Var: v} }

func (*Malloc) Kind() StatementKind          { return MallocKind }
func (s *Malloc) namecheck(sc *scope) error  { return s.Var.namecheck(sc) }

// Free reclaims the cell Var points to: a plain free when Retire is false,
// an SMR-tracked retire (hazard-pointer / epoch schemes) when true.
type Free struct {
	linear
	Var    *VarExpr
	Retire bool
}

// NewFree builds `free(v)`.
func NewFree(v *VarExpr) *Free { return &Free{Var: v} }

// NewRetire builds `retire(v)`.
func NewRetire(v *VarExpr) *Free { return &Free{Var: v, Retire: true} }

func (*Free) Kind() StatementKind         { return FreeKind }
func (s *Free) namecheck(sc *scope) error { return s.Var.namecheck(sc) }

// HazardOp is a hazard-pointer set or release on one guard register
// against one local (spec.md §4.6's "hazard-pointer set/release").
type HazardOp struct {
	linear
	Release bool
	Guard   int // which of the (at most two) per-thread guard slots
	Var     *VarExpr
}

// NewHazardSet builds a hazard-pointer set of guard slot guard to v.
func NewHazardSet(guard int, v *VarExpr) *HazardOp {
	return &HazardOp{Guard: guard, Var: v}
}

// NewHazardRelease builds a hazard-pointer release of guard slot guard.
func NewHazardRelease(guard int, v *VarExpr) *HazardOp {
	return &HazardOp{Guard: guard, Var: v, Release: true}
}

func (*HazardOp) Kind() StatementKind { return HazardKind }

func (s *HazardOp) namecheck(sc *scope) error {
	if s.Var == nil {
		return nil
	}
	return s.Var.namecheck(sc)
}

// QuiescentOp marks entry into, or exit from, an SMR quiescent period
// (epoch-based reclamation's "enter"/"leave", spec.md §4.6).
type QuiescentOp struct {
	linear
	Enter bool
}

// NewEnterQuiescent builds the "enter quiescent period" statement.
func NewEnterQuiescent() *QuiescentOp { return &QuiescentOp{Enter: true} }

// NewLeaveQuiescent builds the "leave quiescent period" statement.
func NewLeaveQuiescent() *QuiescentOp { return &QuiescentOp{} }

func (*QuiescentOp) Kind() StatementKind        { return QuiescentKind }
func (*QuiescentOp) namecheck(*scope) error { return nil }

// LinearisationPoint fires an observer event, optionally guarded by Cond
// (spec.md §4.6). On the emit branch it steps the linearizability observer
// by an ENTER event for Func whose data value is the running thread's
// argument (Configuration.Arg[tid]). DataArg is name-checked at Build time
// only; post does not read it.
type LinearisationPoint struct {
	linear
	Cond    Condition
	Func    string
	Thread  bool
	DataArg *VarExpr // nil if the event carries no data value
}

// NewLinearisationPoint builds an unconditional linearisation point.
func NewLinearisationPoint(fn string, thread bool, dataArg *VarExpr) *LinearisationPoint {
	return &LinearisationPoint{Cond: TrueCondition{}, Func: fn, Thread: thread, DataArg: dataArg}
}

// NewGuardedLinearisationPoint builds a linearisation point that only fires
// when cond holds.
func NewGuardedLinearisationPoint(cond Condition, fn string, thread bool, dataArg *VarExpr) *LinearisationPoint {
	return &LinearisationPoint{Cond: cond, Func: fn, Thread: thread, DataArg: dataArg}
}

func (*LinearisationPoint) Kind() StatementKind { return LinearisationKind }

func (s *LinearisationPoint) namecheck(sc *scope) error {
	if err := s.Cond.namecheck(sc); err != nil {
		return err
	}
	if s.DataArg != nil {
		return s.DataArg.namecheck(sc)
	}
	return nil
}

// CompareAndSwap is `CAS(dst, cmp, src)`: on success it performs `dst = src`
// and optionally fires Lin; on failure the configuration is unchanged
// (spec.md §4.6).
type CompareAndSwap struct {
	linear
	Dst, Cmp, Src *VarExpr
	Lin           *LinearisationPoint // nil if the CAS fires no event
}

// NewCAS builds `CAS(dst, cmp, src)` with no linearisation point.
func NewCAS(dst, cmp, src *VarExpr) *CompareAndSwap {
	return &CompareAndSwap{Dst: dst, Cmp: cmp, Src: src}
}

// WithLinearisation attaches a linearisation point fired on the CAS's
// success branch.
func (c *CompareAndSwap) WithLinearisation(lin *LinearisationPoint) *CompareAndSwap {
	c.Lin = lin
	return c
}

func (*CompareAndSwap) Kind() StatementKind { return CASKind }

func (s *CompareAndSwap) namecheck(sc *scope) error {
	for _, v := range []*VarExpr{s.Dst, s.Cmp, s.Src} {
		if err := v.namecheck(sc); err != nil {
			return err
		}
	}
	if s.Lin != nil {
		return s.Lin.namecheck(sc)
	}
	return nil
}

// Kill havocs register Var: spec.md §4.6 resets its shape row to {BT} (plus
// the diagonal and its UNDEF relation) and clears its auxiliary state.
type Kill struct {
	linear
	Var *VarExpr
}

// NewKill builds `kill(v)`.
func NewKill(v *VarExpr) *Kill { return &Kill{Var: v} }

func (*Kill) Kind() StatementKind        { return KillKind }
func (s *Kill) namecheck(sc *scope) error { return s.Var.namecheck(sc) }

// LogicalSet names one of the (at most three) logical data-sets a program
// may maintain (spec.md §4.5): typically "retired" plus up to two
// hazard/guard sets used by the set-operation statements.
type LogicalSet int

const (
	SetA LogicalSet = iota
	SetB
	SetC
)

// SetOpKind2 discriminates the set-operation statement forms.
type SetOpKind2 int

const (
	SetAdd SetOpKind2 = iota
	SetCombine
	SetClear
)

// SetOp mutates one of the program's logical data-sets: add a variable,
// union two sets together, or clear a set (spec.md §4.5's "set operations
// over at most three logical data-sets").
type SetOp struct {
	linear
	Op       SetOpKind2
	Target   LogicalSet
	Arg      *VarExpr   // used by SetAdd
	Combine  LogicalSet // used by SetCombine; Target |= Combine
}

// NewSetAdd builds `target.add(v)`.
func NewSetAdd(target LogicalSet, v *VarExpr) *SetOp {
	return &SetOp{Op: SetAdd, Target: target, Arg: v}
}

// NewSetCombine builds `target |= other`.
func NewSetCombine(target, other LogicalSet) *SetOp {
	return &SetOp{Op: SetCombine, Target: target, Combine: other}
}

// NewSetClear builds `target.clear()`.
func NewSetClear(target LogicalSet) *SetOp {
	return &SetOp{Op: SetClear, Target: target}
}

func (*SetOp) Kind() StatementKind { return SetOpKind }

func (s *SetOp) namecheck(sc *scope) error {
	if s.Arg != nil {
		return s.Arg.namecheck(sc)
	}
	return nil
}

// Atomic treats Body as one indivisible step: post applies the inner
// statements to quiescence on a private worklist with no interference
// interleaved (spec.md §4.6).
type Atomic struct {
	linear
	Body []Statement
}

// NewAtomic builds an atomic block around body.
func NewAtomic(body []Statement) *Atomic { return &Atomic{Body: body} }

func (*Atomic) Kind() StatementKind { return AtomicKind }

func (s *Atomic) namecheck(sc *scope) error { return namecheckBody(s.Body, sc) }

// Ite is if(Cond) Then else Else. It has no successor of its own: Build
// propagates the enclosing next into both branches' terminal statements
// (spec.md §4.5).
type Ite struct {
	stmtBase
	Cond       Condition
	Then, Else []Statement
}

// NewIte builds `if (cond) then else else`.
func NewIte(cond Condition, then, els []Statement) *Ite {
	return &Ite{Cond: cond, Then: then, Else: els}
}

func (*Ite) Kind() StatementKind   { return IteKind }
func (*Ite) IsConditional() bool   { return true }

func (s *Ite) namecheck(sc *scope) error {
	if err := s.Cond.namecheck(sc); err != nil {
		return err
	}
	if err := namecheckBody(s.Then, sc); err != nil {
		return err
	}
	return namecheckBody(s.Else, sc)
}

// While is while(Cond) Body. NextTrue is Body's first statement (or the
// statement after the loop, when Body is empty); NextFalse is the
// statement after the loop. Re-entering the loop after Body completes is
// modelled by Body's terminal next pointing back at the While node itself,
// so the condition is re-evaluated on every iteration.
type While struct {
	stmtBase
	Cond      Condition
	Body      []Statement
	nextFalse Statement
}

// NewWhile builds `while (cond) body`.
func NewWhile(cond Condition, body []Statement) *While {
	return &While{Cond: cond, Body: body}
}

func (*While) Kind() StatementKind { return WhileKind }
func (*While) IsConditional() bool { return true }

// NextTrue gives the statement entered when Cond holds.
func (s *While) NextTrue() Statement {
	if len(s.Body) > 0 {
		return s.Body[0]
	}
	return s.nextFalse
}

// NextFalse gives the statement executed once Cond no longer holds.
func (s *While) NextFalse() Statement { return s.nextFalse }

func (s *While) namecheck(sc *scope) error {
	if err := s.Cond.namecheck(sc); err != nil {
		return err
	}
	return namecheckBody(s.Body, sc)
}

// Break exits the innermost enclosing While, jumping to its NextFalse
// (spec.md §4.5: `next = innermost-while.next_false`).
type Break struct {
	stmtBase
	target *While
}

// NewBreak builds `break`.
func NewBreak() *Break { return &Break{} }

func (*Break) Kind() StatementKind       { return BreakKind }
func (*Break) IsConditional() bool       { return false }
func (*Break) namecheck(*scope) error    { return nil }

// Next gives the statement after the innermost enclosing while; only valid
// after Build.
func (s *Break) Next() Statement { return s.target.NextFalse() }

func namecheckBody(body []Statement, sc *scope) error {
	for _, s := range body {
		if err := s.namecheck(sc); err != nil {
			return err
		}
	}
	return nil
}
