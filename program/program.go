package program

import "fmt"

// Program is the root of the AST: the global variables, the threads'
// shared local variable template, an initialization sequence run once
// before any thread starts, and the function table (spec.md §4.5).
//
// Program is built in two phases. NewProgram assembles the tree and
// records the declarations; Build resolves every VarExpr against its
// Variable, assigns every statement a small positive id, computes each
// statement's control-flow successor, and runs the structural validators
// (no duplicate names, no CAS inside a while, summary SSA discipline).
// Only a Program that Build returned without error is safe to hand to
// post or fixpoint.
type Program struct {
	Globals []*Variable
	Locals  []*Variable // per-thread local template, shared shape across threads
	Init    []Statement
	Funcs   []*Function

	byID          map[int]Statement
	funcByNam     map[string]*Function
	funcByStmtID  map[int]*Function
	nextID        int
	numLocalSlots int
}

// NumLocalSlots gives the total number of distinct thread-local shape
// slots Build allocated across the shared local template and every
// function's own locals — the L callers pass to shape.New. Only valid
// after Build.
func (p *Program) NumLocalSlots() int { return p.numLocalSlots }

// NewProgram declares a program's shape. Call Build before use.
func NewProgram(globals, locals []*Variable, init []Statement, funcs []*Function) *Program {
	return &Program{Globals: globals, Locals: locals, Init: init, Funcs: funcs}
}

// Func looks up a function by name; only valid after Build.
func (p *Program) Func(name string) (*Function, bool) {
	f, ok := p.funcByNam[name]
	return f, ok
}

// StatementByID gives the statement with the given id; only valid after
// Build. id 0 ("function returned") is never present.
func (p *Program) StatementByID(id int) (Statement, bool) {
	s, ok := p.byID[id]
	return s, ok
}

// FuncByStatementID gives the function whose body or summary contains the
// statement with the given id. Init statements have no owning function and
// are never present. Mirrors the source's Statement::function() back-link,
// which this port's Statement interface does not carry directly.
func (p *Program) FuncByStatementID(id int) (*Function, bool) {
	f, ok := p.funcByStmtID[id]
	return f, ok
}

// NextID gives the successor statement id to execute after id completes,
// for a non-conditional statement; 0 means the enclosing function
// returned. Conditional statements (Ite, While) are not looked up this
// way: callers branch explicitly via the concrete type's NextTrue/NextFalse
// (While) or Then/Else (Ite).
func (p *Program) NextID(id int) int {
	s, ok := p.byID[id]
	if !ok {
		return 0
	}
	ls, ok := s.(linearStmt)
	if !ok {
		return 0
	}
	n := ls.Next()
	if n == nil {
		return 0
	}
	return n.ID()
}

// Build resolves names, assigns ids, computes control flow, and validates
// the program per spec.md §6's construction rules. It is idempotent only
// in the sense that calling it twice on the same Program re-derives the
// same tables; callers should call it exactly once after NewProgram.
func (p *Program) Build(replaceInterferenceWithSummary bool) error {
	globals := map[string]*Variable{}
	for id, v := range p.Globals {
		v.id = id
		v.global = true
		if _, dup := globals[v.name]; dup {
			return fmt.Errorf("program: global %q: %w", v.name, ErrDuplicateName)
		}
		globals[v.name] = v
	}

	p.funcByNam = map[string]*Function{}
	for _, f := range p.Funcs {
		if f.name == "init" {
			return fmt.Errorf("program: function %q: %w", f.name, ErrReservedName)
		}
		if _, dup := p.funcByNam[f.name]; dup {
			return fmt.Errorf("program: function %q: %w", f.name, ErrDuplicateName)
		}
		p.funcByNam[f.name] = f
	}

	localBase := map[string]*Variable{}
	for id, v := range p.Locals {
		v.id = id
		v.global = false
		if _, dup := localBase[v.name]; dup {
			return fmt.Errorf("program: local %q: %w", v.name, ErrDuplicateName)
		}
		localBase[v.name] = v
	}

	// Each function's own locals get their own slots, distinct from the
	// shared template and from every other function's locals — since a
	// thread runs one function body at a time, these slots are never live
	// simultaneously, but this implementation does not bother packing them
	// back together; it simply gives every declared local a unique index.
	localID := len(p.Locals)
	for _, f := range p.Funcs {
		seen := map[string]bool{}
		for _, v := range f.locals {
			if seen[v.name] {
				return fmt.Errorf("program: function %q: local %q: %w", f.name, v.name, ErrDuplicateName)
			}
			seen[v.name] = true
			v.id = localID
			v.global = false
			localID++
		}
	}
	p.numLocalSlots = localID

	p.byID = map[int]Statement{}
	p.funcByStmtID = map[int]*Function{}
	p.nextID = 1

	baseScope := newScope(globals)
	for _, v := range p.Locals {
		baseScope.locals[v.name] = v
	}

	if err := namecheckBody(p.Init, baseScope); err != nil {
		return err
	}
	propagateNext(p.Init, nil, nil)
	p.assignIDs(p.Init, nil)
	if err := checkNoCASInWhile(p.Init, false); err != nil {
		return err
	}

	for _, f := range p.Funcs {
		fnScope := baseScope.withLocals(append(append([]*Variable{}, p.Locals...), f.locals...))
		if err := namecheckBody(f.body, fnScope); err != nil {
			return err
		}
		propagateNext(f.body, nil, nil)
		p.assignIDs(f.body, f)
		if err := checkNoCASInWhile(f.body, false); err != nil {
			return err
		}

		if replaceInterferenceWithSummary {
			if f.summary == nil {
				return fmt.Errorf("program: function %q: %w", f.name, ErrSummaryDiscipline)
			}
			if err := namecheckBody(f.summary, fnScope); err != nil {
				return err
			}
			propagateNext(f.summary, nil, nil)
			p.assignIDs(f.summary, f)
			if err := checkSummaryDiscipline(f.summary); err != nil {
				return fmt.Errorf("program: function %q: %w", f.name, err)
			}
		}
	}

	return nil
}

func (p *Program) assignIDs(body []Statement, owner *Function) {
	for _, s := range body {
		base := statementBase(s)
		base.id = p.nextID
		p.nextID++
		p.byID[base.id] = s
		if owner != nil {
			p.funcByStmtID[base.id] = owner
		}

		switch st := s.(type) {
		case *Ite:
			p.assignIDs(st.Then, owner)
			p.assignIDs(st.Else, owner)
		case *While:
			p.assignIDs(st.Body, owner)
		case *Atomic:
			p.assignIDs(st.Body, owner)
		}
	}
}

// statementBase recovers the embedded stmtBase of a concrete statement so
// assignIDs can set id without a per-type switch arm for every linear kind.
func statementBase(s Statement) *stmtBase {
	switch st := s.(type) {
	case *Assign:
		return &st.stmtBase
	case *Malloc:
		return &st.stmtBase
	case *Free:
		return &st.stmtBase
	case *HazardOp:
		return &st.stmtBase
	case *QuiescentOp:
		return &st.stmtBase
	case *LinearisationPoint:
		return &st.stmtBase
	case *CompareAndSwap:
		return &st.stmtBase
	case *Kill:
		return &st.stmtBase
	case *SetOp:
		return &st.stmtBase
	case *Atomic:
		return &st.stmtBase
	case *Ite:
		return &st.stmtBase
	case *While:
		return &st.stmtBase
	case *Break:
		return &st.stmtBase
	default:
		panic(fmt.Sprintf("program: unhandled statement type %T", s))
	}
}
