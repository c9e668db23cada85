package program

// scope resolves a name to its Variable declaration during namecheck.
// Locals shadow globals, mirroring the original implementation's
// name2decl map being rebuilt per function with locals inserted last.
type scope struct {
	globals map[string]*Variable
	locals  map[string]*Variable
}

func newScope(globals map[string]*Variable) *scope {
	return &scope{globals: globals, locals: map[string]*Variable{}}
}

func (sc *scope) withLocals(locals []*Variable) *scope {
	out := &scope{globals: sc.globals, locals: map[string]*Variable{}}
	for _, v := range locals {
		out.locals[v.name] = v
	}
	return out
}

func (sc *scope) lookup(name string) (*Variable, bool) {
	if v, ok := sc.locals[name]; ok {
		return v, true
	}
	v, ok := sc.globals[name]
	return v, ok
}
