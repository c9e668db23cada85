package program

// ValueKind distinguishes pointer-valued registers from plain data values
// (spec.md §3's Type enum).
type ValueKind int

const (
	Pointer ValueKind = iota
	Data
)

func (k ValueKind) String() string {
	if k == Pointer {
		return "pointer"
	}
	return "data"
}

// Variable is a declared name: a global, a thread-local register, or an
// observer-facing local. Id is the variable's position in the owning
// shape's layout (shape.IndexGlobal / shape.IndexLocal), assigned once by
// Build and never reused.
type Variable struct {
	name   string
	id     int
	global bool
}

// NewVariable declares a variable; id and global are filled in by the
// Program builder, not by callers.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

func (v *Variable) Name() string  { return v.name }
func (v *Variable) ID() int       { return v.id }
func (v *Variable) Global() bool  { return v.global }
func (v *Variable) Local() bool   { return !v.global }
func (v *Variable) Kind() ValueKind { return Pointer }
