package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/wolff09/tmrverify/options"
	"github.com/wolff09/tmrverify/program"
)

// printProgram renders prog's globals, per-thread locals, init sequence,
// and every function's body (and summary, when one is attached) to w.
//
// Text rendering of *configurations* is an external collaborator per
// spec.md §1 ("Text rendering of configurations" is out of scope for the
// core); a program's own source, by contrast, is exactly what spec.md §6's
// reference CLI is required to print before the verdict, so this printer
// lives here rather than in package program. opts.PrintID controls whether
// each statement's id is shown alongside it (spec.md §6's PRINT_ID flag).
func printProgram(w io.Writer, prog *program.Program, opts options.Options) {
	fmt.Fprintln(w, "program:")
	printVarList(w, "  globals", prog.Globals)
	printVarList(w, "  locals ", prog.Locals)

	fmt.Fprintln(w, "  init:")
	printBody(w, "    ", prog.Init, opts)

	for _, f := range prog.Funcs {
		fmt.Fprintf(w, "  function %s:\n", f.Name())
		printBody(w, "    ", f.Body(), opts)
		if f.HasSummary() {
			fmt.Fprintf(w, "  function %s.summary:\n", f.Name())
			printBody(w, "    ", f.Summary(), opts)
		}
	}
}

func printVarList(w io.Writer, label string, vars []*program.Variable) {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name()
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(names, ", "))
}

func printBody(w io.Writer, indent string, body []program.Statement, opts options.Options) {
	for _, s := range body {
		printStatement(w, indent, s, opts)
	}
}

func printStatement(w io.Writer, indent string, s program.Statement, opts options.Options) {
	id := ""
	if opts.PrintID {
		id = fmt.Sprintf("[%d] ", s.ID())
	}
	switch st := s.(type) {
	case *program.Assign:
		fmt.Fprintf(w, "%s%s%s = %s\n", indent, id, st.LHS.String(), st.RHS.String())
	case *program.Malloc:
		fmt.Fprintf(w, "%s%smalloc(%s)\n", indent, id, st.Var.String())
	case *program.Free:
		verb := "free"
		if st.Retire {
			verb = "retire"
		}
		fmt.Fprintf(w, "%s%s%s(%s)\n", indent, id, verb, st.Var.String())
	case *program.HazardOp:
		verb := "hp_set"
		if st.Release {
			verb = "hp_release"
		}
		fmt.Fprintf(w, "%s%s%s(%d, %s)\n", indent, id, verb, st.Guard, varOrNil(st.Var))
	case *program.QuiescentOp:
		verb := "leave_quiescent"
		if st.Enter {
			verb = "enter_quiescent"
		}
		fmt.Fprintf(w, "%s%s%s\n", indent, id, verb)
	case *program.LinearisationPoint:
		fmt.Fprintf(w, "%s%slin(%s) if %s\n", indent, id, st.Func, st.Cond.String())
	case *program.CompareAndSwap:
		fmt.Fprintf(w, "%s%sCAS(%s, %s, %s)\n", indent, id, st.Dst.String(), st.Cmp.String(), st.Src.String())
		if st.Lin != nil {
			printStatement(w, indent+"  ", st.Lin, opts)
		}
	case *program.Kill:
		fmt.Fprintf(w, "%s%skill(%s)\n", indent, id, st.Var.String())
	case *program.SetOp:
		printSetOp(w, indent, id, st)
	case *program.Atomic:
		fmt.Fprintf(w, "%s%satomic {\n", indent, id)
		printBody(w, indent+"  ", st.Body, opts)
		fmt.Fprintf(w, "%s}\n", indent)
	case *program.Ite:
		fmt.Fprintf(w, "%s%sif (%s) {\n", indent, id, st.Cond.String())
		printBody(w, indent+"  ", st.Then, opts)
		fmt.Fprintf(w, "%s} else {\n", indent)
		printBody(w, indent+"  ", st.Else, opts)
		fmt.Fprintf(w, "%s}\n", indent)
	case *program.While:
		fmt.Fprintf(w, "%s%swhile (%s) {\n", indent, id, st.Cond.String())
		printBody(w, indent+"  ", st.Body, opts)
		fmt.Fprintf(w, "%s}\n", indent)
	case *program.Break:
		fmt.Fprintf(w, "%s%sbreak\n", indent, id)
	default:
		fmt.Fprintf(w, "%s%s<%T>\n", indent, id, s)
	}
}

func printSetOp(w io.Writer, indent, id string, st *program.SetOp) {
	switch st.Op {
	case program.SetAdd:
		fmt.Fprintf(w, "%s%sset%d.add(%s)\n", indent, id, st.Target, varOrNil(st.Arg))
	case program.SetCombine:
		fmt.Fprintf(w, "%s%sset%d |= set%d\n", indent, id, st.Target, st.Combine)
	case program.SetClear:
		fmt.Fprintf(w, "%s%sset%d.clear()\n", indent, id, st.Target)
	}
}

func varOrNil(v *program.VarExpr) string {
	if v == nil {
		return "-"
	}
	return v.String()
}
