package fst

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// WriteDot exports an automaton to the Graphviz Dot format. If syms is nil,
// labels are printed as numbers.
func WriteDot(A *Automaton, syms *SymbolTable, w io.Writer, name string) error {
	if name == "" {
		name = "fst"
	}
	lines := arraylist.New()
	lines.Add(fmt.Sprintf("digraph %q {", name))
	lines.Add(`graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];`)
	lines.Add(`node [shape=circle, style=filled, fontname=Helvetica, fontsize=10];`)
	lines.Add(`edge [fontname=Helvetica, fontsize=10];`)
	lines.Add("")
	for i, s := range A.states {
		shape := "circle"
		if s.final {
			shape = "doublecircle"
		}
		lines.Add(fmt.Sprintf("s%03d [shape=%s fillcolor=%s label=\"%d\"]",
			i, shape, nodecolor(A, StateID(i)), i))
	}
	for i, s := range A.states {
		for _, a := range s.arcs {
			lines.Add(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]",
				i, a.To, forGraphviz(labelName(syms, a.In)+":"+labelName(syms, a.Out))))
		}
	}
	lines.Add("}")
	it := lines.Iterator()
	for it.Next() {
		if _, err := fmt.Fprintln(w, it.Value().(string)); err != nil {
			return err
		}
	}
	return nil
}

func nodecolor(A *Automaton, s StateID) string {
	if s == A.start {
		return "lightblue"
	}
	if A.states[s].final {
		return "lightgray"
	}
	return "white"
}

func labelName(syms *SymbolTable, l Label) string {
	if l == Eps {
		return "ε"
	}
	if syms == nil {
		return fmt.Sprintf("%d", l)
	}
	return syms.Name(l)
}

func forGraphviz(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
