/*
Package fst implements unweighted finite-state automata and transducers over
integer labels.

An automaton carries arcs labelled with a pair (input, output). Acceptors are
automata where both labels of every arc are equal. Label 0 is reserved for
epsilon, the empty string. Labels are usually drawn from a SymbolTable, which
maps names to labels and back.

Building Automata

Automata are built state by state:

    A := fst.New()
    s0, s1 := A.AddState(), A.AddState()
    A.SetStart(s0)
    A.AddArc(s0, a, a, s1)   // a is a label
    A.SetFinal(s1, true)

References to states never added are programming errors and panic with a
morphdcg.InvariantViolation.

Operations

The package provides the classic set of rational operations needed to compile
grammars into transducers:

    RemoveEpsilon   remove (ε,ε)-arcs
    Determinize     subset construction over label pairs
    Minimize        trim, then partition refinement
    Connect         keep accessible and co-accessible states only
    Compose         relational composition with an epsilon filter
    Replace         substitute automata for arcs (recursive transition networks)
    Relabel         relabel the input or output tape
    Paths           enumerate accepting paths

Operations never modify their arguments; they return new automata.

Graphviz

Automata may be exported to Graphviz's Dot-format for debugging purposes
with WriteDot.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package fst

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphdcg.fst'.
func tracer() tracing.Trace {
	return tracing.Select("morphdcg.fst")
}
