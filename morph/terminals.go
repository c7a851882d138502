package morph

import (
	"github.com/npillmayer/morphdcg/dcg"
	"github.com/npillmayer/morphdcg/fst"
)

// compileTerminals builds an acceptor for every terminal category and for
// every open-class category referenced by the grammar.
func compileTerminals(rules *dcg.Rules, descr *dcg.Description, syms *fst.SymbolTable) map[fst.Label]*fst.Automaton {
	terms := make(map[fst.Label]*fst.Automaton)
	for _, c := range rules.Undefined() {
		tracer().Infof("open-class category %q", c)
		terms[label(syms, c)] = openClassAutomaton(descr.Graphs, syms)
	}
	for c, alts := range rules.Terminals {
		A := sequenceAutomaton(alts, syms)
		tracer().Debugf("terminal category %q: %d alternatives, %d states", c, len(alts), A.NumStates())
		terms[label(syms, c)] = A
	}
	return terms
}

// openClassAutomaton accepts one or more arbitrary graphemes.
func openClassAutomaton(graphs []string, syms *fst.SymbolTable) *fst.Automaton {
	A := fst.New()
	start, end := A.AddState(), A.AddState()
	A.SetStart(start)
	A.SetFinal(end, true)
	for _, g := range graphs {
		l := label(syms, g)
		A.AddArc(start, l, l, end)
		A.AddArc(end, l, l, end)
	}
	return A
}
