package morph

import (
	"github.com/npillmayer/morphdcg/dcg"
	"github.com/npillmayer/morphdcg/fst"
)

// expand builds an acceptor over category labels for the root and for every
// non-terminal category reachable from it. Every category is built once;
// references to other categories are plain labels, so recursive grammars
// terminate here and are detected during substitution.
func expand(root string, rules *dcg.Rules, syms *fst.SymbolTable) map[fst.Label]*fst.Automaton {
	networks := make(map[fst.Label]*fst.Automaton)
	worklist := []string{root}
	for len(worklist) > 0 {
		c := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		l := label(syms, c)
		if _, done := networks[l]; done {
			continue
		}
		alts := rules.NonTerminals[c]
		networks[l] = sequenceAutomaton(alts, syms)
		tracer().Debugf("category %q: %d alternatives, %d states", c, len(alts), networks[l].NumStates())
		for _, alt := range alts {
			for _, ref := range alt {
				if _, nt := rules.NonTerminals[ref]; nt {
					if _, done := networks[label(syms, ref)]; !done {
						worklist = append(worklist, ref)
					}
				}
			}
		}
	}
	return networks
}

// sequenceAutomaton builds an acceptor for the alternatives of a category as
// a trie of labels, then normalizes it.
func sequenceAutomaton(alts [][]string, syms *fst.SymbolTable) *fst.Automaton {
	A := fst.New()
	start := A.AddState()
	A.SetStart(start)
	for _, alt := range alts {
		s := start
		for _, c := range alt {
			next := A.AddState()
			l := label(syms, c)
			A.AddArc(s, l, l, next)
			s = next
		}
		A.SetFinal(s, true)
	}
	return fst.Normalize(A)
}
