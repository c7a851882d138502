package morph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/morphdcg"
	"github.com/npillmayer/morphdcg/fst"
)

// Grammar is a compiled grammar: one transducer per root category. Grammars are
// immutable and may be used by concurrent goroutines.
type Grammar struct {
	syms    *fst.SymbolTable
	roots   []string
	fsts    map[string]*fst.Automaton
	bounds  []string
	stems   []string
	affixes []string
	opts    Options
	simple  *strings.Replacer
}

// init prepares derived fields after compiling or loading.
func (g *Grammar) init() {
	pairs := make([]string, 0, 2*(len(g.stems)+len(g.affixes)))
	for _, s := range g.stems {
		pairs = append(pairs, marker(s), "{")
	}
	for _, a := range g.affixes {
		pairs = append(pairs, marker(a), "}")
	}
	g.simple = strings.NewReplacer(pairs...)
}

// Categories returns the root categories in the order of the description.
func (g *Grammar) Categories() []string {
	return append([]string(nil), g.roots...)
}

// Symbols returns the symbol table of the grammar. Clients must not modify it.
func (g *Grammar) Symbols() *fst.SymbolTable {
	return g.syms
}

// Transducer returns the compiled transducer for a root category.
func (g *Grammar) Transducer(pos string) (*fst.Automaton, error) {
	A, ok := g.fsts[pos]
	if !ok {
		return nil, fmt.Errorf("%w: %q", morphdcg.ErrUnknownCategory, pos)
	}
	return A, nil
}

// SetMaxPaths changes the cap on enumerated paths per root category and word.
// It must not be called while the grammar is in use.
func (g *Grammar) SetMaxPaths(n int) {
	g.opts.MaxPaths = n
}

// selectRoots returns the requested root categories, or all of them.
func (g *Grammar) selectRoots(pos []string) ([]string, error) {
	if len(pos) == 0 {
		return g.roots, nil
	}
	for _, p := range pos {
		if _, ok := g.fsts[p]; !ok {
			return nil, fmt.Errorf("%w: %q", morphdcg.ErrUnknownCategory, p)
		}
	}
	return pos, nil
}

// input builds an acceptor for a word. It returns false if the word contains
// a character which is not a grapheme of the grammar.
func (g *Grammar) input(word string) (*fst.Automaton, bool) {
	A := fst.New()
	s := A.AddState()
	A.SetStart(s)
	for _, r := range word {
		l, ok := g.syms.Resolve(string(r))
		if !ok || !g.syms.IsSurface(l) {
			tracer().Debugf("%q is not a grapheme, no analysis for %q", r, word)
			return nil, false
		}
		next := A.AddState()
		A.AddArc(s, l, l, next)
		s = next
	}
	A.SetFinal(s, true)
	return A, true
}

func marker(label string) string {
	return "<" + label + ">"
}

var stemSpan = regexp.MustCompile(`\{.+?\}`)
