package morph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/morphdcg"
	"github.com/npillmayer/morphdcg/dcg"
	"github.com/npillmayer/morphdcg/fst"
)

// Options configure compilation and parsing.
type Options struct {
	Sequential bool // compile root categories one after the other
	MaxPaths   int  // cap on paths enumerated per root category and word; 0 = no cap
}

// Compile compiles a grammar into one transducer per root category of the
// description. Grammar problems are reported as *morphdcg.GrammarError.
func Compile(rules *dcg.Rules, descr *dcg.Description, opts Options) (*Grammar, error) {
	if err := descr.Check(); err != nil {
		return nil, err
	}
	if err := rules.Validate(descr); err != nil {
		return nil, err
	}
	syms := buildSymbols(rules, descr)
	terms := compileTerminals(rules, descr, syms)
	fsts := make([]*fst.Automaton, len(descr.POS))
	errs := make([]error, len(descr.POS))
	if opts.Sequential {
		for i, pos := range descr.POS {
			fsts[i], errs[i] = compileRoot(pos, rules, descr, syms, terms)
		}
	} else {
		var wg sync.WaitGroup
		for i, pos := range descr.POS {
			wg.Add(1)
			go func(i int, pos string) {
				defer wg.Done()
				fsts[i], errs[i] = compileRoot(pos, rules, descr, syms, terms)
			}(i, pos)
		}
		wg.Wait()
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	stems, affixes := simpleLabels(rules, descr)
	g := &Grammar{
		syms:    syms,
		roots:   append([]string(nil), descr.POS...),
		fsts:    make(map[string]*fst.Automaton, len(descr.POS)),
		bounds:  append([]string(nil), descr.Bounds...),
		stems:   stems,
		affixes: affixes,
		opts:    opts,
	}
	for i, pos := range descr.POS {
		g.fsts[pos] = fsts[i]
	}
	g.init()
	return g, nil
}

// simpleLabels returns the labels which become '{' and '}' in simplified
// parses. Lists given in the description are used as they are. Otherwise the
// default lists are extended: open-class categories mark stems, terminal
// categories mark affixes, and rename targets follow the label they rename.
// A label never ends up in both lists; the default lists take precedence.
func simpleLabels(rules *dcg.Rules, descr *dcg.Description) (stems, affixes []string) {
	stems, affixes = descr.Stems(), descr.Affixes()
	known := make(map[string]bool, len(stems)+len(affixes))
	for _, l := range stems {
		known[l] = true
	}
	for _, l := range affixes {
		known[l] = true
	}
	var targets []dcg.Rename
	for _, pos := range descr.POS {
		targets = append(targets, descr.Renames(pos)...)
	}
	infer := func(list []string, cats []string) []string {
		out := append([]string(nil), list...)
		add := func(l string) {
			if !known[l] {
				known[l] = true
				out = append(out, l)
			}
		}
		for _, c := range cats {
			add(c)
			for _, rn := range targets {
				if rn.From == c && !rn.IsDeletion() {
					add(rn.To)
				}
			}
		}
		sort.Strings(out)
		return out
	}
	if descr.StemLabels == nil {
		stems = infer(stems, rules.Undefined())
	}
	if descr.AffixLabels == nil {
		var closed []string
		for _, h := range rules.Heads() {
			if _, ok := rules.Terminals[h]; ok {
				closed = append(closed, h)
			}
		}
		affixes = infer(affixes, closed)
	}
	return append([]string(nil), stems...), append([]string(nil), affixes...)
}

// compileRoot compiles the transducer for a single root category.
func compileRoot(pos string, rules *dcg.Rules, descr *dcg.Description, syms *fst.SymbolTable,
	terms map[fst.Label]*fst.Automaton) (*fst.Automaton, error) {
	//
	tracer().Infof("compiling root category %q", pos)
	networks := expand(pos, rules, syms)
	A, err := fst.ReplaceRoot(label(syms, pos), networks)
	if err != nil {
		return nil, recursionError(pos, syms, err)
	}
	A = fst.Normalize(A)
	tracer().Debugf("%s: non-terminals replaced, %d states", pos, A.NumStates())
	if A, err = fst.Replace(A, terms); err != nil {
		return nil, recursionError(pos, syms, err)
	}
	A = fst.Normalize(A)
	tracer().Debugf("%s: terminals replaced, %d states", pos, A.NumStates())
	if renames := descr.Renames(pos); len(renames) > 0 {
		pairs := make(map[fst.Label]fst.Label, len(renames))
		for _, rn := range renames {
			from, ok := syms.Resolve(rn.From)
			if !ok {
				return nil, morphdcg.GrammarErrorf(pos, rn.From, "rename of unknown symbol")
			}
			to := fst.Eps
			if !rn.IsDeletion() {
				to = label(syms, rn.To)
			}
			pairs[from] = to
		}
		A = fst.Normalize(fst.Relabel(A, pairs, pairs))
		tracer().Debugf("%s: %d labels renamed, %d states", pos, len(pairs), A.NumStates())
	}
	if A.IsEmpty() {
		return nil, morphdcg.GrammarErrorf(pos, "", "category accepts no words")
	}
	if !A.IsAcceptor() {
		morphdcg.Violation("compile", "%s: label pairs differ before tape split", pos)
	}
	A = splitTapes(A, syms)
	tracer().Infof("%s: transducer has %d states and %d arcs", pos, A.NumStates(), A.NumArcs())
	return A, nil
}

// splitTapes moves graphemes to the input tape and labels to the output tape.
func splitTapes(A *fst.Automaton, syms *fst.SymbolTable) *fst.Automaton {
	ipairs := make(map[fst.Label]fst.Label)
	opairs := make(map[fst.Label]fst.Label)
	for _, l := range A.Labels() {
		if l == fst.Eps {
			continue
		}
		if syms.IsSurface(l) {
			opairs[l] = fst.Eps
		} else {
			ipairs[l] = fst.Eps
		}
	}
	return fst.Relabel(A, ipairs, opairs)
}

func recursionError(pos string, syms *fst.SymbolTable, err error) error {
	var rerr *fst.RecursionError
	if !errors.As(err, &rerr) {
		return fmt.Errorf("compiling %q: %w", pos, err)
	}
	names := make([]string, len(rerr.Cycle))
	for i, l := range rerr.Cycle {
		names[i] = syms.Name(l)
	}
	return morphdcg.GrammarErrorf(pos, names[0], "recursive category: %s", strings.Join(names, " -> "))
}
