package dcg

import (
	"sort"

	"github.com/npillmayer/morphdcg"
)

// Rules is the rule table of a simplified DCG. Both maps hold alternatives per
// category: Terminals lists surface symbol sequences, NonTerminals lists
// category name sequences.
type Rules struct {
	Terminals    map[string][][]string
	NonTerminals map[string][][]string
}

// NewRules creates an empty rule table.
func NewRules() *Rules {
	return &Rules{
		Terminals:    make(map[string][][]string),
		NonTerminals: make(map[string][][]string),
	}
}

// AddTerminal adds a terminal alternative for a category.
func (r *Rules) AddTerminal(head string, symbols ...string) *Rules {
	r.Terminals[head] = append(r.Terminals[head], symbols)
	return r
}

// AddNonTerminal adds a non-terminal alternative for a category.
func (r *Rules) AddNonTerminal(head string, categories ...string) *Rules {
	r.NonTerminals[head] = append(r.NonTerminals[head], categories)
	return r
}

// IsDefined is a predicate: is there a rule for category?
func (r *Rules) IsDefined(category string) bool {
	_, t := r.Terminals[category]
	_, n := r.NonTerminals[category]
	return t || n
}

// Heads returns all categories with a rule, sorted.
func (r *Rules) Heads() []string {
	heads := make([]string, 0, len(r.Terminals)+len(r.NonTerminals))
	for h := range r.Terminals {
		heads = append(heads, h)
	}
	for h := range r.NonTerminals {
		if _, ok := r.Terminals[h]; !ok {
			heads = append(heads, h)
		}
	}
	sort.Strings(heads)
	return heads
}

// Undefined returns the categories which are referenced by non-terminal rules
// but have no rule of their own, sorted.
func (r *Rules) Undefined() []string {
	seen := make(map[string]bool)
	var undefined []string
	for _, alts := range r.NonTerminals {
		for _, alt := range alts {
			for _, c := range alt {
				if !r.IsDefined(c) && !seen[c] {
					seen[c] = true
					undefined = append(undefined, c)
				}
			}
		}
	}
	sort.Strings(undefined)
	return undefined
}

// Symbols returns every name occuring in the rule table, unsorted and
// possibly with duplicates.
func (r *Rules) Symbols() []string {
	var syms []string
	for _, m := range []map[string][][]string{r.Terminals, r.NonTerminals} {
		for h, alts := range m {
			syms = append(syms, h)
			for _, alt := range alts {
				syms = append(syms, alt...)
			}
		}
	}
	return syms
}

// Validate checks a rule table against a description. All problems found are
// reported as *morphdcg.GrammarError; the first one is returned.
func (r *Rules) Validate(d *Description) error {
	alphabet := d.Alphabet()
	for _, h := range sortedKeys(r.Terminals) {
		if _, ok := r.NonTerminals[h]; ok {
			return morphdcg.GrammarErrorf(h, "", "category has terminal and non-terminal rules")
		}
		for _, alt := range r.Terminals[h] {
			if len(alt) == 0 {
				return morphdcg.GrammarErrorf(h, "", "empty terminal alternative")
			}
			for _, g := range alt {
				if !alphabet[g] {
					return morphdcg.GrammarErrorf(h, g, "symbol is not a grapheme of the alphabet")
				}
			}
		}
	}
	var declared map[string]bool
	if d.Undefined != nil {
		declared = make(map[string]bool, len(d.Undefined))
		for _, u := range d.Undefined {
			declared[u] = true
		}
	}
	for _, h := range sortedKeys(r.NonTerminals) {
		for _, alt := range r.NonTerminals[h] {
			if len(alt) == 0 {
				return morphdcg.GrammarErrorf(h, "", "empty alternative")
			}
			for _, c := range alt {
				if err := checkCategoryName(h, c); err != nil {
					return err
				}
				if declared != nil && !r.IsDefined(c) && !declared[c] {
					return morphdcg.GrammarErrorf(h, c, "reference to undefined category")
				}
			}
		}
	}
	if len(d.POS) == 0 {
		return morphdcg.GrammarErrorf("", "", "no root categories given")
	}
	for _, pos := range d.POS {
		if _, ok := r.NonTerminals[pos]; !ok {
			return morphdcg.GrammarErrorf(pos, "", "root category has no non-terminal rule")
		}
	}
	for _, pos := range sortedKeys(d.RenameSyms) {
		for _, rn := range d.RenameSyms[pos] {
			if morphdcg.IsSurface(rn.From) || morphdcg.IsEpsilonName(rn.From) {
				return morphdcg.GrammarErrorf(pos, rn.From, "only labels may be renamed")
			}
			if !rn.IsDeletion() && morphdcg.IsSurface(rn.To) {
				return morphdcg.GrammarErrorf(pos, rn.To, "labels may not be renamed to graphemes")
			}
		}
	}
	return nil
}

// checkCategoryName reports category references which would be taken for
// graphemes or for epsilon. Root categories are never referenced on arcs, so
// their names are not restricted.
func checkCategoryName(category, name string) error {
	if morphdcg.IsSurface(name) {
		return morphdcg.GrammarErrorf(category, name, "referenced category names must have more than one character")
	}
	if morphdcg.IsEpsilonName(name) {
		return morphdcg.GrammarErrorf(category, name, "epsilon is not a category")
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
