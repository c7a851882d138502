package morph

import (
	"github.com/npillmayer/morphdcg/dcg"
	"github.com/npillmayer/morphdcg/fst"
)

// buildSymbols creates the symbol table for a grammar: graphemes, rename
// targets and every name of the rule table, sorted and numbered from 1.
func buildSymbols(rules *dcg.Rules, descr *dcg.Description) *fst.SymbolTable {
	names := append([]string{}, descr.Graphs...)
	names = append(names, descr.RenameTargets()...)
	names = append(names, rules.Symbols()...)
	names = append(names, descr.POS...)
	syms := fst.SymbolTableFrom(names)
	tracer().Debugf("symbol table has %d symbols", syms.Size())
	return syms
}

// label resolves a name known to be in the symbol table.
func label(syms *fst.SymbolTable, name string) fst.Label {
	return syms.MustResolve(name)
}
