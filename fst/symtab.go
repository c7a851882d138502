package fst

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/maps/hashbidimap"
	"github.com/npillmayer/morphdcg"
)

// Label is an arc label. Label 0 is epsilon.
type Label int32

// Eps is the epsilon label.
const Eps Label = 0

// SymbolTable is a bidirectional mapping between symbol names and labels.
// Label 0 always denotes epsilon, named morphdcg.Epsilon.
type SymbolTable struct {
	names *hashbidimap.Map // name -> Label
}

// NewSymbolTable creates a symbol table containing epsilon only.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{names: hashbidimap.New()}
	st.names.Put(morphdcg.Epsilon, Eps)
	return st
}

// SymbolTableFrom creates a symbol table from a list of names. Names are
// sorted and numbered from 1, duplicates are ignored. Any epsilon name in
// the list is skipped.
func SymbolTableFrom(names []string) *SymbolTable {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	st := NewSymbolTable()
	for _, name := range sorted {
		if morphdcg.IsEpsilonName(name) {
			continue
		}
		st.Define(name)
	}
	return st
}

// Define returns the label for name, creating a new one if name is unknown.
func (st *SymbolTable) Define(name string) Label {
	if l, ok := st.Resolve(name); ok {
		return l
	}
	l := Label(st.names.Size())
	st.names.Put(name, l)
	return l
}

// Resolve returns the label for name, if defined.
func (st *SymbolTable) Resolve(name string) (Label, bool) {
	if l, ok := st.names.Get(name); ok {
		return l.(Label), true
	}
	return Eps, false
}

// MustResolve is like Resolve, but panics for an undefined name.
func (st *SymbolTable) MustResolve(name string) Label {
	l, ok := st.Resolve(name)
	if !ok {
		morphdcg.Violation("symbol table", "name %q undefined", name)
	}
	return l
}

// Name returns the name of a label. Unknown labels are rendered as "#<n>".
func (st *SymbolTable) Name(l Label) string {
	if name, ok := st.names.GetKey(l); ok {
		return name.(string)
	}
	return fmt.Sprintf("#%d", l)
}

// Size returns the number of symbols, including epsilon.
func (st *SymbolTable) Size() int {
	return st.names.Size()
}

// IsSurface is true if the name of l is a single character. Everything else,
// epsilon included, is a label symbol.
func (st *SymbolTable) IsSurface(l Label) bool {
	return l != Eps && morphdcg.IsSurface(st.Name(l))
}

// Each calls f for every symbol in label order.
func (st *SymbolTable) Each(f func(Label, string)) {
	for i := 0; i < st.names.Size(); i++ {
		f(Label(i), st.Name(Label(i)))
	}
}

// Names returns all symbol names in label order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, st.Size())
	st.Each(func(_ Label, name string) {
		names = append(names, name)
	})
	return names
}
