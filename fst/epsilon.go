package fst

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// RemoveEpsilon returns an equivalent automaton without (ε,ε)-arcs. Arcs with
// epsilon on one tape only are kept. A state becomes final if a final state is
// in its epsilon closure. The result is trimmed.
func RemoveEpsilon(A *Automaton) *Automaton {
	if A.IsEmpty() {
		return New()
	}
	B := New()
	for range A.states {
		B.AddState()
	}
	B.SetStart(A.start)
	for i := range A.states {
		s := StateID(i)
		type arcKey struct {
			in, out Label
			to      StateID
		}
		seen := make(map[arcKey]bool)
		for _, c := range A.epsilonClosure(s) {
			if A.states[c].final {
				B.states[s].final = true
			}
			for _, a := range A.states[c].arcs {
				if a.IsEpsilon() {
					continue
				}
				k := arcKey{a.In, a.Out, a.To}
				if !seen[k] {
					seen[k] = true
					B.AddArc(s, a.In, a.Out, a.To)
				}
			}
		}
	}
	return Connect(B)
}

// epsilonClosure returns s and all states reachable from s over (ε,ε)-arcs.
func (A *Automaton) epsilonClosure(s StateID) []StateID {
	seen := hashset.New(s)
	closure := []StateID{s}
	stack := arraystack.New()
	stack.Push(s)
	for !stack.Empty() {
		v, _ := stack.Pop()
		for _, a := range A.states[v.(StateID)].arcs {
			if a.IsEpsilon() && !seen.Contains(a.To) {
				seen.Add(a.To)
				closure = append(closure, a.To)
				stack.Push(a.To)
			}
		}
	}
	return closure
}

func (A *Automaton) hasEpsilonArcs() bool {
	for _, s := range A.states {
		for _, a := range s.arcs {
			if a.IsEpsilon() {
				return true
			}
		}
	}
	return false
}
