package fst

import (
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/morphdcg"
)

// Minimize returns the minimal deterministic automaton equivalent to A, where
// label pairs count as letters. A is trimmed first and must be deterministic
// afterwards.
//
// Minimization uses Moore's partition refinement: states start out separated
// into final and non-final blocks, and blocks are split until every state of
// a block has arcs with the same label pairs into the same blocks.
func Minimize(A *Automaton) *Automaton {
	A = Connect(A)
	if A.IsEmpty() {
		return A
	}
	if !A.IsDeterministic() {
		morphdcg.Violation("Minimize", "automaton is not deterministic")
	}
	n := len(A.states)
	block := make([]int, n)
	finals := 0
	for i, s := range A.states {
		if s.final {
			block[i] = 1
			finals++
		}
	}
	count := 1
	if finals > 0 && finals < n {
		count = 2
	}
	for {
		signatures := make(map[string]int)
		next := make([]int, n)
		for i := range A.states {
			sig := A.signature(StateID(i), block)
			b, ok := signatures[sig]
			if !ok {
				b = len(signatures)
				signatures[sig] = b
			}
			next[i] = b
		}
		block = next
		if len(signatures) == count {
			break
		}
		count = len(signatures)
	}
	B := New()
	for b := 0; b < count; b++ {
		B.AddState()
	}
	done := make([]bool, count)
	for i, s := range A.states {
		b := block[i]
		if done[b] {
			continue
		}
		done[b] = true
		B.states[b].final = s.final
		for _, a := range s.arcs {
			B.AddArc(StateID(b), a.In, a.Out, StateID(block[a.To]))
		}
	}
	B.SetStart(StateID(block[A.start]))
	tracer().Debugf("minimize: %d states -> %d states", n, count)
	return B
}

// signature of a state under a partition: its own block and the sorted list
// of (label pair, target block).
func (A *Automaton) signature(s StateID, block []int) string {
	arcs := A.states[s].arcs
	keys := make([]uint64, len(arcs))
	targets := make(map[uint64]int, len(arcs))
	for i, a := range arcs {
		keys[i] = pairKey(a.In, a.Out)
		targets[keys[i]] = block[a.To]
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	var b strings.Builder
	b.WriteString(strconv.Itoa(block[s]))
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(strconv.FormatUint(k, 16))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(targets[k]))
	}
	return b.String()
}

// Normalize removes epsilons, determinizes and minimizes A.
func Normalize(A *Automaton) *Automaton {
	return Minimize(Determinize(RemoveEpsilon(A)))
}
